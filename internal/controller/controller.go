// Package controller runs the display state machine: a single loop that
// polls the clock and the touch panel, refreshes the feed on a fixed
// cadence and redraws the current page.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"hampropdisplay/internal/config"
	"hampropdisplay/internal/display"
	"hampropdisplay/internal/fetchers"
	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/models"
	"hampropdisplay/internal/observability"
	"hampropdisplay/internal/pages"
	"hampropdisplay/internal/prefs"
)

// AboutMode controls the about page shown after the first fetch
type AboutMode string

const (
	AboutAuto   AboutMode = "auto"
	AboutAlways AboutMode = "always"
	AboutNever  AboutMode = "never"
)

// Options holds the loop timing and display settings
type Options struct {
	URL             string
	RefreshInterval time.Duration
	ClockInterval   time.Duration
	PollInterval    time.Duration
	TouchDebounce   time.Duration
	AboutTimeout    time.Duration
	AboutMode       AboutMode
	UTCOffset       int
}

// OptionsFromConfig maps configuration onto Options. utcOffset is the
// already resolved offset.
func OptionsFromConfig(cfg *config.Config, utcOffset int) Options {
	return Options{
		URL:             cfg.FeedURL,
		RefreshInterval: cfg.RefreshInterval,
		ClockInterval:   cfg.ClockInterval,
		PollInterval:    cfg.PollInterval,
		TouchDebounce:   cfg.TouchDebounce,
		AboutTimeout:    cfg.AboutTimeout,
		AboutMode:       AboutMode(strings.ToLower(cfg.ShowAbout)),
		UTCOffset:       utcOffset,
	}
}

// RenderObserver is told about every draw the controller makes. full is
// false for clock-only repaints.
type RenderObserver interface {
	Rendered(page string, full bool)
}

// Deps are the collaborators the controller drives. Source, Surface and
// Touch are required.
type Deps struct {
	Source  fetchers.FeedSource
	Parse   func([]byte) (*models.Snapshot, error)
	Surface display.Surface
	Touch   TouchPanel
	Clock   clockwork.Clock
	Prefs   *prefs.Prefs
	Metrics *observability.Metrics

	Observer RenderObserver
}

// Controller owns the current snapshot and page index. All mutation
// happens on the goroutine calling Start, Step and Run.
type Controller struct {
	opts     Options
	source   fetchers.FeedSource
	parse    func([]byte) (*models.Snapshot, error)
	surface  display.Surface
	touch    TouchPanel
	clock    clockwork.Clock
	prefs    *prefs.Prefs
	metrics  *observability.Metrics
	observer RenderObserver
	log      *logger.Logger

	page          int
	aboutActive   bool
	aboutDeadline time.Time
	started       bool

	edge        edgeDetector
	lastTouch   time.Time
	lastClock   time.Time
	lastRefresh time.Time
	localStr    string
	utcStr      string

	// mu guards model and status, which are read by other goroutines
	mu     sync.RWMutex
	model  *models.Snapshot
	status Status
}

// New creates a controller. Zero timing options fall back to the
// firmware defaults.
func New(opts Options, deps Deps) *Controller {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 15 * time.Minute
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 20 * time.Millisecond
	}
	if opts.AboutTimeout <= 0 {
		opts.AboutTimeout = 10 * time.Second
	}
	if opts.AboutMode == "" {
		opts.AboutMode = AboutAuto
	}

	c := &Controller{
		opts:     opts,
		source:   deps.Source,
		parse:    deps.Parse,
		surface:  deps.Surface,
		touch:    deps.Touch,
		clock:    deps.Clock,
		prefs:    deps.Prefs,
		metrics:  deps.Metrics,
		observer: deps.Observer,
		log:      logger.Component("controller"),
	}
	if c.parse == nil {
		c.parse = fetchers.Parse
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	c.status.UTCOffset = opts.UTCOffset
	c.status.PageName = pages.ForIndex(0).Name()
	return c
}

// Start performs the first fetch, shows the about page if wanted and
// otherwise enters the summary page.
func (c *Controller) Start(ctx context.Context) {
	c.started = true
	c.refresh(ctx)

	now := c.clock.Now()
	c.updateClock(now)

	if c.wantAbout() {
		c.enterAbout(now)
		return
	}
	c.setPage(0)
	c.render()
}

// Step runs one iteration of the loop: touch, clock, then refresh
func (c *Controller) Step(ctx context.Context) {
	if !c.started {
		c.Start(ctx)
		return
	}
	now := c.clock.Now()

	if c.pollTouch(now) {
		c.onTouch(ctx)
	}

	if c.aboutActive {
		if !now.Before(c.aboutDeadline) {
			c.log.Debug("About page timed out")
			c.leaveAbout()
		}
		return
	}

	if now.Sub(c.lastClock) >= c.opts.ClockInterval {
		c.tick(now)
	}

	if now.Sub(c.lastRefresh) >= c.opts.RefreshInterval {
		c.log.Info("Refreshing solar data")
		if c.refresh(ctx) {
			c.render()
		}
	}
}

// Run starts the controller if needed and loops until ctx is done
func (c *Controller) Run(ctx context.Context) error {
	if !c.started {
		c.Start(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.Step(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.clock.After(c.opts.PollInterval):
		}
	}
}

// CurrentPage returns the page index in the rotation
func (c *Controller) CurrentPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status.Page
}

// Model returns a copy of the snapshot on display, nil before the first
// success. Callers outside the loop may keep or modify it freely.
func (c *Controller) Model() *models.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model.Clone()
}

// Status returns a copy of the controller status
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// redraw renders the current page again from the current snapshot
func (c *Controller) redraw() {
	if c.aboutActive {
		c.renderAbout()
		return
	}
	c.render()
}

func (c *Controller) pollTouch(now time.Time) bool {
	if c.touch == nil {
		return false
	}
	pressed, _, _ := c.touch.Touched()
	if !c.edge.rising(pressed) {
		return false
	}
	if !c.lastTouch.IsZero() && now.Sub(c.lastTouch) < c.opts.TouchDebounce {
		return false
	}
	c.lastTouch = now
	return true
}

func (c *Controller) onTouch(ctx context.Context) {
	if c.metrics != nil {
		c.metrics.TouchEvents.Inc()
	}

	if c.aboutActive {
		c.log.Info("About page dismissed")
		if c.prefs != nil {
			if err := c.prefs.SetShowAbout(ctx, false); err != nil {
				c.log.Error("Failed to persist about page preference", err)
			}
		}
		c.leaveAbout()
		return
	}

	next := (c.page + 1) % pages.Count
	c.log.Debug("Page change", logger.Fields{"from": c.page, "to": next})
	c.setPage(next)
	c.render()
}

func (c *Controller) wantAbout() bool {
	switch c.opts.AboutMode {
	case AboutNever:
		return false
	case AboutAlways:
		return true
	default:
		return c.prefs == nil || c.prefs.ShowAbout()
	}
}

func (c *Controller) enterAbout(now time.Time) {
	c.aboutActive = true
	c.aboutDeadline = now.Add(c.opts.AboutTimeout)
	c.mu.Lock()
	c.status.AboutShown = true
	c.mu.Unlock()
	c.renderAbout()
}

func (c *Controller) leaveAbout() {
	c.aboutActive = false
	c.mu.Lock()
	c.status.AboutShown = false
	c.mu.Unlock()
	c.setPage(0)
	c.render()
}

func (c *Controller) setPage(page int) {
	c.page = page
	c.mu.Lock()
	c.status.Page = page
	c.status.PageName = pages.ForIndex(page).Name()
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.CurrentPage.Set(float64(page))
	}
}

func (c *Controller) render() {
	r := pages.ForIndex(c.page)
	r.Render(c.surface, c.model)
	if summary, ok := r.(pages.Summary); ok && c.localStr != "" {
		summary.DrawClock(c.surface, c.localStr, c.utcStr)
	}

	if c.metrics != nil {
		c.metrics.PageRenders.WithLabelValues(r.Name()).Inc()
	}
	if c.observer != nil {
		c.observer.Rendered(r.Name(), true)
	}
}

func (c *Controller) renderAbout() {
	r := pages.About{RefreshInterval: c.opts.RefreshInterval}
	r.Render(c.surface, c.model)
	if c.metrics != nil {
		c.metrics.PageRenders.WithLabelValues(r.Name()).Inc()
	}
	if c.observer != nil {
		c.observer.Rendered(r.Name(), true)
	}
}

// tick recomputes the clock strings on every page but repaints them only
// on the summary page
func (c *Controller) tick(now time.Time) {
	c.updateClock(now)
	if c.page != 0 {
		return
	}

	pages.Summary{}.DrawClock(c.surface, c.localStr, c.utcStr)
	if c.metrics != nil {
		c.metrics.ClockRepaints.Inc()
	}
	if c.observer != nil {
		c.observer.Rendered(pages.Summary{}.Name(), false)
	}
}

func (c *Controller) updateClock(now time.Time) {
	c.lastClock = now
	c.localStr, c.utcStr = ClockStrings(now, c.opts.UTCOffset)
	c.mu.Lock()
	c.status.LocalTime = c.localStr
	c.status.UTCTime = c.utcStr
	c.mu.Unlock()
}

// refresh fetches and parses the feed. The snapshot is replaced only when
// both succeed. The next attempt is scheduled from this one either way.
func (c *Controller) refresh(ctx context.Context) bool {
	start := c.clock.Now()
	c.lastRefresh = start

	// in-flight fetches are bounded by the client timeout, not cancelled
	raw, err := c.source.Fetch(context.WithoutCancel(ctx), c.opts.URL)
	var snap *models.Snapshot
	if err == nil {
		snap, err = c.parse(raw)
	}
	elapsed := c.clock.Since(start)

	if c.metrics != nil {
		c.metrics.FetchDuration.Observe(elapsed.Seconds())
	}

	c.mu.Lock()
	c.status.LastAttempt = start
	c.mu.Unlock()

	if err != nil {
		outcome := observability.OutcomeNetworkError
		if errors.Is(err, fetchers.ErrMalformedDocument) {
			outcome = observability.OutcomeMalformed
		}
		c.log.Error("Solar data refresh failed, keeping previous data", err, logger.Fields{
			"outcome":  outcome,
			"duration": elapsed.String(),
		})
		if c.metrics != nil {
			c.metrics.FetchRequests.WithLabelValues(outcome).Inc()
		}
		c.mu.Lock()
		c.status.LastError = err.Error()
		c.status.Failures++
		c.mu.Unlock()
		return false
	}

	c.mu.Lock()
	c.model = snap
	c.status.LastSuccess = start
	c.status.LastError = ""
	c.status.Updated = snap.UpdatedNormalized
	c.status.Refreshes++
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.FetchRequests.WithLabelValues(observability.OutcomeSuccess).Inc()
		c.metrics.LastRefresh.Set(float64(start.Unix()))
		c.metrics.BandEntries.Set(float64(len(snap.Bands())))
		c.metrics.VHFEntries.Set(float64(len(snap.VHFConditions())))
	}
	c.log.Info("Solar data refreshed", logger.Fields{
		"updated":  snap.UpdatedNormalized,
		"bands":    len(snap.Bands()),
		"vhf":      len(snap.VHFConditions()),
		"duration": elapsed.String(),
	})
	return true
}
