package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hampropdisplay/internal/display"
	"hampropdisplay/internal/fetchers"
	"hampropdisplay/internal/observability"
	"hampropdisplay/internal/pages"
	"hampropdisplay/internal/prefs"
	"hampropdisplay/internal/storage"
)

var bootTime = time.Date(2025, 6, 14, 13, 21, 0, 0, time.UTC)

func feedXML(solarFlux int, updated string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><solar><solardata>`)
	fmt.Fprintf(&b, "<updated>%s</updated><solarflux>%d</solarflux><aindex>8</aindex><kindex>2</kindex>", updated, solarFlux)
	b.WriteString(`<calculatedconditions>`)
	for _, tod := range []string{"day", "night"} {
		for _, band := range []string{"80m-40m", "30m-20m", "17m-15m", "12m-10m"} {
			fmt.Fprintf(&b, `<band name="%s" time="%s">Good</band>`, band, tod)
		}
	}
	b.WriteString(`</calculatedconditions><calculatedvhfconditions>`)
	b.WriteString(`<phenomenon name="E-Skip" location="europe">Band Closed</phenomenon>`)
	b.WriteString(`</calculatedvhfconditions></solardata></solar>`)
	return []byte(b.String())
}

type response struct {
	body []byte
	err  error
}

// fakeSource replays responses in order, repeating the last one
type fakeSource struct {
	mu        sync.Mutex
	responses []response
	calls     int
}

func (f *fakeSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	return f.responses[i].body, f.responses[i].err
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeTouch struct {
	pressed bool
}

func (f *fakeTouch) Touched() (bool, int, int) { return f.pressed, 100, 100 }

type countingObserver struct {
	full, partial int
	last          string
}

func (o *countingObserver) Rendered(page string, full bool) {
	o.last = page
	if full {
		o.full++
	} else {
		o.partial++
	}
}

type harness struct {
	c        *Controller
	clock    *clockwork.FakeClock
	source   *fakeSource
	touch    *fakeTouch
	rec      *display.Recorder
	metrics  *observability.Metrics
	observer *countingObserver
}

func newHarness(t *testing.T, mode AboutMode, p *prefs.Prefs, responses ...response) *harness {
	t.Helper()
	if len(responses) == 0 {
		responses = []response{{body: feedXML(145, "14 Jun 2025 1321 GMT")}}
	}
	h := &harness{
		clock:    clockwork.NewFakeClockAt(bootTime),
		source:   &fakeSource{responses: responses},
		touch:    &fakeTouch{},
		rec:      display.NewRecorder(),
		metrics:  observability.NewMetricsForTesting(),
		observer: &countingObserver{},
	}
	h.c = New(Options{
		URL:             "http://feed.invalid/solarxml.php",
		RefreshInterval: 15 * time.Minute,
		ClockInterval:   time.Second,
		PollInterval:    20 * time.Millisecond,
		TouchDebounce:   200 * time.Millisecond,
		AboutTimeout:    10 * time.Second,
		AboutMode:       mode,
		UTCOffset:       2,
	}, Deps{
		Source:   h.source,
		Surface:  h.rec,
		Touch:    h.touch,
		Clock:    h.clock,
		Prefs:    p,
		Metrics:  h.metrics,
		Observer: h.observer,
	})
	return h
}

// tap presses and releases the panel, then waits out the debounce window
func (h *harness) tap(ctx context.Context) {
	h.touch.pressed = true
	h.c.Step(ctx)
	h.touch.pressed = false
	h.c.Step(ctx)
	h.clock.Advance(250 * time.Millisecond)
}

func openPrefs(t *testing.T) *prefs.Prefs {
	t.Helper()
	store, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)
	p, err := prefs.Open(context.Background(), store)
	require.NoError(t, err)
	return p
}

func TestModelReturnsIndependentCopy(t *testing.T) {
	h := newHarness(t, AboutNever, nil)
	h.c.Start(context.Background())

	m := h.c.Model()
	require.NotNil(t, m)
	m.SolarFlux = 1
	m.UpdatedNormalized = "tampered"

	assert.Equal(t, 145, h.c.Model().SolarFlux)
	h.rec.Reset()
	h.c.redraw()
	_, ok := h.rec.FindText("Updated: 14 Jun 2025 13:21 UTC")
	assert.True(t, ok, "the loop keeps drawing its own snapshot")
}

func TestStartFetchesThenShowsSummary(t *testing.T) {
	h := newHarness(t, AboutNever, nil)
	h.c.Start(context.Background())

	assert.Equal(t, 1, h.source.Calls())
	assert.Equal(t, 0, h.c.CurrentPage())
	require.NotNil(t, h.c.Model())
	assert.Equal(t, 145, h.c.Model().SolarFlux)

	_, ok := h.rec.FindText("DAY")
	assert.True(t, ok)
	_, ok = h.rec.FindText("Updated: 14 Jun 2025 13:21 UTC")
	assert.True(t, ok)
	_, ok = h.rec.FindText("15:21:00")
	assert.True(t, ok, "local clock drawn with the summary")
	_, ok = h.rec.FindText("13:21:00")
	assert.True(t, ok)

	st := h.c.Status()
	assert.Equal(t, "summary", st.PageName)
	assert.Equal(t, 1, st.Refreshes)
	assert.Equal(t, "14 Jun 2025 13:21 UTC", st.Updated)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.FetchRequests.WithLabelValues(observability.OutcomeSuccess)))
	assert.Equal(t, 8.0, testutil.ToFloat64(h.metrics.BandEntries))
}

func TestStepStartsLazily(t *testing.T) {
	h := newHarness(t, AboutNever, nil)
	h.c.Step(context.Background())
	assert.Equal(t, 1, h.source.Calls())
	assert.Equal(t, 1, h.observer.full)
}

func TestFourTouchesReturnToSummary(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil)
	h.c.Start(ctx)

	want := []int{1, 2, 3, 0}
	names := []string{"indices", "ionosphere", "vhf", "summary"}
	for i := range want {
		h.tap(ctx)
		assert.Equal(t, want[i], h.c.CurrentPage(), "after touch %d", i+1)
		assert.Equal(t, names[i], h.observer.last)
	}
	assert.Equal(t, 4.0, testutil.ToFloat64(h.metrics.TouchEvents))
	assert.Equal(t, 1, h.source.Calls(), "touches never fetch")
}

func TestTouchRendersNewPageImmediately(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil)
	h.c.Start(ctx)
	h.rec.Reset()

	h.touch.pressed = true
	h.c.Step(ctx)

	_, ok := h.rec.FindText("Solar Flux")
	assert.True(t, ok)
}

func TestHeldTouchAdvancesOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil)
	h.c.Start(ctx)

	h.touch.pressed = true
	for i := 0; i < 20; i++ {
		h.c.Step(ctx)
		h.clock.Advance(50 * time.Millisecond)
	}
	assert.Equal(t, 1, h.c.CurrentPage())
}

func TestTouchDebounce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil)
	h.c.Start(ctx)

	h.touch.pressed = true
	h.c.Step(ctx)
	h.touch.pressed = false
	h.c.Step(ctx)

	// bounce inside the window is ignored
	h.clock.Advance(100 * time.Millisecond)
	h.touch.pressed = true
	h.c.Step(ctx)
	h.touch.pressed = false
	h.c.Step(ctx)
	assert.Equal(t, 1, h.c.CurrentPage())

	h.clock.Advance(150 * time.Millisecond)
	h.touch.pressed = true
	h.c.Step(ctx)
	assert.Equal(t, 2, h.c.CurrentPage())
}

func TestRefreshCadence(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil)
	h.c.Start(ctx)

	h.clock.Advance(15*time.Minute - time.Second)
	h.c.Step(ctx)
	assert.Equal(t, 1, h.source.Calls())

	h.clock.Advance(time.Second)
	h.c.Step(ctx)
	assert.Equal(t, 2, h.source.Calls())

	// no immediate retry on the following steps
	h.c.Step(ctx)
	h.clock.Advance(time.Minute)
	h.c.Step(ctx)
	assert.Equal(t, 2, h.source.Calls())
}

func TestSuccessfulRefreshSwapsModelAndRedraws(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil,
		response{body: feedXML(145, "14 Jun 2025 1321 GMT")},
		response{body: feedXML(180, "14 Jun 2025 1336 GMT")},
	)
	h.c.Start(ctx)
	h.tap(ctx) // indices page
	first := h.c.Model()
	h.rec.Reset()

	h.clock.Advance(15 * time.Minute)
	h.c.Step(ctx)

	require.NotSame(t, first, h.c.Model())
	assert.Equal(t, 180, h.c.Model().SolarFlux)
	assert.Equal(t, 145, first.SolarFlux, "previous snapshot is not mutated")
	assert.Equal(t, 1, h.c.CurrentPage(), "refresh keeps the page")

	op, ok := h.rec.FindText(": 180")
	require.True(t, ok)
	assert.Equal(t, display.Green, op.Color)
}

func TestFailedRefreshLeavesDisplayUnchanged(t *testing.T) {
	for name, failure := range map[string]error{
		"network":   fmt.Errorf("%w: connection refused", fetchers.ErrNetworkFailure),
		"malformed": nil,
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			bad := response{err: failure}
			if failure == nil {
				bad = response{body: []byte("<solar><solardata><unclosed></solar>")}
			}
			h := newHarness(t, AboutNever, nil, response{body: feedXML(145, "14 Jun 2025 1321 GMT")}, bad)
			h.c.Start(ctx)
			h.tap(ctx)

			h.rec.Reset()
			h.c.redraw()
			before := h.rec.Ops()
			model := h.c.Model()

			h.rec.Reset()
			h.clock.Advance(15 * time.Minute)
			h.c.Step(ctx)
			assert.Equal(t, 2, h.source.Calls())
			assert.Empty(t, h.rec.Ops(), "a failed refresh draws nothing")
			assert.Equal(t, model, h.c.Model())

			h.c.redraw()
			assert.Equal(t, before, h.rec.Ops())

			st := h.c.Status()
			assert.NotEmpty(t, st.LastError)
			assert.Equal(t, 1, st.Failures)
			assert.True(t, st.LastSuccess.Before(st.LastAttempt))

			// retried on the next cadence only
			h.clock.Advance(15 * time.Minute)
			h.c.Step(ctx)
			assert.Equal(t, 3, h.source.Calls())
		})
	}
}

func TestFailureOutcomeMetrics(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil, response{body: []byte("not xml")})
	h.c.Start(ctx)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.FetchRequests.WithLabelValues(observability.OutcomeMalformed)))

	h2 := newHarness(t, AboutNever, nil, response{err: errors.New("boom")})
	h2.c.Start(ctx)
	assert.Equal(t, 1.0, testutil.ToFloat64(h2.metrics.FetchRequests.WithLabelValues(observability.OutcomeNetworkError)))
}

func TestFailedFirstFetchStillShowsSummary(t *testing.T) {
	h := newHarness(t, AboutNever, nil, response{err: fetchers.ErrNetworkFailure})
	h.c.Start(context.Background())

	assert.Nil(t, h.c.Model())
	assert.Equal(t, 0, h.c.CurrentPage())
	_, ok := h.rec.FindText("DAY")
	assert.True(t, ok)
	_, ok = h.rec.FindText("Updated: ")
	assert.True(t, ok)
}

func TestClockRepaintsOnlyOnSummary(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil)
	h.c.Start(ctx)
	h.rec.Reset()

	h.clock.Advance(time.Second)
	h.c.Step(ctx)
	_, ok := h.rec.FindText("15:21:01")
	assert.True(t, ok)
	for _, op := range h.rec.Ops() {
		assert.NotEqual(t, display.OpClear, op.Kind)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ClockRepaints))

	h.tap(ctx) // to indices, clock advanced 250ms
	h.rec.Reset()
	h.clock.Advance(time.Second)
	h.c.Step(ctx)
	assert.Empty(t, h.rec.Ops(), "other pages are not repainted by the clock")
	assert.Equal(t, "13:21:02", h.c.Status().UTCTime, "strings still advance")
}

func TestClockNotRepaintedBeforeInterval(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil)
	h.c.Start(ctx)
	h.rec.Reset()

	h.clock.Advance(500 * time.Millisecond)
	h.c.Step(ctx)
	assert.Empty(t, h.rec.Ops())
}

func TestAboutPageDismissedByTouch(t *testing.T) {
	ctx := context.Background()
	p := openPrefs(t)
	h := newHarness(t, AboutAuto, p)
	h.c.Start(ctx)

	_, ok := h.rec.FindText(pages.AboutHint)
	require.True(t, ok)
	assert.True(t, h.c.Status().AboutShown)

	h.rec.Reset()
	h.tap(ctx)

	assert.False(t, p.ShowAbout(), "dismissal is persisted")
	assert.False(t, h.c.Status().AboutShown)
	assert.Equal(t, 0, h.c.CurrentPage(), "dismissing does not advance the rotation")
	_, ok = h.rec.FindText("DAY")
	assert.True(t, ok)
}

func TestAboutPageTimesOut(t *testing.T) {
	ctx := context.Background()
	p := openPrefs(t)
	h := newHarness(t, AboutAuto, p)
	h.c.Start(ctx)
	h.rec.Reset()

	h.clock.Advance(9 * time.Second)
	h.c.Step(ctx)
	assert.Empty(t, h.rec.Ops(), "clock does not draw over the about page")

	h.clock.Advance(time.Second)
	h.c.Step(ctx)
	_, ok := h.rec.FindText("DAY")
	assert.True(t, ok)
	assert.True(t, p.ShowAbout(), "timeout keeps the page for next boot")
}

func TestAboutPageModes(t *testing.T) {
	ctx := context.Background()

	dismissed := openPrefs(t)
	require.NoError(t, dismissed.SetShowAbout(ctx, false))

	h := newHarness(t, AboutAuto, dismissed)
	h.c.Start(ctx)
	_, shown := h.rec.FindText(pages.AboutHint)
	assert.False(t, shown, "auto honours a stored dismissal")

	h = newHarness(t, AboutAlways, dismissed)
	h.c.Start(ctx)
	_, shown = h.rec.FindText(pages.AboutHint)
	assert.True(t, shown)

	h = newHarness(t, AboutNever, openPrefs(t))
	h.c.Start(ctx)
	_, shown = h.rec.FindText(pages.AboutHint)
	assert.False(t, shown)
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, AboutNever, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.c.Run(ctx) }()

	require.NoError(t, h.clock.BlockUntilContext(context.Background(), 1))
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 1, h.source.Calls())
}

func TestChannelTouchPulses(t *testing.T) {
	touch := NewChannelTouch(2)
	assert.True(t, touch.Press())
	assert.True(t, touch.Press())
	assert.False(t, touch.Press(), "queue full")

	var seq []bool
	for i := 0; i < 5; i++ {
		pressed, _, _ := touch.Touched()
		seq = append(seq, pressed)
	}
	assert.Equal(t, []bool{true, false, true, false, false}, seq)
}

func TestChannelTouchDrivesController(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, AboutNever, nil)
	touch := NewChannelTouch(4)
	h.c.touch = touch
	h.c.Start(ctx)

	touch.Press()
	h.c.Step(ctx)
	h.c.Step(ctx)
	assert.Equal(t, 1, h.c.CurrentPage())
}
