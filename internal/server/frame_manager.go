package server

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/storage"
)

// FrameSource encodes the current display contents
type FrameSource interface {
	PNG() ([]byte, error)
}

type upload struct {
	path string
	data []byte
}

// FrameManager keeps the most recent PNG of the display and, when
// archiving is enabled, stores every full page render through the storage
// client. It is the controller's render observer, so Rendered runs on the
// control loop and only hands uploads to a background writer.
type FrameManager struct {
	source  FrameSource
	storage storage.StorageClient
	clock   clockwork.Clock
	log     *logger.Logger

	mu         sync.RWMutex
	latest     []byte
	latestPage string
	latestAt   time.Time
	pages      map[string][]byte
	closed     bool

	uploads chan upload
	wg      sync.WaitGroup
}

// NewFrameManager creates a frame manager. store may be nil, in which case
// nothing is archived.
func NewFrameManager(source FrameSource, store storage.StorageClient, archive bool, clock clockwork.Clock) *FrameManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	fm := &FrameManager{
		source:  source,
		storage: store,
		clock:   clock,
		log:     logger.Component("frames"),
		pages:   make(map[string][]byte),
	}
	if archive && store != nil {
		fm.uploads = make(chan upload, 8)
		fm.wg.Add(1)
		go fm.writer()
	}
	return fm
}

// Rendered captures the frame after a draw. Only full renders are archived.
func (fm *FrameManager) Rendered(page string, full bool) {
	data, err := fm.source.PNG()
	if err != nil {
		fm.log.Error("Failed to encode frame", err, logger.Fields{"page": page})
		return
	}
	now := fm.clock.Now()

	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.latest = data
	fm.latestPage = page
	fm.latestAt = now
	fm.pages[page] = data

	if !full || fm.uploads == nil || fm.closed {
		return
	}
	select {
	case fm.uploads <- upload{path: storage.GenerateSnapshotPath(now, page), data: data}:
	default:
		fm.log.Warn("Snapshot queue full, dropping frame", logger.Fields{"page": page})
	}
}

// Latest returns the most recent frame and the page it shows
func (fm *FrameManager) Latest() (data []byte, page string, at time.Time, ok bool) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	return fm.latest, fm.latestPage, fm.latestAt, fm.latest != nil
}

// Page returns the last frame drawn for the named page
func (fm *FrameManager) Page(name string) ([]byte, bool) {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	data, ok := fm.pages[name]
	return data, ok
}

// Close stops accepting uploads and waits for queued ones to finish
func (fm *FrameManager) Close() {
	fm.mu.Lock()
	if fm.closed {
		fm.mu.Unlock()
		return
	}
	fm.closed = true
	if fm.uploads != nil {
		close(fm.uploads)
	}
	fm.mu.Unlock()
	fm.wg.Wait()
}

func (fm *FrameManager) writer() {
	defer fm.wg.Done()
	for u := range fm.uploads {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := fm.storage.StoreFile(ctx, u.path, u.data); err != nil {
			fm.log.Error("Failed to store snapshot", err, logger.Fields{"path": u.path})
		} else {
			fm.log.Debug("Snapshot stored", logger.Fields{"path": u.path, "bytes": len(u.data)})
		}
		cancel()
	}
}
