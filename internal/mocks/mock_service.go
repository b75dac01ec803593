package mocks

import (
	"context"
	"fmt"
	"os"
	"sync"

	"hampropdisplay/internal/fetchers"
	"hampropdisplay/internal/logger"
)

// MockService serves a feed document from disk in place of the HTTP
// feed. The file is re-read on every fetch so it can be edited while the
// display is running.
type MockService struct {
	path string
	log  *logger.Logger

	mu    sync.Mutex
	calls int
}

// NewMockService creates a mock feed source backed by path
func NewMockService(path string) *MockService {
	return &MockService{
		path: path,
		log:  logger.Component("mocks"),
	}
}

// Fetch ignores url and returns the mock document. Read failures are
// reported as network failures so callers treat them like a dead feed.
func (m *MockService) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", fetchers.ErrNetworkFailure, err)
	}

	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	content, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read mock feed %s: %v", fetchers.ErrNetworkFailure, m.path, err)
	}

	m.log.Debug("Served mock feed", logger.Fields{"file": m.path, "bytes": len(content)})
	return content, nil
}

// Calls returns how many fetches have been served
func (m *MockService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ fetchers.FeedSource = (*MockService)(nil)
