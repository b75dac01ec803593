package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hampropdisplay/internal/config"
	"hampropdisplay/internal/controller"
	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/models"
	"hampropdisplay/internal/storage"
)

// StatusSource is the read side of the display controller
type StatusSource interface {
	Status() controller.Status
	Model() *models.Snapshot
}

// PhoneTimeStore records the phone's local time for UTC offset derivation
type PhoneTimeStore interface {
	SetPhoneTime(ctx context.Context, hhmm string) error
}

// TouchInjector queues a simulated touch for the control loop
type TouchInjector interface {
	Press() bool
}

// Server exposes the display over HTTP: health, metrics, the current
// frame and simulated touches.
type Server struct {
	Config  *config.Config
	Status  StatusSource
	Frames  *FrameManager
	Touch   TouchInjector
	Storage storage.StorageClient
	Prefs   PhoneTimeStore
	Version string

	log *logger.Logger
}

// New creates a new server instance. Touch and Storage may be nil. Prefs
// is optional and set by the caller.
func New(cfg *config.Config, status StatusSource, frames *FrameManager, touch TouchInjector, store storage.StorageClient) *Server {
	return &Server{
		Config:  cfg,
		Status:  status,
		Frames:  frames,
		Touch:   touch,
		Storage: store,
		Version: config.GetVersion(),
		log:     logger.Component("server"),
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/status", s.HandleStatus)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/frame.png", s.HandleFrame)
	mux.HandleFunc("/touch", s.HandleTouch)
	mux.HandleFunc("/phone-time", s.HandlePhoneTime)
	mux.HandleFunc("/snapshots", s.HandleListSnapshots)
	mux.HandleFunc("/snapshots/", s.HandleSnapshotFile)

	// Handle root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close releases the frame archive writer
func (s *Server) Close() error {
	if s.Frames != nil {
		s.Frames.Close()
	}
	return nil
}
