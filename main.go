package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"hampropdisplay/internal/config"
	"hampropdisplay/internal/controller"
	"hampropdisplay/internal/display"
	"hampropdisplay/internal/fetchers"
	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/mocks"
	"hampropdisplay/internal/observability"
	"hampropdisplay/internal/prefs"
	"hampropdisplay/internal/server"
	"hampropdisplay/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment)

	logger.Info("Starting propagation display", logger.Fields{
		"version":     config.GetVersion(),
		"environment": cfg.Environment,
		"storage":     cfg.StorageMode,
		"mockup":      cfg.MockupMode,
	})

	store, err := storage.NewStorageClient(ctx, storage.ParseDeploymentMode(cfg.StorageMode), cfg)
	if err != nil {
		logger.Fatal("Failed to create storage client", err)
	}
	defer store.Close()

	settings, err := prefs.Open(ctx, store)
	if err != nil {
		logger.Error("Failed to load preferences, using defaults", err)
	}

	clock := clockwork.NewRealClock()
	offset := controller.ResolveUTCOffset(ctx, settings, clock.Now(), cfg.DefaultUTCOffset)

	var source fetchers.FeedSource
	if cfg.MockupMode {
		logger.Info("Mockup mode enabled", logger.Fields{"file": cfg.MockFeedFile})
		source = mocks.NewMockService(cfg.MockFeedFile)
	} else {
		source = fetchers.NewFeedClient(cfg.FetchTimeout)
	}

	fb := display.NewFramebuffer(display.Width, display.Height)
	frames := server.NewFrameManager(fb, store, cfg.SnapshotOnRender, clock)
	touch := controller.NewChannelTouch(4)

	ctrl := controller.New(controller.OptionsFromConfig(cfg, offset), controller.Deps{
		Source:   source,
		Surface:  fb,
		Touch:    touch,
		Clock:    clock,
		Prefs:    settings,
		Metrics:  observability.NewMetrics(),
		Observer: frames,
	})

	srv := server.New(cfg, ctrl, frames, touch, store)
	srv.Prefs = settings
	defer srv.Close()

	var httpServer *http.Server
	if cfg.Port != "" {
		httpServer = &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv.SetupRoutes(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			logger.Info("Status server listening", logger.Fields{"port": cfg.Port})
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("HTTP server error", err)
			}
		}()
	}

	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Display loop stopped", err)
	}

	logger.Info("Shutting down")

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", err)
		}
	}

	logger.Info("Stopped")
}
