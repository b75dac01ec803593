// Command snapshot fetches the feed once, renders every page to PNG and
// stores the frames through the configured storage backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"time"

	"hampropdisplay/internal/config"
	"hampropdisplay/internal/controller"
	"hampropdisplay/internal/display"
	"hampropdisplay/internal/fetchers"
	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/mocks"
	"hampropdisplay/internal/pages"
	"hampropdisplay/internal/storage"
)

func main() {
	outDir := flag.String("dir", "", "storage directory for the frames (default: snapshots/<date>)")
	offset := flag.Int("utc-offset", 0, "hours added to UTC for the local clock readout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, *outDir, *offset); err != nil {
		logger.Error("Snapshot failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, outDir string, offset int) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment)

	var source fetchers.FeedSource = fetchers.NewFeedClient(cfg.FetchTimeout)
	if cfg.MockupMode {
		source = mocks.NewMockService(cfg.MockFeedFile)
	}

	startTime := time.Now()
	raw, err := source.Fetch(ctx, cfg.FeedURL)
	if err != nil {
		return err
	}
	snap, err := fetchers.Parse(raw)
	if err != nil {
		return err
	}
	logger.Info("Feed parsed", logger.Fields{
		"updated":  snap.UpdatedNormalized,
		"bands":    len(snap.Bands()),
		"vhf":      len(snap.VHFConditions()),
		"duration": time.Since(startTime).String(),
	})

	store, err := storage.NewStorageClient(ctx, storage.ParseDeploymentMode(cfg.StorageMode), cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if outDir == "" {
		outDir = path.Dir(storage.GenerateSnapshotPath(startTime, "x"))
	}
	if err := store.CreateDir(ctx, outDir); err != nil {
		return err
	}

	renderers := []pages.Renderer{pages.About{RefreshInterval: cfg.RefreshInterval}}
	for i := 0; i < pages.Count; i++ {
		renderers = append(renderers, pages.ForIndex(i))
	}

	local, utc := controller.ClockStrings(startTime, offset)
	for i, r := range renderers {
		fb := display.NewFramebuffer(display.Width, display.Height)
		r.Render(fb, snap)
		if summary, ok := r.(pages.Summary); ok {
			summary.DrawClock(fb, local, utc)
		}

		data, err := fb.PNG()
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", r.Name(), err)
		}
		filePath := path.Join(outDir, fmt.Sprintf("%d-%s.png", i, r.Name()))
		if err := store.StoreFile(ctx, filePath, data); err != nil {
			return err
		}
		logger.Info("Stored page", logger.Fields{"page": r.Name(), "path": filePath, "bytes": len(data)})
	}
	return nil
}
