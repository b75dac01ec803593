package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the propagation display
type Config struct {
	// Feed
	FeedURL         string        `env:"FEED_URL,default=https://www.hamqsl.com/solarxml.php"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT,default=10s"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL,default=15m"`

	// Control loop timing
	ClockInterval time.Duration `env:"CLOCK_INTERVAL,default=1s"`
	PollInterval  time.Duration `env:"POLL_INTERVAL,default=20ms"`
	TouchDebounce time.Duration `env:"TOUCH_DEBOUNCE,default=200ms"`

	// Intro page
	AboutTimeout time.Duration `env:"ABOUT_TIMEOUT,default=10s"`
	ShowAbout    string        `env:"SHOW_ABOUT,default=auto"`

	// Time
	DefaultUTCOffset int `env:"DEFAULT_UTC_OFFSET,default=2"`

	// Persisted state and snapshots
	StorageMode      string `env:"STORAGE_MODE,default=local"`
	StateDir         string `env:"STATE_DIR,default=./state"`
	GCSBucket        string `env:"GCS_BUCKET"`
	SnapshotOnRender bool   `env:"SNAPSHOT_ON_RENDER,default=false"`

	// Status server
	Port string `env:"PORT,default=8981"`

	// Offline feed
	MockupMode   bool   `env:"MOCKUP_MODE,default=false"`
	MockFeedFile string `env:"MOCK_FEED_FILE,default=internal/mocks/data/solarxml.xml"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that envconfig cannot express
func (c *Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"FETCH_TIMEOUT", c.FetchTimeout},
		{"REFRESH_INTERVAL", c.RefreshInterval},
		{"CLOCK_INTERVAL", c.ClockInterval},
		{"POLL_INTERVAL", c.PollInterval},
		{"ABOUT_TIMEOUT", c.AboutTimeout},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.d)
		}
	}
	if c.TouchDebounce < 0 {
		return fmt.Errorf("TOUCH_DEBOUNCE must not be negative, got %s", c.TouchDebounce)
	}
	if strings.TrimSpace(c.FeedURL) == "" && !c.MockupMode {
		return errors.New("FEED_URL is required unless MOCKUP_MODE is enabled")
	}
	if c.DefaultUTCOffset < -12 || c.DefaultUTCOffset > 14 {
		return fmt.Errorf("DEFAULT_UTC_OFFSET out of range: %d", c.DefaultUTCOffset)
	}

	switch strings.ToLower(c.ShowAbout) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("SHOW_ABOUT must be auto, always or never, got %q", c.ShowAbout)
	}

	switch strings.ToLower(c.StorageMode) {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			return errors.New("GCS_BUCKET is required when STORAGE_MODE is gcs")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_MODE %q", c.StorageMode)
	}
	return nil
}
