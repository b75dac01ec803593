package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hampropdisplay/internal/config"
)

// DeploymentMode selects the storage backend
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// ParseDeploymentMode maps a STORAGE_MODE value to a DeploymentMode
func ParseDeploymentMode(mode string) DeploymentMode {
	return DeploymentMode(strings.ToLower(strings.TrimSpace(mode)))
}

// NewStorageClient creates a storage client based on deployment mode and configuration
func NewStorageClient(ctx context.Context, deploymentMode DeploymentMode, cfg *config.Config) (StorageClient, error) {
	if cfg == nil {
		return nil, errors.New("storage: nil config")
	}

	switch deploymentMode {
	case DeploymentLocal:
		stateDir := cfg.StateDir
		if stateDir == "" {
			stateDir = "state"
		}

		localClient, err := NewLocalStorageClient(stateDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		if cfg.GCSBucket == "" {
			return nil, errors.New("storage: GCS bucket name is required")
		}
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", deploymentMode)
	}
}
