package storage

import (
	"context"
	"fmt"

	"aqimon/internal/config"
)

// DeploymentMode represents the deployment environment
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// ModeFromConfig selects the deployment mode: GCS when a bucket is
// configured, local otherwise
func ModeFromConfig(cfg *config.Config) DeploymentMode {
	if cfg != nil && cfg.GCSBucket != "" {
		return DeploymentGCS
	}
	return DeploymentLocal
}

// NewStorageClient creates a storage client for the deployment mode
func NewStorageClient(ctx context.Context, deploymentMode DeploymentMode, cfg *config.Config) (StorageClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	switch deploymentMode {
	case DeploymentLocal:
		reportsDir := cfg.LocalReportsDir
		if reportsDir == "" {
			reportsDir = "reports"
		}

		localClient, err := NewLocalStorageClient(reportsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", deploymentMode)
	}
}
