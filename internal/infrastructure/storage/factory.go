package storage

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/config"
)

// NewFromConfig creates the Store selected by STORAGE_BACKEND.
func NewFromConfig(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DSN)
	case "s3":
		return NewS3(ctx, S3Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
