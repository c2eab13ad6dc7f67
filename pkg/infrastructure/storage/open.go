package storage

import (
	"context"
	"fmt"

	"github.com/vsinha/planboard/pkg/infrastructure/config"
)

// Open creates the Store selected by cfg.Backend
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return NewLocalStorage(cfg.LocalDir)
	case config.BackendSQLite:
		return NewSQLStorage(ctx, DriverSQLite, cfg.DSN)
	case config.BackendPostgres:
		return NewSQLStorage(ctx, DriverPostgres, cfg.DSN)
	case config.BackendS3:
		return NewS3Storage(ctx, cfg.S3)
	case config.BackendGCS:
		return NewGCSStorage(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
