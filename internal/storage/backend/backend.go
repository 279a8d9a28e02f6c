// Package backend opens the blob store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/config"
	"github.com/cory-johannsen/cogworld/internal/observability"
	"github.com/cory-johannsen/cogworld/internal/storage"
	"github.com/cory-johannsen/cogworld/internal/storage/file"
	"github.com/cory-johannsen/cogworld/internal/storage/postgres"
	"github.com/cory-johannsen/cogworld/internal/storage/sqlite"
)

// Backend is an open blob store together with the resources it holds.
type Backend struct {
	storage.BlobStore
	// Name is the configured backend identifier.
	Name  string
	close func() error
}

// Close releases the backend's connections. It is a no-op for the file backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects the blob store named by cfg.Storage.Backend.
//
// Precondition: cfg must have passed Validate.
// Postcondition: Returns an open Backend or a non-nil error.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Backend, error) {
	logger = observability.OrNop(logger)
	switch cfg.Storage.Backend {
	case config.BackendFile:
		logger.Info("using file storage", zap.String("dir", cfg.Storage.Dir))
		return &Backend{BlobStore: file.New(cfg.Storage.Dir, logger), Name: config.BackendFile}, nil

	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{BlobStore: s, Name: config.BackendSQLite, close: s.Close}, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("using postgres storage",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
		)
		return &Backend{
			BlobStore: postgres.NewBlobStore(pool.DB(), logger),
			Name:      config.BackendPostgres,
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
