package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/observability"
	"github.com/cory-johannsen/cogworld/internal/storage"
)

// BlobStore keeps blobs in the "blobs" table created by
// migrations/000001_create_blobs.up.sql.
type BlobStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewBlobStore creates a BlobStore backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with the blobs table migrated.
func NewBlobStore(db *pgxpool.Pool, logger *zap.Logger) *BlobStore {
	return &BlobStore{db: db, logger: observability.OrNop(logger)}
}

// Get returns the blob stored under key.
//
// Postcondition: Returns the data, storage.ErrNotFound, or a wrapped query error.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM blobs WHERE key = $1`, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, fmt.Errorf("querying blob %q: %w", key, err)
	}
	return data, nil
}

// Put upserts data under key.
//
// Postcondition: Exactly one row exists for key holding data.
func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO blobs (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("upserting blob %q: %w", key, err)
	}
	s.logger.Debug("blob written", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Exists reports whether a row exists for key.
func (s *BlobStore) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blobs WHERE key = $1)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking blob %q: %w", key, err)
	}
	return exists, nil
}
