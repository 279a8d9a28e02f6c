package world

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/clock"
	"github.com/cory-johannsen/cogworld/internal/observability"
	"github.com/cory-johannsen/cogworld/internal/storage"
)

// ErrTileNotFound is returned by Load when no record exists for a coordinate.
var ErrTileNotFound = errors.New("tile not found")

// CorruptTileError reports a stored tile record that could not be read or parsed.
type CorruptTileError struct {
	Coord Coord
	Key   string
	Err   error
}

func (e *CorruptTileError) Error() string {
	return fmt.Sprintf("tile %s (%s): %v", e.Coord, e.Key, e.Err)
}

func (e *CorruptTileError) Unwrap() error {
	return e.Err
}

// TileStore loads and saves tiles in a BlobStore, one record per coordinate,
// under "<prefix>/<Coord.Encode()>".
type TileStore struct {
	blobs  storage.BlobStore
	prefix string
	clock  clock.Clock
	logger *zap.Logger
}

// NewTileStore creates a TileStore.
//
// Precondition: blobs and clk must be non-nil; prefix must be non-empty.
func NewTileStore(blobs storage.BlobStore, prefix string, clk clock.Clock, logger *zap.Logger) *TileStore {
	return &TileStore{
		blobs:  blobs,
		prefix: prefix,
		clock:  clk,
		logger: observability.OrNop(logger),
	}
}

// Key returns the storage key of the tile at c.
func (s *TileStore) Key(c Coord) string {
	return storage.JoinKey(s.prefix, c.Encode())
}

// Load reads the tile at c. It never leaves the caller without a tile: a
// missing record yields DefaultTile with ErrTileNotFound, and an unreadable
// one yields a default whose description carries the reason, with a
// *CorruptTileError.
//
// Postcondition: The returned tile is non-nil and addressed by c.
func (s *TileStore) Load(ctx context.Context, c Coord) (*Tile, error) {
	key := s.Key(c)
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("tile not found", zap.String("key", key))
			return DefaultTile(c), fmt.Errorf("%w: %s", ErrTileNotFound, key)
		}
		return s.corrupt(c, key, err)
	}

	tile, stored, err := decodeTile(c, data)
	if err != nil {
		return s.corrupt(c, key, err)
	}
	if stored != nil && *stored != c {
		s.logger.Warn("tile record coordinates disagree with key",
			zap.String("key", key),
			zap.Stringer("stored", *stored),
		)
	}
	s.logger.Debug("tile loaded", zap.String("key", key), zap.Int("items", tile.Items.Len()))
	return tile, nil
}

func (s *TileStore) corrupt(c Coord, key string, err error) (*Tile, error) {
	s.logger.Warn("tile record unreadable, using default", zap.String("key", key), zap.Error(err))
	return errorTile(c, err), &CorruptTileError{Coord: c, Key: key, Err: err}
}

// Save writes t with a fresh timestamp, overwriting any existing record.
//
// Precondition: t must be non-nil.
// Postcondition: On success t.SavedAt is the save time in UTC. On failure
// t.SavedAt is unchanged.
func (s *TileStore) Save(ctx context.Context, t *Tile) error {
	prev := t.SavedAt
	t.SavedAt = s.clock.Now().UTC()
	data, err := encodeTile(t)
	if err != nil {
		t.SavedAt = prev
		return fmt.Errorf("encoding tile %s: %w", t.Coord, err)
	}
	key := s.Key(t.Coord)
	if err := s.blobs.Put(ctx, key, data); err != nil {
		t.SavedAt = prev
		return fmt.Errorf("saving tile %s: %w", t.Coord, err)
	}
	s.logger.Debug("tile saved", zap.String("key", key))
	return nil
}

// SaveAll saves each tile in order, stopping at the first failure.
//
// Postcondition: Returns the number of tiles saved and any error.
func (s *TileStore) SaveAll(ctx context.Context, tiles []*Tile) (int, error) {
	for i, t := range tiles {
		if err := s.Save(ctx, t); err != nil {
			return i, err
		}
	}
	return len(tiles), nil
}
