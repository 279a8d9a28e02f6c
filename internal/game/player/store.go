package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/clock"
	"github.com/cory-johannsen/cogworld/internal/game/inventory"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/observability"
	"github.com/cory-johannsen/cogworld/internal/storage"
)

// ErrProfileNotFound is returned by Load when no profile record exists.
var ErrProfileNotFound = errors.New("profile not found")

// CorruptProfileError reports a stored profile that could not be read or parsed.
type CorruptProfileError struct {
	Key string
	Err error
}

func (e *CorruptProfileError) Error() string {
	return fmt.Sprintf("profile %s: %v", e.Key, e.Err)
}

func (e *CorruptProfileError) Unwrap() error {
	return e.Err
}

type profileRecord struct {
	Name      string           `json:"name"`
	Stats     statsRecord      `json:"stats"`
	Position  world.Coord      `json:"position"`
	Inventory []inventory.Item `json:"inventory"`
	Meta      metaRecord       `json:"meta"`
}

type statsRecord struct {
	Health int `json:"health"`
}

type metaRecord struct {
	LastSave *string `json:"last_save"`
}

// rawProfileRecord mirrors profileRecord for lenient decoding.
type rawProfileRecord struct {
	Name  *string `json:"name"`
	Stats struct {
		Health *int `json:"health"`
	} `json:"stats"`
	Position  world.Coord     `json:"position"`
	Inventory json.RawMessage `json:"inventory"`
	Meta      struct {
		LastSave *string `json:"last_save"`
	} `json:"meta"`
}

// Store keeps the profile as a single record under a well-known key.
type Store struct {
	blobs       storage.BlobStore
	key         string
	defaultName string
	clock       clock.Clock
	logger      *zap.Logger
}

// NewStore creates a profile Store.
//
// Precondition: blobs and clk must be non-nil; key must be a valid storage key.
func NewStore(blobs storage.BlobStore, key, defaultName string, clk clock.Clock, logger *zap.Logger) *Store {
	return &Store{
		blobs:       blobs,
		key:         key,
		defaultName: defaultName,
		clock:       clk,
		logger:      observability.OrNop(logger),
	}
}

// Key returns the storage key of the profile record.
func (s *Store) Key() string {
	return s.key
}

// Default returns a new profile carrying the configured name.
func (s *Store) Default() *Profile {
	return NewProfile(s.defaultName)
}

// Load reads the profile. A missing record yields Default with
// ErrProfileNotFound; an unreadable one yields Default with a
// *CorruptProfileError.
//
// Postcondition: The returned profile is non-nil.
func (s *Store) Load(ctx context.Context) (*Profile, error) {
	data, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s.Default(), fmt.Errorf("%w: %s", ErrProfileNotFound, s.key)
		}
		return s.corrupt(err)
	}
	p, err := s.decode(data)
	if err != nil {
		return s.corrupt(err)
	}
	s.logger.Debug("profile loaded",
		zap.String("key", s.key),
		zap.Stringer("position", p.Position),
		zap.Int("inventory", p.Inventory.Len()),
	)
	return p, nil
}

func (s *Store) corrupt(err error) (*Profile, error) {
	s.logger.Warn("profile unreadable, using defaults", zap.String("key", s.key), zap.Error(err))
	return s.Default(), &CorruptProfileError{Key: s.key, Err: err}
}

func (s *Store) decode(data []byte) (*Profile, error) {
	var raw rawProfileRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	items, err := inventory.DecodeList(raw.Inventory)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	p := s.Default()
	p.Position = raw.Position
	p.Inventory = inventory.NewTree(items)
	if raw.Name != nil {
		p.Name = *raw.Name
	}
	if raw.Stats.Health != nil {
		p.Health = *raw.Stats.Health
	}
	if raw.Meta.LastSave != nil {
		if ts, err := time.Parse(time.RFC3339Nano, *raw.Meta.LastSave); err == nil {
			p.LastSave = ts.UTC()
		}
	}
	return p, nil
}

// Create writes p exactly as given, without stamping LastSave. It is used to
// persist a first-run default profile.
func (s *Store) Create(ctx context.Context, p *Profile) error {
	return s.write(ctx, p)
}

// Save stamps p.LastSave with the current time and writes it, overwriting
// any existing record.
//
// Postcondition: On failure p.LastSave is unchanged.
func (s *Store) Save(ctx context.Context, p *Profile) error {
	prev := p.LastSave
	p.LastSave = s.clock.Now().UTC()
	if err := s.write(ctx, p); err != nil {
		p.LastSave = prev
		return err
	}
	return nil
}

func (s *Store) write(ctx context.Context, p *Profile) error {
	rec := profileRecord{
		Name:      p.Name,
		Stats:     statsRecord{Health: p.Health},
		Position:  p.Position,
		Inventory: []inventory.Item{},
	}
	if p.Inventory != nil {
		rec.Inventory = p.Inventory.Items()
	}
	if !p.LastSave.IsZero() {
		ts := p.LastSave.UTC().Format(time.RFC3339Nano)
		rec.Meta.LastSave = &ts
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("writing profile %s: %w", s.key, err)
	}
	s.logger.Debug("profile saved", zap.String("key", s.key), zap.Stringer("position", p.Position))
	return nil
}
