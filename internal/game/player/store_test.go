package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/cogworld/internal/clock"
	"github.com/cory-johannsen/cogworld/internal/game/inventory"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/storage/memory"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestStore() (*Store, *memory.Store) {
	blobs := memory.New()
	return NewStore(blobs, "player-1", "Player One", &clock.Fixed{T: testNow}, nil), blobs
}

func TestNewProfile(t *testing.T) {
	p := NewProfile("Ada")
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, DefaultHealth, p.Health)
	assert.Equal(t, world.Coord{}, p.Position)
	assert.Equal(t, 0, p.Inventory.Len())
	assert.True(t, p.LastSave.IsZero())
}

func TestStore_LoadMissing(t *testing.T) {
	s, blobs := newTestStore()
	p, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrProfileNotFound)
	require.NotNil(t, p)
	assert.Equal(t, "Player One", p.Name)
	assert.Equal(t, 0, blobs.Len())
}

func TestStore_CreateWritesNullLastSave(t *testing.T) {
	s, blobs := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, s.Default()))

	data, err := blobs.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Player One",
		"stats": {"health": 100},
		"position": {"x": 0, "y": 0, "z": 0},
		"inventory": [],
		"meta": {"last_save": null}
	}`, string(data))
}

func TestStore_SaveThenLoad(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	p := NewProfile("Ada")
	p.Health = 42
	p.Position = world.Coord{X: -3, Y: 1, Z: 2}
	p.Inventory.Append(inventory.Item{Name: "pouch", Contains: []inventory.Item{{Name: "coin"}}})

	require.NoError(t, s.Save(ctx, p))
	assert.Equal(t, testNow, p.LastSave)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 42, got.Health)
	assert.Equal(t, p.Position, got.Position)
	assert.Equal(t, p.Inventory.Items(), got.Inventory.Items())
	assert.Equal(t, testNow, got.LastSave)
}

func TestStore_LoadCorrupt(t *testing.T) {
	s, blobs := newTestStore()
	ctx := context.Background()
	require.NoError(t, blobs.Put(ctx, "player-1", []byte("{not json")))

	p, err := s.Load(ctx)
	var corrupt *CorruptProfileError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, "player-1", corrupt.Key)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
	assert.Equal(t, NewProfile("Player One"), p)
}

func TestStore_LoadLenient(t *testing.T) {
	s, blobs := newTestStore()
	ctx := context.Background()
	require.NoError(t, blobs.Put(ctx, "player-1", []byte(`{"position": {"x": 4}, "inventory": 7, "meta": {"last_save": "garbage"}}`)))

	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Player One", p.Name)
	assert.Equal(t, DefaultHealth, p.Health)
	assert.Equal(t, world.Coord{X: 4}, p.Position)
	assert.Equal(t, 0, p.Inventory.Len())
	assert.True(t, p.LastSave.IsZero())
}

func TestStore_SaveFailure(t *testing.T) {
	s, blobs := newTestStore()
	blobs.FailPuts = errors.New("read-only filesystem")
	p := NewProfile("Ada")
	err := s.Save(context.Background(), p)
	assert.ErrorContains(t, err, "read-only filesystem")
	assert.True(t, p.LastSave.IsZero())
	assert.Equal(t, "player-1", s.Key())
}

// Property-based tests

func TestPropertyPositionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, _ := newTestStore()
		ctx := context.Background()
		p := NewProfile("Ada")
		p.Position = world.Coord{
			X: rapid.IntRange(-500, 500).Draw(t, "x"),
			Y: rapid.IntRange(-500, 500).Draw(t, "y"),
			Z: rapid.IntRange(-500, 500).Draw(t, "z"),
		}
		if err := s.Save(ctx, p); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.Position != p.Position {
			t.Fatalf("position %v loaded as %v", p.Position, got.Position)
		}
	})
}
