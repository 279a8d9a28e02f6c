package editor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/cogworld/internal/clock"
	"github.com/cory-johannsen/cogworld/internal/game/inventory"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/storage/memory"
)

func newTestEditor(t *testing.T) (*Editor, *world.TileStore, *memory.Store) {
	t.Helper()
	blobs := memory.New()
	store := world.NewTileStore(blobs, "world_tiles", &clock.Fixed{T: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}, nil)
	return Open(context.Background(), store, world.Coord{}, nil), store, blobs
}

func TestOpen_NewRoom(t *testing.T) {
	e, _, _ := newTestEditor(t)
	assert.Equal(t, "New room (no file yet)", e.Toast())
	assert.Equal(t, "", e.Tile().Description)
	assert.Equal(t, world.Coord{}, e.Position())
}

func TestOpen_ExistingRoom(t *testing.T) {
	blobs := memory.New()
	store := world.NewTileStore(blobs, "world_tiles", clock.System(), nil)
	tile := world.DefaultTile(world.Coord{X: 2})
	tile.Description = "Stored."
	require.NoError(t, store.Save(context.Background(), tile))

	e := Open(context.Background(), store, world.Coord{X: 2}, nil)
	assert.Equal(t, "Loaded from world_tiles/02-00-00", e.Toast())
	assert.Equal(t, "Stored.", e.View().Description)
}

func TestOpen_CorruptRoom(t *testing.T) {
	blobs := memory.New()
	store := world.NewTileStore(blobs, "world_tiles", clock.System(), nil)
	require.NoError(t, blobs.Put(context.Background(), "world_tiles/00-00-00", []byte("[")))

	e := Open(context.Background(), store, world.Coord{}, nil)
	assert.True(t, strings.HasPrefix(e.Toast(), "Load error: "), e.Toast())
	assert.Equal(t, "", e.Tile().Description)
}

func TestSetTileFields(t *testing.T) {
	e, _, _ := newTestEditor(t)
	desc := "A quiet chapel."
	require.NoError(t, e.SetTileFields(Fields{
		Description: &desc,
		Exits:       map[world.Direction]bool{world.North: true, world.East: true},
	}))
	v := e.View()
	assert.Equal(t, desc, v.Description)
	assert.Equal(t, []world.Direction{world.North, world.East}, v.Exits.OpenDirections())

	require.NoError(t, e.SetTileFields(Fields{Exits: map[world.Direction]bool{world.North: false}}))
	assert.Equal(t, []world.Direction{world.East}, e.View().Exits.OpenDirections())
	assert.Equal(t, desc, e.View().Description)
}

func TestSetTileFields_RejectsInvalid(t *testing.T) {
	e, _, _ := newTestEditor(t)
	long := strings.Repeat("x", MaxDescriptionRunes+1)
	assert.ErrorIs(t, e.SetTileFields(Fields{Description: &long}), ErrTooLong)

	ok := "fine"
	err := e.SetTileFields(Fields{Description: &ok, Exits: map[world.Direction]bool{"up": true}})
	assert.ErrorIs(t, err, world.ErrUnknownDirection)
	assert.Equal(t, "", e.Tile().Description)
}

func TestAppendDescription(t *testing.T) {
	e, _, _ := newTestEditor(t)
	require.NoError(t, e.AppendDescription("First."))
	require.NoError(t, e.AppendDescription("Second."))
	assert.Equal(t, "First.\nSecond.", e.Tile().Description)
}

func TestToggleExit(t *testing.T) {
	e, _, _ := newTestEditor(t)
	open, err := e.ToggleExit(world.Southwest)
	require.NoError(t, err)
	assert.True(t, open)
	assert.True(t, e.Tile().Exits.Open(world.Southwest))

	_, err = e.ToggleExit("down")
	assert.ErrorIs(t, err, world.ErrUnknownDirection)
}

func TestAddItemUnder(t *testing.T) {
	e, _, _ := newTestEditor(t)
	require.NoError(t, e.AddItemUnder(nil, " trunk ", " battered "))
	require.NoError(t, e.AddItemUnder([]int{0}, "key", ""))
	require.NoError(t, e.AddItemUnder(nil, "lamp", ""))

	rows := e.View().Items
	require.Len(t, rows, 3)
	assert.Equal(t, "- trunk: battered", rows[0].Text)
	assert.Equal(t, "  - key", rows[1].Text)
	assert.Equal(t, []int{0, 0}, rows[1].Path)
	assert.Equal(t, 1, rows[1].Depth)
	assert.Equal(t, []int{1}, rows[2].Path)
}

func TestAddItemUnder_Rejects(t *testing.T) {
	e, _, _ := newTestEditor(t)
	assert.ErrorIs(t, e.AddItemUnder(nil, "  ", ""), inventory.ErrEmptyName)
	assert.ErrorIs(t, e.AddItemUnder([]int{0}, "key", ""), inventory.ErrBadPath)
	assert.ErrorIs(t, e.AddItemUnder(nil, strings.Repeat("n", MaxNameRunes+1), ""), ErrTooLong)
	assert.ErrorIs(t, e.AddItemUnder(nil, "note", strings.Repeat("d", MaxDescriptionRunes+1)), ErrTooLong)
	assert.NoError(t, e.AddItemUnder(nil, strings.Repeat("é", MaxNameRunes), ""))
	assert.Len(t, e.View().Items, 1)
}

func TestMove_RecordsLastMoveAndIgnoresExits(t *testing.T) {
	e, _, _ := newTestEditor(t)
	require.NoError(t, e.Move(context.Background(), world.Northwest))
	assert.Equal(t, world.Coord{X: -1, Y: 1}, e.Position())
	assert.Equal(t, world.Northwest, e.View().LastMove)
	assert.Equal(t, "New room (no file yet)", e.Toast())

	assert.ErrorIs(t, e.Move(context.Background(), "up"), world.ErrUnknownDirection)
	assert.Equal(t, world.Coord{X: -1, Y: 1}, e.Position())
}

func TestSaveThenReload(t *testing.T) {
	e, store, _ := newTestEditor(t)
	ctx := context.Background()
	desc := "Workshop."
	require.NoError(t, e.SetTileFields(Fields{Description: &desc, Exits: map[world.Direction]bool{world.South: true}}))
	require.NoError(t, e.AddItemUnder(nil, "anvil", "heavy"))
	require.NoError(t, e.Save(ctx))
	assert.Equal(t, "Saved to world_tiles/00-00-00", e.Toast())

	tile, err := store.Load(ctx, world.Coord{})
	require.NoError(t, err)
	assert.Equal(t, "Workshop.", tile.Description)
	assert.True(t, tile.Exits.Open(world.South))
	assert.Equal(t, []inventory.Item{{Name: "anvil", Desc: "heavy"}}, tile.Items.Items())

	e.Goto(ctx, world.Coord{X: 5})
	assert.Equal(t, "New room (no file yet)", e.Toast())
	e.Goto(ctx, world.Coord{})
	assert.Equal(t, "Loaded from world_tiles/00-00-00", e.Toast())
	assert.Equal(t, "Workshop.", e.View().Description)
}

func TestSave_Failure(t *testing.T) {
	e, _, blobs := newTestEditor(t)
	blobs.FailPuts = errors.New("no space")
	err := e.Save(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Save error: saving tile (0,0,0): no space", e.Toast())
}
