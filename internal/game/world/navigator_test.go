package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNavigator_LoadsStartTile(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleTile(Coord{})))

	nav, err := NewNavigator(ctx, s, Coord{})
	require.NoError(t, err)
	assert.Equal(t, Coord{}, nav.Position())
	assert.Equal(t, "A dusty cellar.\nCobwebs hang low.", nav.Tile().Description)
	assert.Same(t, s, nav.Store())
}

func TestNewNavigator_UnexploredStart(t *testing.T) {
	s, _ := newTestStore()
	nav, err := NewNavigator(context.Background(), s, Coord{X: 7})
	assert.ErrorIs(t, err, ErrTileNotFound)
	assert.True(t, IsLoadOutcome(err))
	require.NotNil(t, nav.Tile())
	assert.Equal(t, MissingDescription, nav.Tile().Description)
}

func TestNavigator_MoveThroughOpenExit(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleTile(Coord{})))
	north := DefaultTile(Coord{Y: 1})
	north.Description = "A windy ledge."
	require.NoError(t, s.Save(ctx, north))

	nav, err := NewNavigator(ctx, s, Coord{})
	require.NoError(t, err)
	require.NoError(t, nav.Move(ctx, North))
	assert.Equal(t, Coord{Y: 1}, nav.Position())
	assert.Equal(t, "A windy ledge.", nav.Tile().Description)
}

func TestNavigator_MoveIntoUnexplored(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleTile(Coord{})))

	nav, _ := NewNavigator(ctx, s, Coord{})
	err := nav.Move(ctx, Southeast)
	assert.ErrorIs(t, err, ErrTileNotFound)
	assert.True(t, IsLoadOutcome(err))
	assert.Equal(t, Coord{X: 1, Y: -1}, nav.Position())
}

func TestNavigator_MoveRejected(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleTile(Coord{})))
	nav, _ := NewNavigator(ctx, s, Coord{})
	before := nav.Tile()

	err := nav.Move(ctx, West)
	assert.ErrorIs(t, err, ErrNoExit)
	assert.False(t, IsLoadOutcome(err))

	err = nav.Move(ctx, Direction("up"))
	assert.ErrorIs(t, err, ErrUnknownDirection)

	assert.Equal(t, Coord{}, nav.Position())
	assert.Same(t, before, nav.Tile())
}

func TestNavigator_StepIgnoresExitsAndRecordsLastMove(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	nav, _ := NewNavigator(ctx, s, Coord{})

	err := nav.Step(ctx, West)
	assert.ErrorIs(t, err, ErrTileNotFound)
	assert.Equal(t, Coord{X: -1}, nav.Position())
	assert.Equal(t, West, nav.Tile().LastMove)

	assert.ErrorIs(t, nav.Step(ctx, Direction("down")), ErrUnknownDirection)
	assert.Equal(t, Coord{X: -1}, nav.Position())
}

func TestNavigator_GotoAndReload(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleTile(Coord{Z: 2})))
	nav, _ := NewNavigator(ctx, s, Coord{})

	require.NoError(t, nav.Goto(ctx, Coord{Z: 2}))
	nav.Tile().Description = "edited"
	require.NoError(t, nav.Reload(ctx))
	assert.Equal(t, "A dusty cellar.\nCobwebs hang low.", nav.Tile().Description)
}
