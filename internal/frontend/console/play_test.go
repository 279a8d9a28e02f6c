package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/cogworld/internal/clock"
	"github.com/cory-johannsen/cogworld/internal/game/inventory"
	"github.com/cory-johannsen/cogworld/internal/game/player"
	"github.com/cory-johannsen/cogworld/internal/game/session"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/storage/memory"
)

type playFixture struct {
	tiles    *world.TileStore
	profiles *player.Store
}

func newPlayFixture(t *testing.T) *playFixture {
	t.Helper()
	blobs := memory.New()
	clk := &clock.Fixed{T: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
	f := &playFixture{
		tiles:    world.NewTileStore(blobs, "world_tiles", clk, nil),
		profiles: player.NewStore(blobs, "player-1", "Player One", clk, nil),
	}
	origin := world.DefaultTile(world.Coord{})
	origin.Description = "A cramped workshop."
	origin.Exits.Set(world.North, true)
	origin.Items = inventory.NewTree([]inventory.Item{{Name: "lamp", Desc: "It flickers."}})
	require.NoError(t, f.tiles.Save(context.Background(), origin))
	return f
}

func (f *playFixture) play(t *testing.T, input string) (string, *Player, *session.Session) {
	t.Helper()
	var out bytes.Buffer
	sess := session.Start(context.Background(), session.Deps{Tiles: f.tiles, Profiles: f.profiles})
	p := NewPlayer(NewTerm(strings.NewReader(input), &out, false), sess, nil)
	require.NoError(t, p.Run(context.Background()))
	return out.String(), p, sess
}

func TestPlayer_RunUntilQuit(t *testing.T) {
	f := newPlayFixture(t)
	out, _, sess := f.play(t, "get lamp\nn\nquit\nlook\n")

	assert.Contains(t, out, "Welcome to Cog World.")
	assert.Contains(t, out, "A cramped workshop.")
	assert.Contains(t, out, "Location: (0,0,0)   Health: 100   Inventory: 0 items")
	assert.Contains(t, out, "You pick up the lamp.")
	assert.Contains(t, out, "Location: (0,0,0)   Health: 100   Inventory: 1 items")
	assert.Contains(t, out, "You move n.")
	assert.Contains(t, out, "Game saved. Goodbye.")
	assert.True(t, sess.Terminated())

	profile, err := f.profiles.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, world.Coord{Y: 1}, profile.Position)
}

func TestPlayer_EndOfInputThenCloseSaves(t *testing.T) {
	f := newPlayFixture(t)
	_, p, sess := f.play(t, "n\n")
	assert.False(t, sess.Terminated())

	require.NoError(t, p.Close(context.Background()))
	require.NoError(t, p.Close(context.Background()))

	profile, err := f.profiles.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, world.Coord{Y: 1}, profile.Position)
	assert.False(t, profile.LastSave.IsZero())
}

func TestPlayer_CancelledContextStops(t *testing.T) {
	f := newPlayFixture(t)
	sess := session.Start(context.Background(), session.Deps{Tiles: f.tiles, Profiles: f.profiles})
	var out bytes.Buffer
	p := NewPlayer(NewTerm(strings.NewReader("n\n"), &out, false), sess, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, p.Run(ctx))
	assert.Equal(t, world.Coord{}, sess.Profile().Position)
}

func TestPlayer_ClosedPlayerIgnoresInput(t *testing.T) {
	f := newPlayFixture(t)
	sess := session.Start(context.Background(), session.Deps{Tiles: f.tiles, Profiles: f.profiles})
	var out bytes.Buffer
	p := NewPlayer(NewTerm(strings.NewReader("n\n"), &out, false), sess, nil)

	require.NoError(t, p.Close(context.Background()))
	require.NoError(t, p.Run(context.Background()))
	assert.NotContains(t, out.String(), "You move n.")
}
