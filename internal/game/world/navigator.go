package world

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoExit is returned by Move when the current tile has no exit that way.
var ErrNoExit = errors.New("no exit in that direction")

// Navigator holds a position and the tile loaded there.
type Navigator struct {
	store *TileStore
	pos   Coord
	tile  *Tile
}

// NewNavigator places a navigator at start and loads its tile.
//
// Precondition: store must be non-nil.
// Postcondition: The navigator is always usable; the error is the load
// outcome of the start tile (see TileStore.Load).
func NewNavigator(ctx context.Context, store *TileStore, start Coord) (*Navigator, error) {
	n := &Navigator{store: store}
	err := n.Goto(ctx, start)
	return n, err
}

// Position returns the current coordinate.
func (n *Navigator) Position() Coord {
	return n.pos
}

// Tile returns the tile loaded at the current coordinate.
func (n *Navigator) Tile() *Tile {
	return n.tile
}

// Store returns the tile store the navigator loads from.
func (n *Navigator) Store() *TileStore {
	return n.store
}

// Move walks one tile in d through an open exit.
//
// Postcondition: ErrUnknownDirection and ErrNoExit leave the navigator
// unchanged. Otherwise the navigator has moved, and any error is the load
// outcome of the destination tile.
func (n *Navigator) Move(ctx context.Context, d Direction) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDirection, d)
	}
	if !n.tile.Exits.Open(d) {
		return fmt.Errorf("%w: %s from %s", ErrNoExit, d.Long(), n.pos)
	}
	return n.Goto(ctx, n.pos.Step(d))
}

// Step walks one tile in d ignoring exits, and records d as the destination's
// LastMove. Authoring tools use it to lay out new rooms.
//
// Postcondition: ErrUnknownDirection leaves the navigator unchanged.
// Otherwise the error is the load outcome of the destination tile.
func (n *Navigator) Step(ctx context.Context, d Direction) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDirection, d)
	}
	err := n.Goto(ctx, n.pos.Step(d))
	n.tile.LastMove = d
	return err
}

// Goto jumps to c and loads its tile.
//
// Postcondition: The navigator is at c; the error is the load outcome.
func (n *Navigator) Goto(ctx context.Context, c Coord) error {
	tile, err := n.store.Load(ctx, c)
	n.pos = c
	n.tile = tile
	return err
}

// Reload re-reads the tile at the current coordinate, discarding unsaved edits.
func (n *Navigator) Reload(ctx context.Context) error {
	return n.Goto(ctx, n.pos)
}

// IsLoadOutcome reports whether err only describes how a tile was loaded
// (missing or corrupt), as opposed to a rejected move.
func IsLoadOutcome(err error) bool {
	var corrupt *CorruptTileError
	return errors.Is(err, ErrTileNotFound) || errors.As(err, &corrupt)
}
