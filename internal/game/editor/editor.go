// Package editor provides the authoring operations of the map builder: view
// and edit the tile under the cursor, add items, move freely, and save.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/observability"
)

// Authoring limits, in runes.
const (
	MaxNameRunes        = 60
	MaxDescriptionRunes = 2000
)

// ErrTooLong is returned when a name or description exceeds its limit.
var ErrTooLong = errors.New("text too long")

// Editor edits one tile at a time. Every load and save leaves a one-line
// status message in Toast.
type Editor struct {
	nav    *world.Navigator
	logger *zap.Logger
	toast  string
}

// Open places an editor at start and loads that tile.
//
// Precondition: store must be non-nil.
// Postcondition: Returns a ready Editor; the load outcome is in Toast.
func Open(ctx context.Context, store *world.TileStore, start world.Coord, logger *zap.Logger) *Editor {
	e := &Editor{logger: observability.OrNop(logger)}
	nav, err := world.NewNavigator(ctx, store, start)
	e.nav = nav
	e.afterLoad(err)
	return e
}

// afterLoad records the load outcome. A missing or unreadable tile is
// presented with an empty description so the placeholder text is never saved.
func (e *Editor) afterLoad(err error) {
	key := e.key()
	var corrupt *world.CorruptTileError
	switch {
	case err == nil:
		e.toast = "Loaded from " + key
	case errors.Is(err, world.ErrTileNotFound):
		e.nav.Tile().Description = ""
		e.toast = "New room (no file yet)"
	case errors.As(err, &corrupt):
		e.nav.Tile().Description = ""
		e.toast = fmt.Sprintf("Load error: %v", corrupt.Err)
	default:
		e.nav.Tile().Description = ""
		e.toast = fmt.Sprintf("Load error: %v", err)
	}
	e.logger.Debug("editor loaded tile", zap.String("key", key), zap.String("status", e.toast))
}

func (e *Editor) key() string {
	return e.nav.Store().Key(e.nav.Position())
}

// Toast returns the status message of the last load or save.
func (e *Editor) Toast() string {
	return e.toast
}

// Position returns the coordinate being edited.
func (e *Editor) Position() world.Coord {
	return e.nav.Position()
}

// Tile returns the tile being edited.
func (e *Editor) Tile() *world.Tile {
	return e.nav.Tile()
}

// ItemRow is one line of the flattened item listing.
type ItemRow struct {
	// Path addresses the item for AddItemUnder.
	Path []int
	// Depth is the nesting level; top-level items are 0.
	Depth int
	// Text is the indented display line, e.g. "  - key: brass".
	Text string
}

// View is an editable snapshot of the current tile.
type View struct {
	Coord       world.Coord
	Key         string
	Description string
	Exits       world.ExitMask
	LastMove    world.Direction
	SavedAt     time.Time
	Items       []ItemRow
}

// View returns a snapshot of the current tile for display.
func (e *Editor) View() View {
	t := e.nav.Tile()
	v := View{
		Coord:       t.Coord,
		Key:         e.key(),
		Description: t.Description,
		Exits:       t.Exits,
		LastMove:    t.LastMove,
		SavedAt:     t.SavedAt,
	}
	for _, entry := range t.Items.Flatten() {
		v.Items = append(v.Items, ItemRow{
			Path:  entry.Path,
			Depth: entry.Depth,
			Text:  strings.Repeat("  ", entry.Depth) + entry.Item.Line(),
		})
	}
	return v
}

// Fields are the tile attributes SetTileFields may change. Nil or empty
// fields are left as they are.
type Fields struct {
	Description *string
	Exits       map[world.Direction]bool
}

// SetTileFields applies f to the current tile. Nothing changes unless every
// field is valid.
//
// Postcondition: Returns ErrTooLong or world.ErrUnknownDirection with the
// tile unchanged, or nil.
func (e *Editor) SetTileFields(f Fields) error {
	if f.Description != nil {
		if err := checkLength("description", *f.Description, MaxDescriptionRunes); err != nil {
			return err
		}
	}
	for d := range f.Exits {
		if !d.Valid() {
			return fmt.Errorf("%w: %q", world.ErrUnknownDirection, d)
		}
	}
	t := e.nav.Tile()
	if f.Description != nil {
		t.Description = *f.Description
	}
	for d, open := range f.Exits {
		t.Exits.Set(d, open)
	}
	return nil
}

// AppendDescription adds text to the description as a new paragraph.
func (e *Editor) AppendDescription(text string) error {
	desc := e.nav.Tile().Description
	if desc != "" {
		desc += "\n"
	}
	desc += text
	return e.SetTileFields(Fields{Description: &desc})
}

// ToggleExit flips the exit in d and returns its new state.
func (e *Editor) ToggleExit(d world.Direction) (bool, error) {
	if !d.Valid() {
		return false, fmt.Errorf("%w: %q", world.ErrUnknownDirection, d)
	}
	return e.nav.Tile().Exits.Toggle(d), nil
}

// AddItemUnder adds a new empty item at the top level (empty path) or inside
// the item addressed by path. Name and description are trimmed.
//
// Postcondition: Returns inventory.ErrEmptyName, inventory.ErrBadPath, or
// ErrTooLong with the tile unchanged, or nil.
func (e *Editor) AddItemUnder(path []int, name, desc string) error {
	name = strings.TrimSpace(name)
	desc = strings.TrimSpace(desc)
	if err := checkLength("item name", name, MaxNameRunes); err != nil {
		return err
	}
	if err := checkLength("item description", desc, MaxDescriptionRunes); err != nil {
		return err
	}
	_, err := e.nav.Tile().Items.Insert(path, name, desc)
	return err
}

// Move steps one tile in d regardless of exits, records d as the new tile's
// LastMove, and loads it. Unsaved edits to the tile being left are dropped.
func (e *Editor) Move(ctx context.Context, d world.Direction) error {
	err := e.nav.Step(ctx, d)
	if errors.Is(err, world.ErrUnknownDirection) {
		return err
	}
	e.afterLoad(err)
	return nil
}

// Goto jumps to c and loads it.
func (e *Editor) Goto(ctx context.Context, c world.Coord) {
	e.afterLoad(e.nav.Goto(ctx, c))
}

// Save writes the current tile.
//
// Postcondition: Toast reports the outcome; the error is returned as well.
func (e *Editor) Save(ctx context.Context) error {
	if err := e.nav.Store().Save(ctx, e.nav.Tile()); err != nil {
		e.toast = fmt.Sprintf("Save error: %v", err)
		e.logger.Warn("tile save failed", zap.String("key", e.key()), zap.Error(err))
		return err
	}
	e.toast = "Saved to " + e.key()
	return nil
}

func checkLength(field, s string, max int) error {
	if n := utf8.RuneCountInString(s); n > max {
		return fmt.Errorf("%w: %s has %d characters, limit %d", ErrTooLong, field, n, max)
	}
	return nil
}
