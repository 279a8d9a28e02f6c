package world

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cory-johannsen/cogworld/internal/game/inventory"
)

// MissingDescription is the description of a tile that has never been saved.
const MissingDescription = "(This room does not exist yet.)"

// Tile is the state of one grid coordinate.
type Tile struct {
	// Coord is the tile's address; it is the identity key.
	Coord Coord
	// Description is free text; "\n" separates paragraphs.
	Description string
	// Exits marks which compass directions are passable.
	Exits ExitMask
	// Items holds the tile's item tree in insertion order.
	Items *inventory.Tree
	// LastMove is the direction last used to arrive while authoring, or "".
	LastMove Direction
	// SavedAt is when the tile was last persisted; zero if never.
	SavedAt time.Time
}

// DefaultTile returns the tile used for a coordinate with no stored record.
//
// Postcondition: every exit is closed and the item tree is empty.
func DefaultTile(c Coord) *Tile {
	return &Tile{
		Coord:       c,
		Description: MissingDescription,
		Items:       &inventory.Tree{},
	}
}

// errorTile returns the tile used when the stored record cannot be read.
func errorTile(c Coord, reason error) *Tile {
	t := DefaultTile(c)
	t.Description = fmt.Sprintf("(Error loading room: %v)", reason)
	return t
}

// DescriptionLines returns the trimmed description split at newlines, or nil
// when the description is blank.
func (t *Tile) DescriptionLines() []string {
	d := strings.TrimSpace(t.Description)
	if d == "" {
		return nil
	}
	return strings.Split(d, "\n")
}

// tileRecord is the persisted JSON shape of a tile.
type tileRecord struct {
	Coords      Coord            `json:"coords"`
	LastMove    *string          `json:"last_move"`
	Exits       ExitMask         `json:"exits"`
	Description string           `json:"description"`
	Items       []inventory.Item `json:"items"`
	SavedAt     string           `json:"saved_at"`
}

// rawTileRecord mirrors tileRecord for lenient decoding.
type rawTileRecord struct {
	Coords      *Coord          `json:"coords"`
	LastMove    *string         `json:"last_move"`
	Exits       ExitMask        `json:"exits"`
	Description *string         `json:"description"`
	Items       json.RawMessage `json:"items"`
	SavedAt     *string         `json:"saved_at"`
}

// encodeTile serializes t in the persisted schema.
func encodeTile(t *Tile) ([]byte, error) {
	rec := tileRecord{
		Coords:      t.Coord,
		Exits:       t.Exits,
		Description: t.Description,
		Items:       []inventory.Item{},
		SavedAt:     t.SavedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.Items != nil {
		rec.Items = t.Items.Items()
	}
	if t.LastMove != "" {
		lm := string(t.LastMove)
		rec.LastMove = &lm
	}
	return json.MarshalIndent(rec, "", "  ")
}

// decodeTile parses a persisted record for the tile at c. The tile is always
// addressed by c; the coordinates stored in the record are returned separately
// so the caller can report a mismatch.
//
// Postcondition: Returns the tile and the stored coordinates (nil when
// absent), or a non-nil parse error.
func decodeTile(c Coord, data []byte) (*Tile, *Coord, error) {
	var raw rawTileRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	items, err := inventory.DecodeList(raw.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("items: %w", err)
	}
	t := &Tile{
		Coord: c,
		Exits: raw.Exits,
		Items: inventory.NewTree(items),
	}
	if raw.Description != nil {
		t.Description = *raw.Description
	}
	if raw.LastMove != nil {
		if d, err := ParseDirection(*raw.LastMove); err == nil {
			t.LastMove = d
		}
	}
	if raw.SavedAt != nil {
		if ts, err := time.Parse(time.RFC3339Nano, *raw.SavedAt); err == nil {
			t.SavedAt = ts.UTC()
		}
	}
	return t, raw.Coords, nil
}
