// Package world provides the tile grid: coordinates and their storage keys,
// compass directions, exit masks, tiles, the tile store, and the navigator.
package world

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned when a token names no compass direction.
var ErrUnknownDirection = errors.New("unknown direction")

// Direction is one of the eight compass directions, held as its short token.
type Direction string

// Compass directions.
const (
	North     Direction = "n"
	Northeast Direction = "ne"
	East      Direction = "e"
	Southeast Direction = "se"
	South     Direction = "s"
	Southwest Direction = "sw"
	West      Direction = "w"
	Northwest Direction = "nw"
)

// Directions lists the compass directions in canonical order. Exit masks are
// indexed and serialized in this order.
var Directions = [8]Direction{North, Northeast, East, Southeast, South, Southwest, West, Northwest}

var longNames = map[Direction]string{
	North:     "north",
	Northeast: "northeast",
	East:      "east",
	Southeast: "southeast",
	South:     "south",
	Southwest: "southwest",
	West:      "west",
	Northwest: "northwest",
}

// vectors are unit offsets on the horizontal plane; z never changes.
var vectors = map[Direction]Coord{
	North:     {X: 0, Y: 1},
	Northeast: {X: 1, Y: 1},
	East:      {X: 1, Y: 0},
	Southeast: {X: 1, Y: -1},
	South:     {X: 0, Y: -1},
	Southwest: {X: -1, Y: -1},
	West:      {X: -1, Y: 0},
	Northwest: {X: -1, Y: 1},
}

// Valid reports whether d is one of the eight compass directions.
func (d Direction) Valid() bool {
	_, ok := vectors[d]
	return ok
}

// Index returns d's position in Directions, or -1.
func (d Direction) Index() int {
	for i, x := range Directions {
		if x == d {
			return i
		}
	}
	return -1
}

// Long returns the spelled-out name, e.g. "northeast".
func (d Direction) Long() string {
	return longNames[d]
}

// Vector returns the unit offset applied by moving in d.
//
// Precondition: d.Valid().
func (d Direction) Vector() Coord {
	return vectors[d]
}

// Opposite returns the direction pointing back the way d came.
//
// Precondition: d.Valid() for a meaningful result.
func (d Direction) Opposite() Direction {
	if i := d.Index(); i >= 0 {
		return Directions[(i+4)%len(Directions)]
	}
	return ""
}

// ParseDirection accepts a short token ("ne") or a long name ("northeast"),
// case-insensitively and ignoring surrounding space.
//
// Postcondition: Returns a valid Direction or an error wrapping ErrUnknownDirection.
func ParseDirection(token string) (Direction, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if d := Direction(t); d.Valid() {
		return d, nil
	}
	for d, long := range longNames {
		if long == t {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, t)
}

// Coord addresses one tile in the sparse, unbounded grid.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Add returns c offset by v.
func (c Coord) Add(v Coord) Coord {
	return Coord{X: c.X + v.X, Y: c.Y + v.Y, Z: c.Z + v.Z}
}

// Step returns the coordinate one tile away in d.
//
// Precondition: d.Valid().
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Vector())
}

// String renders c as "(x,y,z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Encode returns the storage identifier of c: each axis as at least two
// digits, negative values prefixed with "-", joined by "-" in x-y-z order.
// For example (5,-5,0) encodes as "05--05-00".
//
// Encode is injective for every coordinate. Identifiers sort consistently
// per axis only while every magnitude is below 100, and a negative value does
// not sort next to its positive counterpart.
func (c Coord) Encode() string {
	return pad(c.X) + "-" + pad(c.Y) + "-" + pad(c.Z)
}

func pad(n int) string {
	if n < 0 {
		return fmt.Sprintf("-%02d", -n)
	}
	return fmt.Sprintf("%02d", n)
}
