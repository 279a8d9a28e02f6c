// Package player defines the player profile and its persistence.
package player

import (
	"time"

	"github.com/cory-johannsen/cogworld/internal/game/inventory"
	"github.com/cory-johannsen/cogworld/internal/game/world"
)

// DefaultHealth is the health of a new profile.
const DefaultHealth = 100

// Profile is the durable state of the local player.
type Profile struct {
	Name string
	// Health is carried for future damage systems; nothing here changes it.
	Health   int
	Position world.Coord
	// Inventory is flat: picked-up items are appended at the top level and
	// keep their own contents.
	Inventory *inventory.Tree
	// LastSave is when the profile was last saved; zero if never.
	LastSave time.Time
}

// NewProfile returns a fresh profile at the origin with an empty inventory.
func NewProfile(name string) *Profile {
	return &Profile{
		Name:      name,
		Health:    DefaultHealth,
		Inventory: &inventory.Tree{},
	}
}
