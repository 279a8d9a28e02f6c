package session

import (
	"fmt"

	"github.com/cory-johannsen/cogworld/internal/game/inventory"
	"github.com/cory-johannsen/cogworld/internal/game/world"
)

// PlayerState is a read-only snapshot of the player for display.
type PlayerState struct {
	Name      string
	Health    int
	Position  world.Coord
	Inventory []inventory.Item
}

// HUD renders the one-line status bar, e.g.
// "Location: (0,1,0)   Health: 100   Inventory: 2 items".
func (p PlayerState) HUD() string {
	return fmt.Sprintf("Location: (%d,%d,%d)   Health: %d   Inventory: %d items",
		p.Position.X, p.Position.Y, p.Position.Z, p.Health, len(p.Inventory))
}

// PlayerState returns a snapshot of the current player.
func (s *Session) PlayerState() PlayerState {
	return PlayerState{
		Name:      s.profile.Name,
		Health:    s.profile.Health,
		Position:  s.profile.Position,
		Inventory: s.profile.Inventory.Items(),
	}
}
