package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/cogworld/internal/game/command"
	"github.com/cory-johannsen/cogworld/internal/game/inventory"
	"github.com/cory-johannsen/cogworld/internal/game/world"
)

// handlerUnknown names the fallback for lines no command accepts.
const handlerUnknown = "unknown"

// dispatch runs the handler for a parsed, non-blank line and returns the
// handler name.
func (s *Session) dispatch(ctx context.Context, p command.ParseResult) string {
	cmd, ok := s.registry.Resolve(p.Command)
	if !ok || (cmd.Exact && len(p.Args) > 0) {
		s.handleUnknown(p)
		return handlerUnknown
	}

	switch cmd.Handler {
	case command.HandlerQuit:
		s.handleQuit(ctx)
	case command.HandlerInventory:
		s.handleInventory()
	case command.HandlerLook:
		s.handleLook(p)
	case command.HandlerGet:
		s.handleGet(ctx, p)
	case command.HandlerMove:
		s.move(ctx, world.Direction(cmd.Name))
	case command.HandlerGo:
		if !s.handleGo(ctx, p) {
			s.handleUnknown(p)
			return handlerUnknown
		}
	case command.HandlerHelp:
		s.log.Append(s.registry.HelpLines()...)
	default:
		s.handleUnknown(p)
		return handlerUnknown
	}
	return cmd.Handler
}

func (s *Session) handleUnknown(p command.ParseResult) {
	s.log.Append(fmt.Sprintf("You can't '%s'.", p.Line))
}

func (s *Session) handleQuit(ctx context.Context) {
	s.log.Append("Game saved. Goodbye.")
	s.saveProfile(ctx)
	s.terminated = true
}

func (s *Session) handleInventory() {
	inv := s.profile.Inventory
	if inv.Len() == 0 {
		s.log.Append("You carry nothing.")
		return
	}
	s.log.Append("You are carrying:")
	for _, it := range inv.Items() {
		s.log.Append(it.Line())
	}
}

func (s *Session) handleLook(p command.ParseResult) {
	if len(p.Args) == 0 {
		s.log.Append(s.describeTile()...)
		return
	}
	target := p.Target()
	items := s.nav.Tile().Items
	h, ok := items.Find(target)
	if !ok {
		s.log.Append(fmt.Sprintf("You don't see '%s' here.", target))
		return
	}
	s.log.Append(describeContainer(items.Item(h))...)
}

func (s *Session) handleGet(ctx context.Context, p command.ParseResult) {
	if len(p.Args) == 0 {
		s.log.Append("Get what?")
		return
	}
	target := p.Target()
	got, ok := s.nav.Tile().Items.Extract(target)
	if !ok {
		s.log.Append(fmt.Sprintf("You can't find '%s' here.", target))
		return
	}
	s.profile.Inventory.Append(got)
	name := got.Name
	if name == "" {
		name = target
	}
	s.log.Append(fmt.Sprintf("You pick up the %s.", name))
	s.saveProfile(ctx)
}

// handleGo moves for "go <direction>", accepting short or long direction
// names. It reports false when the first argument names no direction.
func (s *Session) handleGo(ctx context.Context, p command.ParseResult) bool {
	if len(p.Args) == 0 {
		return false
	}
	d, err := world.ParseDirection(p.Args[0])
	if err != nil {
		return false
	}
	s.move(ctx, d)
	return true
}

// move walks the navigator one tile, narrates the destination, and persists
// the new position.
func (s *Session) move(ctx context.Context, d world.Direction) {
	err := s.nav.Move(ctx, d)
	switch {
	case errors.Is(err, world.ErrUnknownDirection):
		s.log.Append(fmt.Sprintf("You can't go '%s'.", d))
		return
	case errors.Is(err, world.ErrNoExit):
		s.log.Append("You can't go that way.")
		return
	}
	s.logTileLoad(s.nav.Position(), err)
	s.profile.Position = s.nav.Position()
	s.log.Append(fmt.Sprintf("You move %s.", d))
	s.log.Append(s.describeTile()...)
	s.saveProfile(ctx)
}

// describeTile narrates the current tile: description lines, open exits,
// and top-level items.
func (s *Session) describeTile() []string {
	tile := s.nav.Tile()
	lines := tile.DescriptionLines()

	if open := tile.Exits.OpenDirections(); len(open) > 0 {
		names := make([]string, len(open))
		for i, d := range open {
			names[i] = string(d)
		}
		lines = append(lines, "Exits: "+strings.Join(names, ", "))
	} else {
		lines = append(lines, "There are no visible exits.")
	}

	if tile.Items.Len() == 0 {
		return append(lines, "You see nothing of interest.")
	}
	lines = append(lines, "You see:")
	for _, it := range tile.Items.Items() {
		lines = append(lines, it.Line())
	}
	return lines
}

// describeContainer narrates an item and one level of its contents.
func describeContainer(it inventory.Item) []string {
	name := it.Name
	if name == "" {
		name = "something"
	}
	var lines []string
	if d := strings.TrimSpace(it.Desc); d != "" {
		lines = append(lines, name+": "+d)
	}
	if len(it.Contains) == 0 {
		return append(lines, name+" is empty.")
	}
	lines = append(lines, "Inside "+name+":")
	for _, child := range it.Contains {
		lines = append(lines, child.Line())
	}
	return lines
}
