package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/game/command"
	"github.com/cory-johannsen/cogworld/internal/game/editor"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/observability"
)

// BuilderHelp lists the map builder commands.
var BuilderHelp = []string{
	"Commands:",
	"  show                    Show the current tile",
	"  desc <text>             Replace the description (no text clears it)",
	"  desc+ <text>            Append a paragraph to the description",
	"  exit <dir> on|off       Open or close an exit",
	"  toggle <dir>            Flip an exit",
	"  add [path] <name> [| <desc>]  Add an item, inside the item at path",
	"  go <dir>                Move, ignoring exits (n, ne, e, ...)",
	"  goto <x> <y> <z>        Jump to a coordinate",
	"  save                    Write the current tile",
	"  help                    Show this list",
	"  quit                    Leave the builder",
}

// Builder drives a tile editor from a terminal.
type Builder struct {
	term   *Term
	ed     *editor.Editor
	logger *zap.Logger
}

// NewBuilder binds an editor to a terminal.
//
// Precondition: term and ed must be non-nil.
func NewBuilder(term *Term, ed *editor.Editor, logger *zap.Logger) *Builder {
	return &Builder{term: term, ed: ed, logger: observability.OrNop(logger)}
}

// Run shows the current tile and reads builder commands until quit, end of
// input, or cancellation of ctx. Unsaved edits are not written on exit.
//
// Postcondition: Returns nil on quit, end of input, or cancellation; a read or
// write failure is returned wrapped.
func (b *Builder) Run(ctx context.Context) error {
	if err := b.term.WriteLines(b.render()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := b.term.Prompt(fmt.Sprintf("%s> ", b.ed.Position())); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		line, err := b.term.ReadLine()
		if errors.Is(err, io.EOF) {
			_ = b.term.WriteLine("")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		out, quit := b.Exec(ctx, line)
		if err := b.term.WriteLines(out); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one builder command and returns the lines to show and whether
// the builder should exit.
func (b *Builder) Exec(ctx context.Context, line string) ([]string, bool) {
	p := command.Parse(line)
	pal := b.term.Palette()
	fail := func(err error) []string {
		return []string{pal.Paint(Red, "Error: "+err.Error())}
	}

	switch p.Command {
	case "":
		return nil, false
	case "quit", "q":
		return []string{"Bye."}, true
	case "help", "?":
		return BuilderHelp, false
	case "show", "l", "look":
		return b.render(), false
	case "desc":
		text := p.RawArgs
		if err := b.ed.SetTileFields(editor.Fields{Description: &text}); err != nil {
			return fail(err), false
		}
		return b.render(), false
	case "desc+":
		if err := b.ed.AppendDescription(p.RawArgs); err != nil {
			return fail(err), false
		}
		return b.render(), false
	case "exit":
		if len(p.Args) != 2 || (p.Args[1] != "on" && p.Args[1] != "off") {
			return fail(errors.New("usage: exit <dir> on|off")), false
		}
		d, err := world.ParseDirection(p.Args[0])
		if err != nil {
			return fail(err), false
		}
		if err := b.ed.SetTileFields(editor.Fields{Exits: map[world.Direction]bool{d: p.Args[1] == "on"}}); err != nil {
			return fail(err), false
		}
		return b.render(), false
	case "toggle":
		if len(p.Args) != 1 {
			return fail(errors.New("usage: toggle <dir>")), false
		}
		d, err := world.ParseDirection(p.Args[0])
		if err != nil {
			return fail(err), false
		}
		if _, err := b.ed.ToggleExit(d); err != nil {
			return fail(err), false
		}
		return b.render(), false
	case "add":
		path, name, desc, err := parseAdd(p.RawArgs)
		if err != nil {
			return fail(err), false
		}
		if err := b.ed.AddItemUnder(path, name, desc); err != nil {
			return fail(err), false
		}
		return b.render(), false
	case "go":
		if len(p.Args) != 1 {
			return fail(errors.New("usage: go <dir>")), false
		}
		return b.move(ctx, p.Args[0]), false
	case "goto":
		c, err := parseCoord(p.Args)
		if err != nil {
			return fail(err), false
		}
		b.ed.Goto(ctx, c)
		return b.render(), false
	case "save":
		if err := b.ed.Save(ctx); err != nil {
			b.logger.Warn("save failed", zap.Error(err))
			return []string{pal.Paint(Red, b.ed.Toast())}, false
		}
		return []string{pal.Paint(Green, b.ed.Toast())}, false
	}

	if len(p.Args) == 0 {
		if _, err := world.ParseDirection(p.Command); err == nil {
			return b.move(ctx, p.Command), false
		}
	}
	return fail(fmt.Errorf("unknown command %q (try help)", p.Command)), false
}

func (b *Builder) move(ctx context.Context, token string) []string {
	d, err := world.ParseDirection(token)
	if err == nil {
		err = b.ed.Move(ctx, d)
	}
	if err != nil {
		return []string{b.term.Palette().Paint(Red, "Error: "+err.Error())}
	}
	return b.render()
}

// render formats the current tile for display.
func (b *Builder) render() []string {
	pal := b.term.Palette()
	v := b.ed.View()

	lines := []string{
		pal.Paint(BrightYellow, fmt.Sprintf("Tile %s", v.Coord)) + "  " + pal.Paint(BrightBlack, v.Key),
	}
	meta := "Last move: -"
	if v.LastMove != "" {
		meta = "Last move: " + string(v.LastMove)
	}
	if v.SavedAt.IsZero() {
		meta += "   Saved: never"
	} else {
		meta += "   Saved: " + v.SavedAt.Format(time.RFC3339)
	}
	lines = append(lines, pal.Paint(BrightBlack, meta))

	lines = append(lines, pal.Paint(BrightYellow, "Description:"))
	if v.Description == "" {
		lines = append(lines, "  (empty)")
	}
	for _, l := range strings.Split(v.Description, "\n") {
		if v.Description != "" {
			lines = append(lines, "  "+l)
		}
	}

	exits := make([]string, 0, len(world.Directions))
	for _, d := range world.Directions {
		mark := "[ ]"
		if v.Exits.Open(d) {
			mark = "[x]"
		}
		exits = append(exits, mark+" "+string(d))
	}
	lines = append(lines, pal.Paint(Cyan, "Exits: "+strings.Join(exits, "  ")))

	lines = append(lines, pal.Paint(BrightYellow, "Items:"))
	if len(v.Items) == 0 {
		lines = append(lines, "  (none)")
	}
	for _, row := range v.Items {
		lines = append(lines, fmt.Sprintf("  %-8s %s", "["+formatPath(row.Path)+"]", row.Text))
	}

	return append(lines, pal.Paint(BrightBlack, "Status: "+b.ed.Toast()))
}

// parseAdd splits "[path] <name> [| <desc>]". A leading token of dotted
// digits such as "0.2" is a path when a name follows it.
func parseAdd(raw string) ([]int, string, string, error) {
	head, desc, _ := strings.Cut(raw, "|")
	fields := strings.Fields(head)
	var path []int
	if len(fields) > 1 {
		if p, err := parsePath(fields[0]); err == nil {
			path = p
			head = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(head), fields[0]))
		}
	}
	name := strings.TrimSpace(head)
	if name == "" {
		return nil, "", "", errors.New("usage: add [path] <name> [| <desc>]")
	}
	return path, name, strings.TrimSpace(desc), nil
}

func parsePath(s string) ([]int, error) {
	parts := strings.Split(s, ".")
	path := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("bad path %q", s)
		}
		path = append(path, n)
	}
	return path, nil
}

func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

func parseCoord(args []string) (world.Coord, error) {
	if len(args) != 3 {
		return world.Coord{}, errors.New("usage: goto <x> <y> <z>")
	}
	var v [3]int
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return world.Coord{}, fmt.Errorf("bad coordinate %q", a)
		}
		v[i] = n
	}
	return world.Coord{X: v[0], Y: v[1], Z: v[2]}, nil
}
