package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Greater(t, len(r.Commands()), 0)
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("look")
	assert.True(t, ok)
	assert.Equal(t, "look", cmd.Name)
	assert.Equal(t, HandlerLook, cmd.Handler)
}

func TestResolve_Alias(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("grab")
	assert.True(t, ok)
	assert.Equal(t, "get", cmd.Name)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	for _, input := range []string{"dance", "north", "up", "drop"} {
		_, ok := r.Resolve(input)
		assert.False(t, ok, "input %q should not resolve", input)
	}
}

func TestResolve_AllMovementDirections(t *testing.T) {
	r := DefaultRegistry()
	for _, d := range []string{"n", "ne", "e", "se", "s", "sw", "w", "nw"} {
		cmd, ok := r.Resolve(d)
		require.True(t, ok, "direction %q not found", d)
		assert.Equal(t, HandlerMove, cmd.Handler)
		assert.True(t, cmd.Exact)
		assert.True(t, IsMovementCommand(d))
	}
}

func TestResolve_AllCommands(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		handler string
		exact   bool
	}{
		{"go", HandlerGo, false},
		{"move", HandlerGo, false},
		{"walk", HandlerGo, false},
		{"look", HandlerLook, false},
		{"l", HandlerLook, false},
		{"get", HandlerGet, false},
		{"take", HandlerGet, false},
		{"inventory", HandlerInventory, true},
		{"inv", HandlerInventory, true},
		{"i", HandlerInventory, true},
		{"quit", HandlerQuit, true},
		{"exit", HandlerQuit, true},
		{"help", HandlerHelp, true},
		{"?", HandlerHelp, true},
	}

	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q wrong handler", tt.input)
		assert.Equal(t, tt.exact, cmd.Exact, "input %q exactness", tt.input)
	}
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Aliases: []string{"t"}, Handler: "a"},
		{Name: "test2", Aliases: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestCommandsByCategory(t *testing.T) {
	r := DefaultRegistry()
	cats := r.CommandsByCategory()

	assert.Len(t, cats, 3)
	assert.Len(t, cats[CategoryMovement], 9)
	assert.Equal(t, "n", cats[CategoryMovement][0].Name)
	assert.Equal(t, "go", cats[CategoryMovement][8].Name)
}

func TestHelpLines(t *testing.T) {
	lines := DefaultRegistry().HelpLines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Movement:", lines[0])
	assert.Contains(t, lines, "World:")
	assert.Contains(t, lines, "System:")
	assert.Contains(t, lines, "  look (l): Look around, or at an item (look [name])")
	assert.Contains(t, lines, "  quit (exit): Save and leave the game")
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		resolved, ok := r.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("canonical name %q did not resolve", cmd.Name)
		}
		if resolved.Name != cmd.Name {
			t.Fatalf("canonical name %q resolved to %q", cmd.Name, resolved.Name)
		}

		for _, alias := range cmd.Aliases {
			aliasResolved, ok := r.Resolve(alias)
			if !ok {
				t.Fatalf("alias %q did not resolve", alias)
			}
			if aliasResolved.Name != cmd.Name {
				t.Fatalf("alias %q resolved to %q, expected %q", alias, aliasResolved.Name, cmd.Name)
			}
		}
	})
}
