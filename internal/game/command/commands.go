// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryMovement = "movement"
	CategoryWorld    = "world"
	CategorySystem   = "system"
)

// Categories lists the command categories in help order.
var Categories = []string{CategoryMovement, CategoryWorld, CategorySystem}

// Handler identifiers mapping commands to interpreter handlers.
const (
	HandlerMove      = "move"
	HandlerGo        = "go"
	HandlerLook      = "look"
	HandlerGet       = "get"
	HandlerInventory = "inventory"
	HandlerQuit      = "quit"
	HandlerHelp      = "help"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (movement, world, system).
	Category string
	// Handler names the interpreter handler that runs the command.
	Handler string
	// Exact commands only match when the whole line is the command word;
	// any trailing argument makes the line unrecognized.
	Exact bool
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "n", Help: "Move north", Category: CategoryMovement, Handler: HandlerMove, Exact: true},
		{Name: "ne", Help: "Move northeast", Category: CategoryMovement, Handler: HandlerMove, Exact: true},
		{Name: "e", Help: "Move east", Category: CategoryMovement, Handler: HandlerMove, Exact: true},
		{Name: "se", Help: "Move southeast", Category: CategoryMovement, Handler: HandlerMove, Exact: true},
		{Name: "s", Help: "Move south", Category: CategoryMovement, Handler: HandlerMove, Exact: true},
		{Name: "sw", Help: "Move southwest", Category: CategoryMovement, Handler: HandlerMove, Exact: true},
		{Name: "w", Help: "Move west", Category: CategoryMovement, Handler: HandlerMove, Exact: true},
		{Name: "nw", Help: "Move northwest", Category: CategoryMovement, Handler: HandlerMove, Exact: true},
		{Name: "go", Aliases: []string{"move", "walk"}, Help: "Walk in a direction (go north, go ne)", Category: CategoryMovement, Handler: HandlerGo},

		// World commands
		{Name: "look", Aliases: []string{"l"}, Help: "Look around, or at an item (look [name])", Category: CategoryWorld, Handler: HandlerLook},
		{Name: "get", Aliases: []string{"take", "grab"}, Help: "Pick up an item, even from inside a container (get <name>)", Category: CategoryWorld, Handler: HandlerGet},
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "List what you are carrying", Category: CategoryWorld, Handler: HandlerInventory, Exact: true},

		// System commands
		{Name: "quit", Aliases: []string{"exit"}, Help: "Save and leave the game", Category: CategorySystem, Handler: HandlerQuit, Exact: true},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp, Exact: true},
	}
}

// IsMovementCommand reports whether the command name is a bare compass direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "n", "ne", "e", "se", "s", "sw", "w", "nw":
		return true
	default:
		return false
	}
}
