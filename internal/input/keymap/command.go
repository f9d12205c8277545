package keymap

import "fmt"

// CommandKind identifies the variant of a Command.
type CommandKind uint8

const (
	// CommandNoop binds a combo to nothing, suppressing it.
	CommandNoop CommandKind = iota

	// CommandSpawn launches an external process.
	CommandSpawn

	// CommandMapping remaps the combo to another chord or action.
	CommandMapping
)

// String returns the kind name as written in bindings files.
func (k CommandKind) String() string {
	switch k {
	case CommandNoop:
		return "noop"
	case CommandSpawn:
		return "spawn"
	case CommandMapping:
		return "mapping"
	default:
		return fmt.Sprintf("CommandKind(%d)", k)
	}
}

// Command is what a matched combo triggers.
type Command struct {
	Kind CommandKind

	// Payload is the decoded configuration attached to spawn and mapping
	// commands. Its schema belongs to the executor; this package never
	// inspects it.
	Payload any
}

// Spawn creates a spawn command.
func Spawn(payload any) *Command {
	return &Command{Kind: CommandSpawn, Payload: payload}
}

// Mapping creates a mapping command.
func Mapping(payload any) *Command {
	return &Command{Kind: CommandMapping, Payload: payload}
}

// Noop creates a command that does nothing.
func Noop() *Command {
	return &Command{Kind: CommandNoop}
}

// String returns a short description like "spawn map[command:[alacritty]]".
func (c *Command) String() string {
	if c == nil {
		return "<nil>"
	}
	if c.Kind == CommandNoop || c.Payload == nil {
		return c.Kind.String()
	}
	return fmt.Sprintf("%s %v", c.Kind, c.Payload)
}
