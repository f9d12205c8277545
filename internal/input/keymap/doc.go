// Package keymap provides binding management for the hotkey daemon.
//
// The keymap system manages the mapping between key combinations and the
// commands they trigger.
//
// # Key Concepts
//
// Command: What a matched combo triggers (spawn, mapping or noop). Payloads
// are opaque to this package.
//
// Binding: A chord string, event direction and command as read from a
// bindings file.
//
// Table: A mutable combo-to-command table filled during a configuration
// load. Later registrations of the same combo win.
//
// Registry: The live table. Readers resolve against an immutable snapshot
// that reloads replace atomically, so a lookup never sees a half-built
// table.
//
// # Bindings Files
//
// Bindings are read from YAML, TOML or JSON:
//
//	bindings:
//	  - keys: Super+Return
//	    spawn: {command: [alacritty]}
//	  - keys: Super+Shift+q
//	    on: release
//	    noop: true
//
// # Usage
//
//	doc, err := keymap.NewLoader().LoadFile(path)
//	table, problems := keymap.NewCompiler(parser, masks, logger).Compile(doc.Bindings)
//	registry.Replace(table)
//
//	if cmd, ok := registry.Resolve(combo); ok {
//	    // hand cmd to the executor
//	}
package keymap
