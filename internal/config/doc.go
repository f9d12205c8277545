// Package config loads the daemon settings.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML settings file (Load)
//  3. HOTKEYD_* environment variables (ApplyEnv)
//
// Command-line flags are applied by the caller after these.
//
// A settings file looks like:
//
//	bindings = "~/.config/hotkeyd/bindings.yaml"
//	strict = false
//
//	[log]
//	level = "info"
//	format = "text"
//
//	[watch]
//	enabled = true
//	debounce = "250ms"
package config
