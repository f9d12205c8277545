// Package key provides chord parsing and the canonical key combination type
// used to look up hotkey bindings.
//
// This package defines the fundamental types for representing hotkeys:
//
//   - Modifier: one of Shift, CapsLock, Control, Alt, Super, Hyper
//   - ModMask: the platform bit-field formed by OR-ing modifier bits
//   - Keysym: a layout-independent key symbol code from the host table
//   - Direction: whether a binding fires on press or release
//   - Combo: the (mask, keysym, direction) triple that keys the binding table
//
// # Chord Specifications
//
// Chords are written as tokens separated by "+", matched case-insensitively:
//
//   - "Super+Return", "Control+Shift+x", "SHIFT+a"
//   - Modifier aliases: ctrl/control, super/command/cmd/win, caps/capslock
//   - Key aliases: space/spc, enter/return
//
// Anything that is not an alias is resolved through a KeysymLookup provided
// by the host input backend.
//
// # Platform Bits
//
// The bit each modifier occupies is supplied by a MaskTable so the same
// parser works on top of different input backends.
package key
