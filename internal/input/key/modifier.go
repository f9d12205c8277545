package key

import (
	"errors"
	"fmt"
	"strings"
)

// Modifier identifies a logical keyboard modifier.
type Modifier uint8

const (
	// ModShift is the Shift key.
	ModShift Modifier = iota

	// ModCapsLock is the Caps Lock key.
	ModCapsLock

	// ModControl is the Control key.
	ModControl

	// ModAlt is the Alt key.
	ModAlt

	// ModSuper is the Super key (Cmd on macOS, Win on Windows).
	ModSuper

	// ModHyper is the Hyper key.
	ModHyper

	modifierCount
)

// Modifiers lists every modifier in canonical order.
var Modifiers = []Modifier{ModShift, ModCapsLock, ModControl, ModAlt, ModSuper, ModHyper}

// String returns a human-readable name for the modifier.
func (m Modifier) String() string {
	switch m {
	case ModShift:
		return "Shift"
	case ModCapsLock:
		return "CapsLock"
	case ModControl:
		return "Control"
	case ModAlt:
		return "Alt"
	case ModSuper:
		return "Super"
	case ModHyper:
		return "Hyper"
	default:
		return fmt.Sprintf("Modifier(%d)", m)
	}
}

// Valid reports whether m is one of the defined modifiers.
func (m Modifier) Valid() bool {
	return m < modifierCount
}

// ModMask is a platform modifier bit-field.
type ModMask uint32

// Has returns true if m contains every bit of other.
func (m ModMask) Has(other ModMask) bool {
	return m&other == other
}

// With returns a new mask with the given bits added.
func (m ModMask) With(other ModMask) ModMask {
	return m | other
}

// Without returns a new mask with the given bits removed.
func (m ModMask) Without(other ModMask) ModMask {
	return m &^ other
}

// IsEmpty returns true if no bits are set.
func (m ModMask) IsEmpty() bool {
	return m == 0
}

// MaskTable maps each modifier to the single platform bit it occupies.
// Implementations must be pure and total over the Modifier enumeration.
type MaskTable interface {
	Mask(m Modifier) ModMask
}

// MaskFunc adapts a plain function to the MaskTable interface.
type MaskFunc func(m Modifier) ModMask

// Mask calls f(m).
func (f MaskFunc) Mask(m Modifier) ModMask {
	return f(m)
}

// ErrInvalidMaskTable is returned when a mask table is not injective.
var ErrInvalidMaskTable = errors.New("invalid modifier mask table")

// ValidateMasks checks that every modifier maps to exactly one bit and that
// no two modifiers share a bit.
func ValidateMasks(t MaskTable) error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidMaskTable)
	}
	var seen ModMask
	for _, m := range Modifiers {
		bit := t.Mask(m)
		if bit == 0 || bit&(bit-1) != 0 {
			return fmt.Errorf("%w: %s maps to %#x, want a single bit", ErrInvalidMaskTable, m, uint32(bit))
		}
		if seen&bit != 0 {
			return fmt.Errorf("%w: %s shares bit %#x with another modifier", ErrInvalidMaskTable, m, uint32(bit))
		}
		seen |= bit
	}
	return nil
}

// Fold ORs the bits of mods together, starting from zero.
// Order and repetition do not affect the result. Values outside the
// defined modifiers contribute nothing.
func Fold(t MaskTable, mods []Modifier) ModMask {
	var mask ModMask
	for _, m := range mods {
		if m.Valid() {
			mask = mask.With(t.Mask(m))
		}
	}
	return mask
}

// AllModifiers returns the union of every modifier bit in t.
func AllModifiers(t MaskTable) ModMask {
	return Fold(t, Modifiers)
}

// ModifiersOf returns the modifiers whose bits are set in mask, in canonical
// order. Bits that belong to no modifier are ignored.
func ModifiersOf(t MaskTable, mask ModMask) []Modifier {
	if mask.IsEmpty() {
		return nil
	}
	var mods []Modifier
	for _, m := range Modifiers {
		if mask.Has(t.Mask(m)) {
			mods = append(mods, m)
		}
	}
	return mods
}

// FormatModifiers returns a representation like "Control+Shift".
func FormatModifiers(mods []Modifier) string {
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = m.String()
	}
	return strings.Join(parts, "+")
}
