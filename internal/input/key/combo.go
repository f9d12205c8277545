package key

import "fmt"

// Combo is the canonical lookup key for a binding: a modifier mask, a key
// symbol and an event direction. Two combos are the same binding iff all
// three fields are equal. Combo is comparable and may be used as a map key.
// Construct only via NewCombo or RawCombo.
type Combo struct {
	mods  ModMask
	key   Keysym
	event Direction
}

// NewCombo folds mods into a mask and pairs it with sym and ev.
// The result does not depend on the order of mods.
func NewCombo(t MaskTable, ev Direction, mods []Modifier, sym Keysym) Combo {
	return Combo{
		mods:  Fold(t, mods),
		key:   sym,
		event: ev,
	}
}

// RawCombo builds a combo from an already folded mask, as delivered by a
// live key event.
func RawCombo(mods ModMask, sym Keysym, ev Direction) Combo {
	return Combo{mods: mods, key: sym, event: ev}
}

// Mods returns the modifier mask.
func (c Combo) Mods() ModMask { return c.mods }

// Key returns the key symbol.
func (c Combo) Key() Keysym { return c.key }

// Event returns the event direction.
func (c Combo) Event() Direction { return c.event }

// String returns a debugging representation like "mods=0x41 key=0x61 press".
func (c Combo) String() string {
	return fmt.Sprintf("mods=%#x key=%s %s", uint32(c.mods), c.key, c.event)
}

// Describe returns a chord-like representation like "Shift+Super+a (press)"
// using t for modifier names and l for the key name.
func (c Combo) Describe(t MaskTable, l KeysymLookup) string {
	name := KeysymName(l, c.key)
	if mods := ModifiersOf(t, c.mods); len(mods) > 0 {
		name = FormatModifiers(mods) + "+" + name
	}
	return fmt.Sprintf("%s (%s)", name, c.event)
}
