package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// KeycodeMapper resolves a hardware keycode to its layout-independent
// keysym.
type KeycodeMapper interface {
	Keysym(code xproto.Keycode) (key.Keysym, bool)
}

// KeycodeTable is a KeycodeMapper holding the first keysym column of each
// keycode.
type KeycodeTable map[xproto.Keycode]key.Keysym

// Keysym implements KeycodeMapper.
func (t KeycodeTable) Keysym(code xproto.Keycode) (key.Keysym, bool) {
	sym, ok := t[code]
	if !ok || sym == key.NoSymbol {
		return key.NoSymbol, false
	}
	return sym, true
}

// NewKeycodeTable builds a table from a GetKeyboardMapping reply covering
// the keycodes starting at first. Only the unshifted column is kept so a
// chord such as "Shift+a" matches the keysym for 'a'.
func NewKeycodeTable(first xproto.Keycode, reply *xproto.GetKeyboardMappingReply) KeycodeTable {
	table := make(KeycodeTable)
	if reply == nil || reply.KeysymsPerKeycode == 0 {
		return table
	}
	per := int(reply.KeysymsPerKeycode)
	for i := 0; i*per < len(reply.Keysyms); i++ {
		sym := reply.Keysyms[i*per]
		if sym == 0 {
			continue
		}
		table[first+xproto.Keycode(i)] = key.Keysym(sym)
	}
	return table
}

// Translator turns core-protocol key events into combos.
type Translator struct {
	Masks  key.MaskTable
	Mapper KeycodeMapper
}

// Translate converts a KeyPress or KeyRelease event. It returns false for
// other events and for keycodes with no keysym.
func (t Translator) Translate(ev xgb.Event) (key.Combo, bool) {
	var (
		code  xproto.Keycode
		state uint16
		dir   key.Direction
	)
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		code, state, dir = e.Detail, e.State, key.Pressed
	case xproto.KeyReleaseEvent:
		code, state, dir = e.Detail, e.State, key.Released
	default:
		return key.Combo{}, false
	}

	sym, ok := t.Mapper.Keysym(code)
	if !ok {
		return key.Combo{}, false
	}
	return key.RawCombo(RelevantState(t.Masks, state), sym, dir), true
}
