// Package x11 adapts the X Window System's core input model to the key
// package: the modifier bits carried in event state, the keysym name table,
// and translation of raw key events into combos.
package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// Masks is the core-protocol modifier mapping. Alt is Mod1, Hyper is Mod3
// and Super is Mod4, as set up by the stock xmodmap of most distributions.
type Masks struct{}

// Mask returns the X11 state bit for m.
func (Masks) Mask(m key.Modifier) key.ModMask {
	switch m {
	case key.ModShift:
		return xproto.ModMaskShift
	case key.ModCapsLock:
		return xproto.ModMaskLock
	case key.ModControl:
		return xproto.ModMaskControl
	case key.ModAlt:
		return xproto.ModMask1
	case key.ModHyper:
		return xproto.ModMask3
	case key.ModSuper:
		return xproto.ModMask4
	default:
		return 0
	}
}

// ignoredState covers state bits that never take part in a binding:
// NumLock (Mod2), Mod5 (ISO level 3 on many layouts) and the pointer
// buttons.
const ignoredState = xproto.ModMask2 | xproto.ModMask5 |
	xproto.KeyButMaskButton1 | xproto.KeyButMaskButton2 | xproto.KeyButMaskButton3 |
	xproto.KeyButMaskButton4 | xproto.KeyButMaskButton5

// RelevantState strips state bits that do not correspond to a modifier in t.
func RelevantState(t key.MaskTable, state uint16) key.ModMask {
	mask := key.ModMask(state).Without(ignoredState)
	return mask & key.AllModifiers(t)
}
