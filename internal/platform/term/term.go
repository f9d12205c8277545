// Package term turns terminal key events into combos.
//
// Terminals only report key presses, so every combo produced here has the
// Pressed direction. Control letters arrive as control codes and are
// mapped back to the letter with the Control modifier; Control+H, Control+I
// and Control+M are indistinguishable from BackSpace, Tab and Return.
package term

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// keyNames maps tcell special keys to key names understood by the lookup.
var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "return",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyEscape:     "escape",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "prior",
	tcell.KeyPgDn:       "next",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPrint:      "print",
	tcell.KeyPause:      "pause",
}

// Translator converts tcell key events into combos.
type Translator struct {
	Masks   key.MaskTable
	Keysyms key.KeysymLookup
}

// Translate converts ev. It reports false for keys with no keysym.
func (t Translator) Translate(ev *tcell.EventKey) (key.Combo, bool) {
	mods := convertMod(ev.Modifiers())

	var name string
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			r = unicode.ToLower(r)
			mods = append(mods, key.ModShift)
		}
		name = runeName(r)
	case keyNames[k] != "":
		name = keyNames[k]
		if k == tcell.KeyBacktab {
			mods = append(mods, key.ModShift)
		}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		name = runeName('a' + rune(k-tcell.KeyCtrlA))
		mods = append(mods, key.ModControl)
	case k == tcell.KeyCtrlSpace:
		name = "space"
		mods = append(mods, key.ModControl)
	case k >= tcell.KeyF1 && k <= tcell.KeyF35:
		name = fmt.Sprintf("f%d", k-tcell.KeyF1+1)
	default:
		return key.Combo{}, false
	}

	if t.Keysyms == nil {
		return key.Combo{}, false
	}
	sym, ok := t.Keysyms.Lookup(name)
	if !ok || sym == key.NoSymbol {
		return key.Combo{}, false
	}
	return key.NewCombo(t.Masks, key.Pressed, mods, sym), true
}

// runeName returns the Unicode key name for r, e.g. "u0061".
func runeName(r rune) string {
	return fmt.Sprintf("u%04x", r)
}

// convertMod converts tcell modifiers. The terminal Meta modifier is
// reported as Super.
func convertMod(m tcell.ModMask) []key.Modifier {
	var mods []key.Modifier
	if m&tcell.ModShift != 0 {
		mods = append(mods, key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = append(mods, key.ModControl)
	}
	if m&tcell.ModAlt != 0 {
		mods = append(mods, key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = append(mods, key.ModSuper)
	}
	return mods
}
