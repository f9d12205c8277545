package x11

import (
	"strconv"
	"strings"

	"github.com/dshills/hotkeyd/internal/input/key"
)

type keysymDef struct {
	name string
	sym  key.Keysym
}

// keysymDefs lists the X11 keysym names the daemon understands. When two
// names share a keysym, the first one is the display name.
var keysymDefs = []keysymDef{
	// Latin-1 punctuation and digits
	{"space", 0x0020},
	{"exclam", 0x0021},
	{"quotedbl", 0x0022},
	{"numbersign", 0x0023},
	{"dollar", 0x0024},
	{"percent", 0x0025},
	{"ampersand", 0x0026},
	{"apostrophe", 0x0027},
	{"quoteright", 0x0027},
	{"parenleft", 0x0028},
	{"parenright", 0x0029},
	{"asterisk", 0x002a},
	{"plus", 0x002b},
	{"comma", 0x002c},
	{"minus", 0x002d},
	{"period", 0x002e},
	{"slash", 0x002f},
	{"0", 0x0030},
	{"1", 0x0031},
	{"2", 0x0032},
	{"3", 0x0033},
	{"4", 0x0034},
	{"5", 0x0035},
	{"6", 0x0036},
	{"7", 0x0037},
	{"8", 0x0038},
	{"9", 0x0039},
	{"colon", 0x003a},
	{"semicolon", 0x003b},
	{"less", 0x003c},
	{"equal", 0x003d},
	{"greater", 0x003e},
	{"question", 0x003f},
	{"at", 0x0040},
	{"bracketleft", 0x005b},
	{"backslash", 0x005c},
	{"bracketright", 0x005d},
	{"asciicircum", 0x005e},
	{"underscore", 0x005f},
	{"grave", 0x0060},
	{"quoteleft", 0x0060},
	{"braceleft", 0x007b},
	{"bar", 0x007c},
	{"braceright", 0x007d},
	{"asciitilde", 0x007e},

	// Latin-1 supplement (lower case forms first)
	{"nobreakspace", 0x00a0},
	{"section", 0x00a7},
	{"degree", 0x00b0},
	{"agrave", 0x00e0},
	{"aacute", 0x00e1},
	{"adiaeresis", 0x00e4},
	{"aring", 0x00e5},
	{"ae", 0x00e6},
	{"ccedilla", 0x00e7},
	{"egrave", 0x00e8},
	{"eacute", 0x00e9},
	{"ntilde", 0x00f1},
	{"odiaeresis", 0x00f6},
	{"oslash", 0x00f8},
	{"udiaeresis", 0x00fc},
	{"ssharp", 0x00df},

	// TTY function keys
	{"BackSpace", 0xff08},
	{"Tab", 0xff09},
	{"Linefeed", 0xff0a},
	{"Clear", 0xff0b},
	{"Return", 0xff0d},
	{"Pause", 0xff13},
	{"Scroll_Lock", 0xff14},
	{"Sys_Req", 0xff15},
	{"Escape", 0xff1b},
	{"Delete", 0xffff},
	{"Multi_key", 0xff20},

	// Cursor control
	{"Home", 0xff50},
	{"Left", 0xff51},
	{"Up", 0xff52},
	{"Right", 0xff53},
	{"Down", 0xff54},
	{"Prior", 0xff55},
	{"Page_Up", 0xff55},
	{"Next", 0xff56},
	{"Page_Down", 0xff56},
	{"End", 0xff57},
	{"Begin", 0xff58},

	// Misc functions
	{"Select", 0xff60},
	{"Print", 0xff61},
	{"Execute", 0xff62},
	{"Insert", 0xff63},
	{"Undo", 0xff65},
	{"Redo", 0xff66},
	{"Menu", 0xff67},
	{"Find", 0xff68},
	{"Cancel", 0xff69},
	{"Help", 0xff6a},
	{"Break", 0xff6b},
	{"Mode_switch", 0xff7e},
	{"Num_Lock", 0xff7f},

	// Keypad
	{"KP_Space", 0xff80},
	{"KP_Tab", 0xff89},
	{"KP_Enter", 0xff8d},
	{"KP_F1", 0xff91},
	{"KP_F2", 0xff92},
	{"KP_F3", 0xff93},
	{"KP_F4", 0xff94},
	{"KP_Home", 0xff95},
	{"KP_Left", 0xff96},
	{"KP_Up", 0xff97},
	{"KP_Right", 0xff98},
	{"KP_Down", 0xff99},
	{"KP_Prior", 0xff9a},
	{"KP_Page_Up", 0xff9a},
	{"KP_Next", 0xff9b},
	{"KP_Page_Down", 0xff9b},
	{"KP_End", 0xff9c},
	{"KP_Begin", 0xff9d},
	{"KP_Insert", 0xff9e},
	{"KP_Delete", 0xff9f},
	{"KP_Multiply", 0xffaa},
	{"KP_Add", 0xffab},
	{"KP_Separator", 0xffac},
	{"KP_Subtract", 0xffad},
	{"KP_Decimal", 0xffae},
	{"KP_Divide", 0xffaf},
	{"KP_0", 0xffb0},
	{"KP_1", 0xffb1},
	{"KP_2", 0xffb2},
	{"KP_3", 0xffb3},
	{"KP_4", 0xffb4},
	{"KP_5", 0xffb5},
	{"KP_6", 0xffb6},
	{"KP_7", 0xffb7},
	{"KP_8", 0xffb8},
	{"KP_9", 0xffb9},
	{"KP_Equal", 0xffbd},

	// Modifier keys themselves
	{"Shift_L", 0xffe1},
	{"Shift_R", 0xffe2},
	{"Control_L", 0xffe3},
	{"Control_R", 0xffe4},
	{"Caps_Lock", 0xffe5},
	{"Shift_Lock", 0xffe6},
	{"Meta_L", 0xffe7},
	{"Meta_R", 0xffe8},
	{"Alt_L", 0xffe9},
	{"Alt_R", 0xffea},
	{"Super_L", 0xffeb},
	{"Super_R", 0xffec},
	{"Hyper_L", 0xffed},
	{"Hyper_R", 0xffee},
	{"ISO_Level3_Shift", 0xfe03},

	// XFree86 vendor keys
	{"XF86MonBrightnessUp", 0x1008ff02},
	{"XF86MonBrightnessDown", 0x1008ff03},
	{"XF86KbdBrightnessUp", 0x1008ff05},
	{"XF86KbdBrightnessDown", 0x1008ff06},
	{"XF86AudioLowerVolume", 0x1008ff11},
	{"XF86AudioMute", 0x1008ff12},
	{"XF86AudioRaiseVolume", 0x1008ff13},
	{"XF86AudioPlay", 0x1008ff14},
	{"XF86AudioStop", 0x1008ff15},
	{"XF86AudioPrev", 0x1008ff16},
	{"XF86AudioNext", 0x1008ff17},
	{"XF86HomePage", 0x1008ff18},
	{"XF86Mail", 0x1008ff19},
	{"XF86Search", 0x1008ff1b},
	{"XF86Calculator", 0x1008ff1d},
	{"XF86PowerOff", 0x1008ff2a},
	{"XF86Eject", 0x1008ff2c},
	{"XF86Sleep", 0x1008ff2f},
	{"XF86AudioPause", 0x1008ff31},
	{"XF86Display", 0x1008ff59},
	{"XF86Explorer", 0x1008ff5d},
	{"XF86WLAN", 0x1008ff95},
	{"XF86TouchpadToggle", 0x1008ffa9},
	{"XF86AudioMicMute", 0x1008ffb2},
}

var (
	keysymsByName map[string]key.Keysym
	namesByKeysym map[key.Keysym]string
)

func init() {
	keysymsByName = make(map[string]key.Keysym, len(keysymDefs)+26+12)
	namesByKeysym = make(map[key.Keysym]string, len(keysymDefs)+26+12)

	add := func(name string, sym key.Keysym) {
		lower := strings.ToLower(name)
		if _, ok := keysymsByName[lower]; !ok {
			keysymsByName[lower] = sym
		}
		if _, ok := namesByKeysym[sym]; !ok {
			namesByKeysym[sym] = name
		}
	}

	for c := 'a'; c <= 'z'; c++ {
		add(string(c), key.Keysym(c))
	}
	for _, d := range keysymDefs {
		add(d.name, d.sym)
	}
	// F1 through F35 are contiguous.
	for i := 1; i <= 35; i++ {
		add("F"+strconv.Itoa(i), key.Keysym(0xffbe+i-1))
	}
}

// Keysyms resolves key names against the X11 keysym table. Lookups are
// case-insensitive; names also accept the "0x1008ff13" and "U20AC" forms
// understood by XStringToKeysym.
type Keysyms struct{}

// Lookup returns the keysym for a lower-cased name.
func (Keysyms) Lookup(name string) (key.Keysym, bool) {
	name = strings.ToLower(name)
	if sym, ok := keysymsByName[name]; ok {
		return sym, true
	}
	if sym, ok := parseNumeric(name); ok {
		return sym, true
	}
	return key.NoSymbol, false
}

// Name returns the display name for sym, or "" if it is not in the table.
func (Keysyms) Name(sym key.Keysym) string {
	return namesByKeysym[sym]
}

func parseNumeric(name string) (key.Keysym, bool) {
	switch {
	case strings.HasPrefix(name, "0x") && len(name) > 2:
		v, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil || v == 0 {
			return key.NoSymbol, false
		}
		return key.Keysym(v), true

	case strings.HasPrefix(name, "u") && len(name) >= 5:
		cp, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil || cp == 0 || cp > 0x10ffff {
			return key.NoSymbol, false
		}
		// Latin-1 code points map to themselves; everything else lives in
		// the Unicode keysym plane.
		if (cp >= 0x20 && cp <= 0x7e) || (cp >= 0xa0 && cp <= 0xff) {
			return key.Keysym(cp), true
		}
		return key.Keysym(0x01000000 | cp), true
	}
	return key.NoSymbol, false
}
