package key

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseChords(t *testing.T) {
	p := NewParser(testLookup)

	tests := []struct {
		spec     string
		wantKey  Keysym
		wantMods []Modifier
	}{
		{"a", 'a', nil},
		{"Shift+a", 'a', []Modifier{ModShift}},
		{"SHIFT+a", 'a', []Modifier{ModShift}},
		{"shift+A", 'a', []Modifier{ModShift}},
		{"Super+Shift+x", 'x', []Modifier{ModSuper, ModShift}},
		{"Control+Alt+Escape", 0xff1b, []Modifier{ModControl, ModAlt}},
		{"ctrl+1", '1', []Modifier{ModControl}},
		{"Cmd+Win+Command+q", 'q', []Modifier{ModSuper, ModSuper, ModSuper}},
		{"Hyper+Caps+CapsLock+f1", 0xffbe, []Modifier{ModHyper, ModCapsLock, ModCapsLock}},
		{"Super+space", 0x20, []Modifier{ModSuper}},
		{"Super+SPC", 0x20, []Modifier{ModSuper}},
		{"Super+Enter", 0xff0d, []Modifier{ModSuper}},
		{"Super+Return", 0xff0d, []Modifier{ModSuper}},
		// Key tokens may appear before modifiers.
		{"x+Shift", 'x', []Modifier{ModShift}},
		// The last key token wins.
		{"Shift+a+b", 'b', []Modifier{ModShift}},
		{"a+Control+Return", 0xff0d, []Modifier{ModControl}},
	}

	for _, tt := range tests {
		chord, err := p.Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.spec, err)
			continue
		}
		if chord.Key != tt.wantKey {
			t.Errorf("Parse(%q).Key = %v, want %v", tt.spec, chord.Key, tt.wantKey)
		}
		if !reflect.DeepEqual(chord.Modifiers, tt.wantMods) {
			t.Errorf("Parse(%q).Modifiers = %v, want %v", tt.spec, chord.Modifiers, tt.wantMods)
		}
		if !chord.Complete() {
			t.Errorf("Parse(%q).Complete() = false", tt.spec)
		}
	}
}

func TestParsePreservesModifierOrder(t *testing.T) {
	p := NewParser(testLookup)

	a := p.MustParse("Super+Shift+x")
	b := p.MustParse("Shift+Super+x")

	if reflect.DeepEqual(a.Modifiers, b.Modifiers) {
		t.Errorf("modifier sequences should differ: %v vs %v", a.Modifiers, b.Modifiers)
	}
	if Fold(testMasks, a.Modifiers) != Fold(testMasks, b.Modifiers) {
		t.Error("masks should be equal regardless of order")
	}
	if a.Combo(testMasks, Pressed) != b.Combo(testMasks, Pressed) {
		t.Error("combos should be equal regardless of order")
	}
}

func TestParseErrors(t *testing.T) {
	p := NewParser(testLookup)

	tests := []struct {
		spec      string
		wantErr   error
		wantToken string
	}{
		{"", ErrEmptySpec, ""},
		{"Shift+nonsense", ErrUnresolvableKey, "nonsense"},
		{"Shift+NONSENSE", ErrUnresolvableKey, "nonsense"},
		{"qwertyuiop", ErrUnresolvableKey, "qwertyuiop"},
		{"Shift++a", ErrUnresolvableKey, ""},
		{"Shift+a+", ErrUnresolvableKey, ""},
		{"Shift+ a", ErrUnresolvableKey, " a"},
		{"Meta+a", ErrUnresolvableKey, "meta"},
		// A name the table knows but maps to NoSymbol is still unresolvable.
		{"Shift+zero", ErrUnresolvableKey, "zero"},
		{"Shift", ErrIncompleteChord, ""},
		{"Super+Shift", ErrIncompleteChord, ""},
	}

	for _, tt := range tests {
		_, err := p.Parse(tt.spec)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error %T is not *ParseError", tt.spec, err)
			continue
		}
		if pe.Spec != tt.spec {
			t.Errorf("Parse(%q) ParseError.Spec = %q", tt.spec, pe.Spec)
		}
		if pe.Token != tt.wantToken {
			t.Errorf("Parse(%q) ParseError.Token = %q, want %q", tt.spec, pe.Token, tt.wantToken)
		}
	}
}

func TestParseIncompleteReturnsModifiers(t *testing.T) {
	p := NewParser(testLookup)

	chord, err := p.Parse("Super+Shift")
	if !errors.Is(err, ErrIncompleteChord) {
		t.Fatalf("Parse error = %v, want ErrIncompleteChord", err)
	}
	if chord.Key != NoSymbol {
		t.Errorf("Key = %v, want NoSymbol", chord.Key)
	}
	if !reflect.DeepEqual(chord.Modifiers, []Modifier{ModSuper, ModShift}) {
		t.Errorf("Modifiers = %v", chord.Modifiers)
	}
	if chord.Complete() {
		t.Error("Complete() = true for modifier-only chord")
	}
}

func TestParseErrorMessage(t *testing.T) {
	p := NewParser(testLookup)

	_, err := p.Parse("Super+Blah")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"Super+Blah"`) || !strings.Contains(msg, `"blah"`) {
		t.Errorf("error message %q should name the chord and the token", msg)
	}
}

func TestParseWithoutLookup(t *testing.T) {
	p := NewParser(nil)

	if _, err := p.Parse("Shift+a"); !errors.Is(err, ErrUnresolvableKey) {
		t.Errorf("Parse with nil lookup error = %v, want ErrUnresolvableKey", err)
	}
	// Aliased keys still need the lookup; modifiers do not.
	if _, err := p.Parse("Shift"); !errors.Is(err, ErrIncompleteChord) {
		t.Errorf("Parse(Shift) with nil lookup error = %v, want ErrIncompleteChord", err)
	}
}

func TestMustParsePanics(t *testing.T) {
	p := NewParser(testLookup)

	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid chord")
		}
	}()
	p.MustParse("Shift+nonsense")
}

func TestParseDoesNotAliasInput(t *testing.T) {
	p := NewParser(testLookup)

	spec := strings.Repeat("Shift+", 3) + "a"
	chord := p.MustParse(spec)
	chord.Modifiers[0] = ModHyper

	again := p.MustParse(spec)
	if again.Modifiers[0] != ModShift {
		t.Error("parsed chords must not share state")
	}
}

func TestParseCountsKeyTokens(t *testing.T) {
	p := NewParser(testLookup)

	tests := []struct {
		spec string
		want int
	}{
		{"Shift+a", 1},
		{"Shift+a+b", 2},
		{"a+space+Return", 3},
		{"Control+Alt+x", 1},
	}

	for _, tt := range tests {
		chord := p.MustParse(tt.spec)
		if chord.KeyTokens != tt.want {
			t.Errorf("Parse(%q).KeyTokens = %d, want %d", tt.spec, chord.KeyTokens, tt.want)
		}
	}
}
