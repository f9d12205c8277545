package key

import (
	"errors"
	"testing"
)

// testMasks uses the X11 core bit layout without importing the platform
// package.
var testMasks = MaskFunc(func(m Modifier) ModMask {
	switch m {
	case ModShift:
		return 1
	case ModCapsLock:
		return 2
	case ModControl:
		return 4
	case ModAlt:
		return 8
	case ModHyper:
		return 32
	case ModSuper:
		return 64
	}
	return 0
})

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModShift, "Shift"},
		{ModCapsLock, "CapsLock"},
		{ModControl, "Control"},
		{ModAlt, "Alt"},
		{ModSuper, "Super"},
		{ModHyper, "Hyper"},
		{Modifier(42), "Modifier(42)"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierValid(t *testing.T) {
	for _, m := range Modifiers {
		if !m.Valid() {
			t.Errorf("%s.Valid() = false", m)
		}
	}
	if Modifier(6).Valid() {
		t.Error("Modifier(6).Valid() = true")
	}
}

func TestModMaskHas(t *testing.T) {
	tests := []struct {
		mask   ModMask
		check  ModMask
		expect bool
	}{
		{0, 1, false},
		{1, 1, true},
		{1 | 4, 1, true},
		{1 | 4, 4, true},
		{1 | 4, 8, false},
		{1 | 4, 1 | 4, true},
		{1, 1 | 4, false},
	}

	for _, tt := range tests {
		if got := tt.mask.Has(tt.check); got != tt.expect {
			t.Errorf("ModMask(%#x).Has(%#x) = %v, want %v", tt.mask, tt.check, got, tt.expect)
		}
	}
}

func TestModMaskWithWithout(t *testing.T) {
	var mask ModMask
	mask = mask.With(4)
	if !mask.Has(4) {
		t.Error("With(4) should set bit 4")
	}
	mask = mask.With(8).Without(4)
	if mask.Has(4) || !mask.Has(8) {
		t.Errorf("With(8).Without(4) = %#x, want 0x8", mask)
	}
	if !ModMask(0).IsEmpty() || mask.IsEmpty() {
		t.Error("IsEmpty mismatch")
	}
}

func TestFoldIsOrderIndependent(t *testing.T) {
	a := Fold(testMasks, []Modifier{ModSuper, ModShift})
	b := Fold(testMasks, []Modifier{ModShift, ModSuper})
	if a != b {
		t.Errorf("Fold order changed result: %#x != %#x", a, b)
	}
	if a != 65 {
		t.Errorf("Fold(Super, Shift) = %#x, want 0x41", a)
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	once := Fold(testMasks, []Modifier{ModControl})
	twice := Fold(testMasks, []Modifier{ModControl, ModControl})
	if once != twice {
		t.Errorf("Fold(Control, Control) = %#x, want %#x", twice, once)
	}
	if Fold(testMasks, nil) != 0 {
		t.Error("Fold(nil) should be zero")
	}
}

func TestFoldSkipsUndefinedModifiers(t *testing.T) {
	loose := MaskFunc(func(m Modifier) ModMask {
		if !m.Valid() {
			return 128
		}
		return testMasks.Mask(m)
	})
	if got := Fold(loose, []Modifier{ModShift, Modifier(9)}); got != 1 {
		t.Errorf("Fold(Shift, Modifier(9)) = %#x, want 0x1", got)
	}
}

func TestValidateMasks(t *testing.T) {
	if err := ValidateMasks(testMasks); err != nil {
		t.Fatalf("ValidateMasks(testMasks) = %v", err)
	}

	shared := MaskFunc(func(m Modifier) ModMask {
		if m == ModHyper {
			return 64
		}
		return testMasks.Mask(m)
	})
	if err := ValidateMasks(shared); !errors.Is(err, ErrInvalidMaskTable) {
		t.Errorf("ValidateMasks(shared) = %v, want ErrInvalidMaskTable", err)
	}

	zero := MaskFunc(func(m Modifier) ModMask {
		if m == ModAlt {
			return 0
		}
		return testMasks.Mask(m)
	})
	if err := ValidateMasks(zero); !errors.Is(err, ErrInvalidMaskTable) {
		t.Errorf("ValidateMasks(zero) = %v, want ErrInvalidMaskTable", err)
	}

	multi := MaskFunc(func(m Modifier) ModMask {
		if m == ModAlt {
			return 8 | 16
		}
		return testMasks.Mask(m)
	})
	if err := ValidateMasks(multi); !errors.Is(err, ErrInvalidMaskTable) {
		t.Errorf("ValidateMasks(multi) = %v, want ErrInvalidMaskTable", err)
	}

	if err := ValidateMasks(nil); !errors.Is(err, ErrInvalidMaskTable) {
		t.Errorf("ValidateMasks(nil) = %v, want ErrInvalidMaskTable", err)
	}
}

func TestModifiersOf(t *testing.T) {
	got := ModifiersOf(testMasks, 64|1|16)
	want := []Modifier{ModShift, ModSuper}
	if len(got) != len(want) {
		t.Fatalf("ModifiersOf = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ModifiersOf[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if AllModifiers(testMasks) != 1|2|4|8|32|64 {
		t.Errorf("AllModifiers = %#x", AllModifiers(testMasks))
	}
	if got := ModifiersOf(testMasks, 0); got != nil {
		t.Errorf("ModifiersOf(0) = %v, want nil", got)
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   Modifier
		wantOK bool
	}{
		{"shift", ModShift, true},
		{"SHIFT", ModShift, true},
		{"ctrl", ModControl, true},
		{"control", ModControl, true},
		{"super", ModSuper, true},
		{"command", ModSuper, true},
		{"cmd", ModSuper, true},
		{"win", ModSuper, true},
		{"hyper", ModHyper, true},
		{"alt", ModAlt, true},
		{"caps", ModCapsLock, true},
		{"capslock", ModCapsLock, true},
		{"space", 0, false},
		{"meta", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ModifierFromName(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ModifierFromName(%q) = %s, %v; want %s, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFormatModifiers(t *testing.T) {
	if got := FormatModifiers([]Modifier{ModControl, ModShift}); got != "Control+Shift" {
		t.Errorf("FormatModifiers = %q, want %q", got, "Control+Shift")
	}
	if got := FormatModifiers(nil); got != "" {
		t.Errorf("FormatModifiers(nil) = %q, want empty", got)
	}
}
