package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec       = errors.New("empty chord specification")
	ErrUnresolvableKey = errors.New("unresolvable key token")
	ErrIncompleteChord = errors.New("chord has no key")
)

// ParseError describes a chord that could not be parsed.
type ParseError struct {
	// Spec is the chord string as written.
	Spec string

	// Token is the offending token after case folding, if any.
	Token string

	Err error
}

func (e *ParseError) Error() string {
	if e.Token != "" || errors.Is(e.Err, ErrUnresolvableKey) {
		return fmt.Sprintf("chord %q: %v %q", e.Spec, e.Err, e.Token)
	}
	return fmt.Sprintf("chord %q: %v", e.Spec, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Chord is the parsed form of a chord specification.
type Chord struct {
	// Key is the resolved key symbol, or NoSymbol when the chord names
	// only modifiers.
	Key Keysym

	// Modifiers holds the modifiers in the order they were written.
	Modifiers []Modifier

	// KeyTokens counts the key tokens seen. More than one means the
	// earlier keys were overridden by the last.
	KeyTokens int
}

// Complete reports whether the chord names a key.
func (c Chord) Complete() bool {
	return c.Key != NoSymbol
}

// Combo builds the lookup combination for this chord.
func (c Chord) Combo(t MaskTable, ev Direction) Combo {
	return NewCombo(t, ev, c.Modifiers, c.Key)
}

// alias is an entry of the fixed token table. A token is either a modifier
// or a shorthand for a canonical key name.
type alias struct {
	mod     Modifier
	isMod   bool
	keyName string
}

// aliases maps lower-cased tokens to their meaning.
var aliases = map[string]alias{
	"shift":    {mod: ModShift, isMod: true},
	"control":  {mod: ModControl, isMod: true},
	"ctrl":     {mod: ModControl, isMod: true},
	"super":    {mod: ModSuper, isMod: true},
	"command":  {mod: ModSuper, isMod: true},
	"cmd":      {mod: ModSuper, isMod: true},
	"win":      {mod: ModSuper, isMod: true},
	"hyper":    {mod: ModHyper, isMod: true},
	"alt":      {mod: ModAlt, isMod: true},
	"caps":     {mod: ModCapsLock, isMod: true},
	"capslock": {mod: ModCapsLock, isMod: true},
	"space":    {keyName: "space"},
	"spc":      {keyName: "space"},
	"enter":    {keyName: "return"},
	"return":   {keyName: "return"},
}

// ModifierFromName returns the modifier for an alias such as "ctrl" or
// "cmd" (case-insensitive).
func ModifierFromName(name string) (Modifier, bool) {
	a, ok := aliases[strings.ToLower(name)]
	if !ok || !a.isMod {
		return 0, false
	}
	return a.mod, true
}

// Parser turns chord specifications into chords.
// A Parser is safe for concurrent use if its lookup is.
type Parser struct {
	lookup KeysymLookup
}

// NewParser creates a parser that resolves key names through lookup.
func NewParser(lookup KeysymLookup) *Parser {
	return &Parser{lookup: lookup}
}

// Parse parses a chord specification such as "Super+Shift+x".
//
// Tokens are separated by "+" and lower-cased before matching. Modifiers
// are returned in the order written. If several key tokens appear, the last
// one wins.
//
// A chord without a key is returned together with an error wrapping
// ErrIncompleteChord. A token that is neither an alias nor a name known to
// the lookup stops parsing with an error wrapping ErrUnresolvableKey.
func (p *Parser) Parse(spec string) (Chord, error) {
	if spec == "" {
		return Chord{}, &ParseError{Spec: spec, Err: ErrEmptySpec}
	}

	var chord Chord
	for _, part := range strings.Split(spec, "+") {
		token := strings.ToLower(part)

		name := token
		if a, ok := aliases[token]; ok {
			if a.isMod {
				chord.Modifiers = append(chord.Modifiers, a.mod)
				continue
			}
			name = a.keyName
		}

		sym, ok := p.resolve(name)
		if !ok {
			return Chord{}, &ParseError{Spec: spec, Token: token, Err: ErrUnresolvableKey}
		}
		chord.Key = sym
		chord.KeyTokens++
	}

	if !chord.Complete() {
		return chord, &ParseError{Spec: spec, Err: ErrIncompleteChord}
	}
	return chord, nil
}

func (p *Parser) resolve(name string) (Keysym, bool) {
	if p.lookup == nil || name == "" {
		return NoSymbol, false
	}
	sym, ok := p.lookup.Lookup(name)
	if !ok || sym == NoSymbol {
		return NoSymbol, false
	}
	return sym, true
}

// MustParse parses a chord and panics on error.
// Use only for known-valid chords in initialization code.
func (p *Parser) MustParse(spec string) Chord {
	chord, err := p.Parse(spec)
	if err != nil {
		panic("invalid chord specification: " + spec + ": " + err.Error())
	}
	return chord
}
