package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// Binding errors
var (
	ErrMissingKeys      = errors.New("binding has no keys")
	ErrNoCommand        = errors.New("binding has no command")
	ErrMultipleCommands = errors.New("binding has more than one command")
)

// Binding is a single chord-to-command declaration from a bindings file.
type Binding struct {
	// Keys is the chord specification, e.g. "Super+Shift+x".
	Keys string

	// Event selects whether the binding fires on press or release.
	Event key.Direction

	// Command is what the binding triggers.
	Command *Command

	// Source locates the declaration, e.g. "bindings.yaml:12".
	Source string
}

// BindingError reports a binding that was rejected while loading or
// compiling.
type BindingError struct {
	Source string
	Keys   string
	Err    error
}

func (e *BindingError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: binding %q: %v", e.Source, e.Keys, e.Err)
	}
	return fmt.Sprintf("binding %q: %v", e.Keys, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// JoinErrors combines binding errors into a single error, or nil.
func JoinErrors(errs []*BindingError) error {
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}
