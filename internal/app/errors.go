package app

import (
	"errors"
	"fmt"

	"github.com/dshills/hotkeyd/internal/input/keymap"
)

// Daemon errors.
var (
	// ErrAlreadyRunning indicates Run was called while the daemon runs.
	ErrAlreadyRunning = errors.New("daemon already running")

	// ErrBindingsRejected indicates a strict reload found invalid bindings.
	ErrBindingsRejected = errors.New("bindings rejected")
)

// ReloadError reports a reload that left the live bindings unchanged.
type ReloadError struct {
	// Source is the bindings file.
	Source string

	// Problems lists the rejected bindings, if any.
	Problems []*keymap.BindingError

	// Err is the underlying error.
	Err error
}

func (e *ReloadError) Error() string {
	if len(e.Problems) > 0 {
		return fmt.Sprintf("reload %s: %v (%d invalid bindings)", e.Source, e.Err, len(e.Problems))
	}
	return fmt.Sprintf("reload %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error and every binding problem.
func (e *ReloadError) Unwrap() []error {
	errs := make([]error, 0, len(e.Problems)+1)
	errs = append(errs, e.Err)
	for _, p := range e.Problems {
		errs = append(errs, p)
	}
	return errs
}
