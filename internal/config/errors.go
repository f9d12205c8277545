package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting holds a value outside its domain.
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrMissingBindings indicates no bindings file was configured.
	ErrMissingBindings = errors.New("no bindings file configured")
)

// ParseError reports a settings file that could not be decoded, either
// because it is not valid TOML or because it names a setting hotkeyd does
// not know.
type ParseError struct {
	// Path is the settings file as given on the command line or found in
	// the default location.
	Path string
	// Line and Column locate the error when go-toml reports a position,
	// as it does for syntax errors. Otherwise both are zero.
	Line   int
	Column int
	// Message is the decoder's message. For unknown settings it lists the
	// offending keys.
	Message string
	// Err is the go-toml error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the go-toml error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValueError describes a setting that failed validation.
type ValueError struct {
	// Setting is the dotted setting name, e.g. "log.level".
	Setting string
	// Value is the rejected value.
	Value any
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("%s = %v: %v", e.Setting, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValueError) Unwrap() error {
	return e.Err
}
