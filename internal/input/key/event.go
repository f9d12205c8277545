package key

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the key event direction a binding fires on.
type Direction uint8

const (
	// Pressed fires when the key goes down.
	Pressed Direction = iota

	// Released fires when the key comes up.
	Released
)

// ErrUnknownDirection is returned by ParseDirection for unrecognized names.
var ErrUnknownDirection = errors.New("unknown event direction")

// String returns "press" or "release".
func (d Direction) String() string {
	switch d {
	case Pressed:
		return "press"
	case Released:
		return "release"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// ParseDirection parses a direction name (case-insensitive).
// An empty name means Pressed.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "press", "pressed", "down", "keydown":
		return Pressed, nil
	case "release", "released", "up", "keyup":
		return Released, nil
	default:
		return Pressed, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}
