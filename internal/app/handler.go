package app

import (
	"context"
	"log/slog"

	"github.com/dshills/hotkeyd/internal/input/key"
	"github.com/dshills/hotkeyd/internal/input/keymap"
)

// Handler executes the command bound to a matched combo.
type Handler interface {
	Handle(ctx context.Context, entry keymap.Entry) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, entry keymap.Entry) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, entry keymap.Entry) error {
	return f(ctx, entry)
}

// LogHandler logs each matched command instead of executing it.
type LogHandler struct {
	Logger  *slog.Logger
	Masks   key.MaskTable
	Keysyms key.KeysymLookup
}

// Handle logs entry at info level.
func (h LogHandler) Handle(ctx context.Context, entry keymap.Entry) error {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "command",
		"combo", entry.Combo.Describe(h.Masks, h.Keysyms),
		"kind", entry.Command.Kind.String(),
		"payload", entry.Command.Payload,
		"source", entry.Source)
	return nil
}
