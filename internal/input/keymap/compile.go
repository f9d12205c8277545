package keymap

import (
	"log/slog"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// Compiler turns bindings into a Table.
type Compiler struct {
	parser *key.Parser
	masks  key.MaskTable
	logger *slog.Logger
}

// NewCompiler creates a compiler. A nil logger discards output.
func NewCompiler(parser *key.Parser, masks key.MaskTable, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compiler{
		parser: parser,
		masks:  masks,
		logger: logger,
	}
}

// Compile parses every binding and registers it in a fresh table, in
// order. Bindings whose chord does not parse or has no key are returned as
// problems and left out of the table. When two bindings share a combo the
// later one wins.
func (c *Compiler) Compile(bindings []Binding) (*Table, []*BindingError) {
	table := NewTable()
	var problems []*BindingError

	for _, b := range bindings {
		chord, err := c.parser.Parse(b.Keys)
		if err != nil {
			problems = append(problems, &BindingError{Source: b.Source, Keys: b.Keys, Err: err})
			continue
		}
		if chord.KeyTokens > 1 {
			c.logger.Warn("chord names several keys, using the last",
				"keys", b.Keys,
				"source", b.Source,
				"key", chord.Key.String())
		}

		combo := chord.Combo(c.masks, b.Event)
		prev, replaced := table.Add(Entry{
			Combo:   combo,
			Command: b.Command,
			Keys:    b.Keys,
			Source:  b.Source,
		})
		if replaced {
			c.logger.Debug("binding overridden",
				"combo", combo.String(),
				"previous", prev.Source,
				"source", b.Source)
		}
	}

	return table, problems
}
