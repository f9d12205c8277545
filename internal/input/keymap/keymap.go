package keymap

import (
	"maps"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// Entry is a resolved binding held by a Table.
type Entry struct {
	Combo   key.Combo
	Command *Command

	// Keys and Source describe where the entry came from. They are empty
	// for entries registered directly.
	Keys   string
	Source string
}

// Table maps combos to commands. It is filled during a configuration load
// and then published to a Registry. A Table is not safe for concurrent
// mutation.
type Table struct {
	entries map[key.Combo]Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[key.Combo]Entry)}
}

// Register binds combo to cmd. It reports whether an earlier binding for
// the same combo was replaced.
func (t *Table) Register(combo key.Combo, cmd *Command) bool {
	_, replaced := t.Add(Entry{Combo: combo, Command: cmd})
	return replaced
}

// Add inserts e, replacing any entry with the same combo. The replaced
// entry is returned.
func (t *Table) Add(e Entry) (Entry, bool) {
	if t.entries == nil {
		t.entries = make(map[key.Combo]Entry)
	}
	prev, replaced := t.entries[e.Combo]
	t.entries[e.Combo] = e
	return prev, replaced
}

// Resolve returns the command bound to combo.
func (t *Table) Resolve(combo key.Combo) (*Command, bool) {
	e, ok := t.entries[combo]
	if !ok {
		return nil, false
	}
	return e.Command, true
}

// Len returns the number of bound combos.
func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) clone() map[key.Combo]Entry {
	if t == nil || t.entries == nil {
		return make(map[key.Combo]Entry)
	}
	return maps.Clone(t.entries)
}
