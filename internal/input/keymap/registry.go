package keymap

import (
	"cmp"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// State describes whether a registry holds any bindings.
type State uint8

const (
	// StateEmpty means no bindings are present: nothing was published yet,
	// the registry was cleared, or the last reload had zero bindings.
	StateEmpty State = iota

	// StateLoaded means one or more bindings are present.
	StateLoaded
)

// String returns the state name.
func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "empty"
}

// Snapshot is an immutable view of the registry contents.
type Snapshot struct {
	id       uuid.UUID
	loadedAt time.Time
	entries  map[key.Combo]Entry
}

var emptySnapshot = &Snapshot{entries: map[key.Combo]Entry{}}

func newSnapshot(entries map[key.Combo]Entry) *Snapshot {
	return &Snapshot{
		id:       uuid.New(),
		loadedAt: time.Now(),
		entries:  entries,
	}
}

// ID identifies the snapshot. The empty snapshot has the nil UUID.
func (s *Snapshot) ID() uuid.UUID { return s.id }

// LoadedAt returns when the snapshot was published.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Len returns the number of bound combos.
func (s *Snapshot) Len() int { return len(s.entries) }

// Resolve returns the command bound to combo.
func (s *Snapshot) Resolve(combo key.Combo) (*Command, bool) {
	e, ok := s.entries[combo]
	if !ok {
		return nil, false
	}
	return e.Command, true
}

// Lookup returns the full entry bound to combo.
func (s *Snapshot) Lookup(combo key.Combo) (Entry, bool) {
	e, ok := s.entries[combo]
	return e, ok
}

// Entries returns all entries ordered by key, modifiers and direction.
func (s *Snapshot) Entries() []Entry {
	out := slices.Collect(maps.Values(s.entries))
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Combo.Key(), b.Combo.Key()),
			cmp.Compare(a.Combo.Mods(), b.Combo.Mods()),
			cmp.Compare(a.Combo.Event(), b.Combo.Event()),
		)
	})
	return out
}

// Registry holds the live binding table.
//
// Resolve never blocks: it reads the current snapshot through an atomic
// pointer. Writers serialize on a mutex and publish a fresh snapshot, so a
// concurrent reader sees either the old table or the new one in full.
// The zero value is an empty registry ready for use.
type Registry struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Snapshot returns the current snapshot.
func (r *Registry) Snapshot() *Snapshot {
	if s := r.current.Load(); s != nil {
		return s
	}
	return emptySnapshot
}

// Resolve returns the command bound to combo in the current snapshot.
func (r *Registry) Resolve(combo key.Combo) (*Command, bool) {
	return r.Snapshot().Resolve(combo)
}

// Register binds combo to cmd, replacing any existing binding for the same
// combo. It reports whether a binding was replaced.
func (r *Registry) Register(combo key.Combo, cmd *Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := maps.Clone(r.Snapshot().entries)
	_, replaced := entries[combo]
	entries[combo] = Entry{Combo: combo, Command: cmd}
	r.current.Store(newSnapshot(entries))
	return replaced
}

// Replace publishes the contents of t as the new live table and returns
// the published snapshot. Later changes to t do not affect the registry.
func (r *Registry) Replace(t *Table) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := newSnapshot(t.clone())
	r.current.Store(s)
	return s
}

// Clear removes all bindings.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current.Store(nil)
}

// Len returns the number of bound combos.
func (r *Registry) Len() int {
	return r.Snapshot().Len()
}

// State reports whether any bindings are present.
func (r *Registry) State() State {
	if r.Snapshot().Len() == 0 {
		return StateEmpty
	}
	return StateLoaded
}
