package keymap

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/hotkeyd/internal/input/key"
	"github.com/dshills/hotkeyd/internal/platform/x11"
)

var (
	testParser = key.NewParser(x11.Keysyms{})
	testMasks  = x11.Masks{}
)

func combo(t *testing.T, spec string, ev key.Direction) key.Combo {
	t.Helper()
	chord, err := testParser.Parse(spec)
	if err != nil {
		t.Fatalf("Parse(%q): %v", spec, err)
	}
	return chord.Combo(testMasks, ev)
}

func TestTableRegisterResolve(t *testing.T) {
	table := NewTable()
	c := combo(t, "Super+Shift+x", key.Pressed)
	cmd := Spawn("xterm")

	if table.Register(c, cmd) {
		t.Error("first Register reported a replacement")
	}
	got, ok := table.Resolve(c)
	if !ok || got != cmd {
		t.Errorf("Resolve = %v, %v; want the registered command", got, ok)
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}
}

func TestTableLastWriteWins(t *testing.T) {
	table := NewTable()
	first := Spawn("a")
	second := Spawn("b")

	table.Register(combo(t, "Super+Shift+x", key.Pressed), first)
	if !table.Register(combo(t, "Shift+Super+x", key.Pressed), second) {
		t.Error("re-registering the same combo should report a replacement")
	}

	got, _ := table.Resolve(combo(t, "Super+Shift+x", key.Pressed))
	if got != second {
		t.Errorf("Resolve = %v, want the later command", got)
	}
	if table.Len() != 1 {
		t.Errorf("Len = %d, want 1", table.Len())
	}
}

func TestTableDirectionIsPartOfCombo(t *testing.T) {
	table := NewTable()
	table.Register(combo(t, "Super+Return", key.Released), Noop())

	if _, ok := table.Resolve(combo(t, "Super+Return", key.Pressed)); ok {
		t.Error("a release binding must not match a press")
	}
	if _, ok := table.Resolve(combo(t, "Super+Return", key.Released)); !ok {
		t.Error("release binding not found")
	}
}

func TestTableZeroValue(t *testing.T) {
	var table Table
	c := combo(t, "a", key.Pressed)
	table.Register(c, Noop())
	if _, ok := table.Resolve(c); !ok {
		t.Error("zero Table should accept registrations")
	}
}

func TestRegistryEmpty(t *testing.T) {
	var r Registry

	if r.State() != StateEmpty {
		t.Errorf("State = %s, want empty", r.State())
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
	if _, ok := r.Resolve(combo(t, "a", key.Pressed)); ok {
		t.Error("empty registry resolved a combo")
	}
	if r.Snapshot().ID() != uuid.Nil {
		t.Error("empty snapshot should have the nil ID")
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	c := combo(t, "Control+Alt+Escape", key.Pressed)
	cmd := Mapping(map[string]any{"to": "Super+l"})

	if r.Register(c, cmd) {
		t.Error("first Register reported a replacement")
	}
	got, ok := r.Resolve(c)
	if !ok || got != cmd {
		t.Errorf("Resolve = %v, %v", got, ok)
	}
	if r.State() != StateLoaded {
		t.Errorf("State = %s, want loaded", r.State())
	}
	if !r.Register(c, Noop()) {
		t.Error("second Register should report a replacement")
	}
	if got, _ := r.Resolve(c); got.Kind != CommandNoop {
		t.Errorf("Resolve kind = %s, want noop", got.Kind)
	}
}

func TestRegistryReplaceIsolatesTable(t *testing.T) {
	r := NewRegistry()
	table := NewTable()
	c := combo(t, "Super+a", key.Pressed)
	table.Register(c, Noop())

	snap := r.Replace(table)
	if snap.Len() != 1 || snap.ID() == uuid.Nil {
		t.Fatalf("snapshot len=%d id=%s", snap.Len(), snap.ID())
	}

	table.Register(combo(t, "Super+b", key.Pressed), Noop())
	if r.Len() != 1 {
		t.Errorf("registry changed after its source table was mutated: Len = %d", r.Len())
	}
}

func TestRegistrySnapshotsAreImmutable(t *testing.T) {
	r := NewRegistry()
	a := combo(t, "Super+a", key.Pressed)
	r.Register(a, Noop())

	before := r.Snapshot()
	r.Register(combo(t, "Super+b", key.Pressed), Noop())

	if before.Len() != 1 {
		t.Errorf("old snapshot changed: Len = %d", before.Len())
	}
	if r.Snapshot().ID() == before.ID() {
		t.Error("each write should publish a new snapshot")
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	r.Register(combo(t, "a", key.Pressed), Noop())
	r.Clear()

	if r.State() != StateEmpty || r.Len() != 0 {
		t.Errorf("after Clear: state=%s len=%d", r.State(), r.Len())
	}
}

func TestRegistryReplaceEmptyIsEmpty(t *testing.T) {
	r := NewRegistry()

	snap := r.Replace(NewTable())
	if r.State() != StateEmpty || snap.Len() != 0 {
		t.Errorf("after Replace(empty): state=%s len=%d", r.State(), snap.Len())
	}

	loaded := NewTable()
	loaded.Register(combo(t, "Super+a", key.Pressed), Noop())
	r.Replace(loaded)
	if r.State() != StateLoaded {
		t.Fatalf("State = %s, want loaded", r.State())
	}

	r.Replace(NewTable())
	if r.State() != StateEmpty || r.Len() != 0 {
		t.Errorf("reload with zero bindings: state=%s len=%d, want empty", r.State(), r.Len())
	}
}

func TestSnapshotEntriesSorted(t *testing.T) {
	r := NewRegistry()
	table := NewTable()
	table.Register(combo(t, "Super+b", key.Pressed), Noop())
	table.Register(combo(t, "a", key.Released), Noop())
	table.Register(combo(t, "a", key.Pressed), Noop())
	table.Register(combo(t, "Shift+a", key.Pressed), Noop())

	entries := r.Replace(table).Entries()
	want := []key.Combo{
		combo(t, "a", key.Pressed),
		combo(t, "a", key.Released),
		combo(t, "Shift+a", key.Pressed),
		combo(t, "Super+b", key.Pressed),
	}
	if len(entries) != len(want) {
		t.Fatalf("Entries len = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Combo != want[i] {
			t.Errorf("Entries[%d] = %s, want %s", i, e.Combo, want[i])
		}
	}
}

func TestRegistryConcurrentReload(t *testing.T) {
	r := NewRegistry()
	x := combo(t, "Super+x", key.Pressed)
	y := combo(t, "Super+y", key.Pressed)

	build := func(tag string) *Table {
		table := NewTable()
		table.Register(x, Spawn(tag))
		table.Register(y, Spawn(tag))
		return table
	}
	r.Replace(build("gen0"))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := r.Snapshot()
				cx, okx := snap.Resolve(x)
				cy, oky := snap.Resolve(y)
				if !okx || !oky {
					t.Error("snapshot lost a binding during reload")
					return
				}
				if cx.Payload != cy.Payload {
					t.Errorf("snapshot mixes generations: %v and %v", cx.Payload, cy.Payload)
					return
				}
			}
		}()
	}

	for i := 1; i <= 200; i++ {
		r.Replace(build("gen" + string(rune('0'+i%10))))
	}
	close(stop)
	wg.Wait()
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  *Command
		want string
	}{
		{Noop(), "noop"},
		{Spawn("xterm"), "spawn xterm"},
		{Mapping(nil), "mapping"},
		{nil, "<nil>"},
	}

	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if got := CommandKind(9).String(); got != "CommandKind(9)" {
		t.Errorf("unknown kind String() = %q", got)
	}
}
