package key

import "fmt"

// Keysym identifies a logical key independent of the physical layout.
// Values come from the host's key-symbol table.
type Keysym uint32

// NoSymbol is the sentinel for "no key".
const NoSymbol Keysym = 0

// String returns the hexadecimal form of the keysym.
func (k Keysym) String() string {
	if k == NoSymbol {
		return "NoSymbol"
	}
	return fmt.Sprintf("%#x", uint32(k))
}

// KeysymLookup resolves a lower-cased key name to a keysym.
// It must be an in-memory lookup with no I/O.
type KeysymLookup interface {
	Lookup(name string) (Keysym, bool)
}

// LookupFunc adapts a plain function to the KeysymLookup interface.
type LookupFunc func(name string) (Keysym, bool)

// Lookup calls f(name).
func (f LookupFunc) Lookup(name string) (Keysym, bool) {
	return f(name)
}

// KeysymNamer is implemented by lookups that can map a keysym back to a
// display name.
type KeysymNamer interface {
	Name(sym Keysym) string
}

// KeysymName returns a display name for sym using l when it supports
// reverse lookup, falling back to the hexadecimal form.
func KeysymName(l KeysymLookup, sym Keysym) string {
	if n, ok := l.(KeysymNamer); ok {
		if name := n.Name(sym); name != "" {
			return name
		}
	}
	return sym.String()
}
