//go:build unix

package app

import (
	"os"

	"golang.org/x/sys/unix"
)

// reloadSignals are the signals that trigger a bindings reload.
func reloadSignals() []os.Signal {
	return []os.Signal{unix.SIGHUP}
}
