//go:build !unix

package app

import "os"

func reloadSignals() []os.Signal {
	return nil
}
