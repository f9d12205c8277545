package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "HOTKEYD_"

// Environment variables understood by ApplyEnv.
const (
	EnvBindings      = EnvPrefix + "BINDINGS"
	EnvStrict        = EnvPrefix + "STRICT"
	EnvLogLevel      = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat     = EnvPrefix + "LOG_FORMAT"
	EnvWatch         = EnvPrefix + "WATCH"
	EnvWatchDebounce = EnvPrefix + "WATCH_DEBOUNCE"
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides s with values from the environment. A nil lookup
// reads the process environment.
// Note: Empty string values are treated as valid values, not as unset.
func ApplyEnv(s *Settings, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var errs []error
	if v, ok := lookup(EnvBindings); ok {
		s.BindingsPath = ExpandHome(v)
	}
	if v, ok := lookup(EnvStrict); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, &ValueError{Setting: EnvStrict, Value: v, Err: err})
		} else {
			s.Strict = b
		}
	}
	if v, ok := lookup(EnvLogLevel); ok {
		s.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		s.Log.Format = v
	}
	if v, ok := lookup(EnvWatch); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, &ValueError{Setting: EnvWatch, Value: v, Err: err})
		} else {
			s.Watch.Enabled = b
		}
	}
	if v, ok := lookup(EnvWatchDebounce); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, &ValueError{Setting: EnvWatchDebounce, Value: v, Err: err})
		} else {
			s.Watch.Debounce = Duration{d}
		}
	}

	return errors.Join(errs...)
}
