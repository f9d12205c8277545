package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultWatchDebounce = 250 * time.Millisecond

	appDir           = "hotkeyd"
	settingsFileName = "config.toml"
	bindingsFileName = "bindings.yaml"
)

// Settings holds the daemon configuration.
type Settings struct {
	// BindingsPath is the bindings file to load.
	BindingsPath string `toml:"bindings"`

	// Strict rejects the whole bindings file when any binding is invalid.
	// Otherwise invalid bindings are logged and skipped.
	Strict bool `toml:"strict"`

	Log   LogSettings   `toml:"log"`
	Watch WatchSettings `toml:"watch"`
}

// LogSettings configures logging.
type LogSettings struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`

	// Format is text or json.
	Format string `toml:"format"`
}

// WatchSettings configures bindings file live reload.
type WatchSettings struct {
	Enabled  bool     `toml:"enabled"`
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration written as a string like "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		BindingsPath: defaultBindingsPath(),
		Log: LogSettings{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Watch: WatchSettings{
			Enabled:  true,
			Debounce: Duration{DefaultWatchDebounce},
		},
	}
}

// DefaultPath returns the settings file location under the user
// configuration directory, or "" when it cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, settingsFileName)
}

func defaultBindingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, bindingsFileName)
}

// Load reads settings from the TOML file at path on top of the defaults.
// A missing file is not an error; the defaults are returned.
// A relative bindings path is resolved against the settings file directory.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()

	if err := decode(f, path, &s); err != nil {
		return Default(), err
	}

	s.BindingsPath = ExpandHome(s.BindingsPath)
	if s.BindingsPath != "" && !filepath.IsAbs(s.BindingsPath) {
		s.BindingsPath = filepath.Join(filepath.Dir(ExpandHome(path)), s.BindingsPath)
	}
	return s, nil
}

// decode parses TOML from r into s.
func decode(r io.Reader, source string, s *Settings) error {
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(s); err != nil {
		pe := &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			pe.Message = strings.TrimSpace(serr.String())
		}
		return pe
	}
	return nil
}

// Validate checks that every setting holds a usable value.
func (s Settings) Validate() error {
	var errs []error

	if s.BindingsPath == "" {
		errs = append(errs, ErrMissingBindings)
	}
	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValueError{Setting: "log.level", Value: s.Log.Level, Err: ErrInvalidValue})
	}
	switch strings.ToLower(s.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, &ValueError{Setting: "log.format", Value: s.Log.Format, Err: ErrInvalidValue})
	}
	if s.Watch.Debounce.Duration < 0 {
		errs = append(errs, &ValueError{Setting: "watch.debounce", Value: s.Watch.Debounce, Err: ErrInvalidValue})
	}

	return errors.Join(errs...)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
