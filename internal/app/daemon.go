package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/dshills/hotkeyd/internal/config"
	"github.com/dshills/hotkeyd/internal/config/watcher"
	"github.com/dshills/hotkeyd/internal/input/key"
	"github.com/dshills/hotkeyd/internal/input/keymap"
)

// EventSource delivers key combos from the host.
type EventSource interface {
	// Events returns a channel that is closed when the source ends.
	Events() <-chan key.Combo
}

// Options configures a Daemon.
type Options struct {
	// Settings holds the daemon configuration.
	Settings config.Settings

	// Masks maps modifiers to the host's mask bits. Required.
	Masks key.MaskTable

	// Keysyms resolves key names. Required.
	Keysyms key.KeysymLookup

	// Handler receives matched commands. Defaults to a LogHandler.
	Handler Handler

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Daemon owns the live binding registry and serves key events against it.
type Daemon struct {
	settings config.Settings
	masks    key.MaskTable
	keysyms  key.KeysymLookup
	handler  Handler
	logger   *slog.Logger

	loader   *keymap.Loader
	compiler *keymap.Compiler
	registry *keymap.Registry

	running atomic.Bool
	loaded  atomic.Bool
}

// New creates a daemon. The registry starts empty; call Reload or Run to
// load bindings.
func New(opts Options) (*Daemon, error) {
	if opts.Keysyms == nil {
		return nil, errors.New("app: keysym lookup is required")
	}
	if err := key.ValidateMasks(opts.Masks); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	handler := opts.Handler
	if handler == nil {
		handler = LogHandler{Logger: logger, Masks: opts.Masks, Keysyms: opts.Keysyms}
	}

	return &Daemon{
		settings: opts.Settings,
		masks:    opts.Masks,
		keysyms:  opts.Keysyms,
		handler:  handler,
		logger:   logger,
		loader:   keymap.NewLoader(),
		compiler: keymap.NewCompiler(
			key.NewParser(opts.Keysyms),
			opts.Masks,
			logger.With("component", "keymap"),
		),
		registry: keymap.NewRegistry(),
	}, nil
}

// Registry returns the live binding registry.
func (d *Daemon) Registry() *keymap.Registry {
	return d.registry
}

// Reload reads the bindings file and publishes it as the live table.
//
// A document that cannot be decoded never replaces the live table. In
// strict mode any invalid binding also aborts the reload; otherwise
// invalid bindings are logged and skipped.
func (d *Daemon) Reload() (*keymap.Snapshot, error) {
	path := d.settings.BindingsPath

	doc, err := d.loader.LoadFile(path)
	if err != nil {
		return nil, &ReloadError{Source: path, Err: err}
	}

	table, problems := d.compiler.Compile(doc.Bindings)
	problems = append(doc.Problems, problems...)

	if len(problems) > 0 {
		if d.settings.Strict {
			return nil, &ReloadError{Source: path, Problems: problems, Err: ErrBindingsRejected}
		}
		for _, p := range problems {
			d.logger.Warn("skipping binding", "source", p.Source, "keys", p.Keys, "error", p.Err)
		}
	}

	snap := d.registry.Replace(table)
	d.loaded.Store(true)
	d.logger.Info("bindings loaded",
		"path", path,
		"snapshot", snap.ID().String(),
		"loaded_at", snap.LoadedAt(),
		"bindings", snap.Len(),
		"skipped", len(problems))
	return snap, nil
}

// Dispatch looks up combo and hands the bound command to the handler.
// It reports whether the combo was bound.
func (d *Daemon) Dispatch(ctx context.Context, combo key.Combo) bool {
	entry, ok := d.registry.Snapshot().Lookup(combo)
	if !ok {
		d.logger.Debug("unbound combo", "combo", combo.String())
		return false
	}
	if err := d.handler.Handle(ctx, entry); err != nil {
		d.logger.Error("command failed",
			"combo", combo.Describe(d.masks, d.keysyms),
			"source", entry.Source,
			"error", err)
	}
	return true
}

// Run serves events from src until ctx is cancelled or src ends.
//
// If Reload has not succeeded yet, Run loads the bindings first and fails
// if that load fails. A file with zero bindings counts as loaded.
//
// While running, bindings are reloaded on SIGHUP and, when enabled, on
// changes to the bindings file. A failed reload keeps the
// previous bindings.
func (d *Daemon) Run(ctx context.Context, src EventSource) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer d.running.Store(false)

	if !d.loaded.Load() {
		if _, err := d.Reload(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var hup chan os.Signal
	if sigs := reloadSignals(); len(sigs) > 0 {
		hup = make(chan os.Signal, 1)
		signal.Notify(hup, sigs...)
		defer signal.Stop(hup)
	}

	changes := d.startWatcher(ctx)
	events := src.Events()

	for {
		select {
		case <-ctx.Done():
			return nil

		case combo, ok := <-events:
			if !ok {
				return nil
			}
			d.Dispatch(ctx, combo)

		case sig := <-hup:
			d.logger.Info("reload requested", "signal", sig.String())
			d.reload()

		case ev, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			d.logger.Info("bindings file changed", "path", ev.Path, "op", ev.Op.String())
			d.reload()
		}
	}
}

func (d *Daemon) reload() {
	if _, err := d.Reload(); err != nil {
		d.logger.Error("reload failed, keeping previous bindings", "error", err)
	}
}

// startWatcher watches the bindings file when enabled. It returns nil when
// watching is disabled or unavailable.
func (d *Daemon) startWatcher(ctx context.Context) <-chan watcher.Event {
	if !d.settings.Watch.Enabled {
		return nil
	}

	w, err := watcher.New(
		watcher.WithDebounce(d.settings.Watch.Debounce.Duration),
		watcher.WithLogger(d.logger.With("component", "watcher")),
	)
	if err != nil {
		d.logger.Warn("live reload disabled", "error", err)
		return nil
	}
	if err := w.Watch(d.settings.BindingsPath); err != nil {
		w.Close()
		d.logger.Warn("live reload disabled", "error", err)
		return nil
	}

	go func() {
		if err := w.Run(ctx); err != nil {
			d.logger.Warn("watcher stopped", "error", err)
		}
	}()
	return w.Changes()
}
