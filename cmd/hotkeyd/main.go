// Package main is the entry point for hotkeyd.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/dshills/hotkeyd/internal/app"
	"github.com/dshills/hotkeyd/internal/config"
	"github.com/dshills/hotkeyd/internal/input/key"
	"github.com/dshills/hotkeyd/internal/platform/x11"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cli holds what every subcommand needs.
type cli struct {
	settings config.Settings
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hotkeyd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath   string
		bindingsPath string
		logLevel     string
		logFormat    string
		strict       bool
		showVersion  bool
	)
	fs.StringVar(&configPath, "config", "", "Path to settings file")
	fs.StringVar(&configPath, "c", "", "Path to settings file (shorthand)")
	fs.StringVar(&bindingsPath, "bindings", "", "Path to bindings file")
	fs.StringVar(&bindingsPath, "b", "", "Path to bindings file (shorthand)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	fs.BoolVar(&strict, "strict", false, "Reject the bindings file if any binding is invalid")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "hotkeyd - global hotkey daemon\n\n")
		fmt.Fprintf(stderr, "Usage: hotkeyd [options] [command]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  check                      Load the bindings and list them (default)\n")
		fmt.Fprintf(stderr, "  resolve <chord> [press|release]\n")
		fmt.Fprintf(stderr, "                             Show the command bound to a chord\n")
		fmt.Fprintf(stderr, "  probe                      Match terminal key presses live\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		fmt.Fprintf(stderr, "  %s, %s, %s, %s, %s, %s\n",
			config.EnvBindings, config.EnvStrict, config.EnvLogLevel,
			config.EnvLogFormat, config.EnvWatch, config.EnvWatchDebounce)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if showVersion {
		fmt.Fprintf(stdout, "hotkeyd %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	if err := config.ApplyEnv(&settings, nil); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	// Flags override the file and the environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bindings", "b":
			settings.BindingsPath = config.ExpandHome(bindingsPath)
		case "log-level":
			settings.Log.Level = logLevel
		case "log-format":
			settings.Log.Format = logFormat
		case "strict":
			settings.Strict = strict
		}
	})
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: invalid settings: %v\n", err)
		return exitFailure
	}

	c := &cli{
		settings: settings,
		logger:   app.NewLogger(stderr, settings.Log.Level, settings.Log.Format),
		stdout:   stdout,
		stderr:   stderr,
	}

	cmd, rest := "check", []string(nil)
	if fs.NArg() > 0 {
		cmd, rest = fs.Arg(0), fs.Args()[1:]
	}
	switch cmd {
	case "check":
		return c.check()
	case "resolve":
		return c.resolve(rest)
	case "probe":
		return c.probe()
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}
}

// newDaemon builds a daemon using the X11 keysym and mask tables, which
// are also the host tables for the terminal probe.
func (c *cli) newDaemon(handler app.Handler) (*app.Daemon, error) {
	return app.New(app.Options{
		Settings: c.settings,
		Masks:    x11.Masks{},
		Keysyms:  x11.Keysyms{},
		Handler:  handler,
		Logger:   c.logger,
	})
}

func (c *cli) check() int {
	d, err := c.newDaemon(nil)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailure
	}
	snap, err := d.Reload()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailure
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	for _, e := range snap.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			e.Combo.Describe(x11.Masks{}, x11.Keysyms{}), e.Command, e.Source)
	}
	tw.Flush()
	fmt.Fprintf(c.stdout, "%d bindings\n", snap.Len())
	return exitOK
}

func (c *cli) resolve(args []string) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintf(c.stderr, "Usage: hotkeyd resolve <chord> [press|release]\n")
		return exitUsage
	}
	ev := key.Pressed
	if len(args) == 2 {
		var err error
		if ev, err = key.ParseDirection(args[1]); err != nil {
			fmt.Fprintf(c.stderr, "Error: %v\n", err)
			return exitUsage
		}
	}

	chord, err := key.NewParser(x11.Keysyms{}).Parse(args[0])
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitUsage
	}
	combo := chord.Combo(x11.Masks{}, ev)

	d, err := c.newDaemon(nil)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailure
	}
	snap, err := d.Reload()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailure
	}

	name := combo.Describe(x11.Masks{}, x11.Keysyms{})
	entry, ok := snap.Lookup(combo)
	if !ok {
		fmt.Fprintf(c.stdout, "%s: unbound\n", name)
		return exitFailure
	}
	fmt.Fprintf(c.stdout, "%s: %s (%s)\n", name, entry.Command, entry.Source)
	return exitOK
}
