package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeyd/internal/app"
	"github.com/dshills/hotkeyd/internal/platform/term"
	"github.com/dshills/hotkeyd/internal/platform/x11"
)

// probe runs the daemon against terminal key presses. Log output, including
// matched commands, is drawn on the screen.
func (c *cli) probe() int {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: failed to create terminal: %v\n", err)
		return exitFailure
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(c.stderr, "Error: failed to initialize terminal: %v\n", err)
		return exitFailure
	}

	err = c.serveScreen(screen)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// quitKey ends an interactive session.
const quitKey = tcell.KeyCtrlC

func (c *cli) serveScreen(screen tcell.Screen) error {
	out := &screenLog{
		screen: screen,
		title:  "hotkeyd probe: press keys, " + tcell.KeyNames[quitKey] + " to quit",
	}
	out.draw()
	c.logger = app.NewLogger(out, c.settings.Log.Level, c.settings.Log.Format)

	d, err := c.newDaemon(nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := term.NewSource(screen,
		term.Translator{Masks: x11.Masks{}, Keysyms: x11.Keysyms{}},
		term.WithQuitKey(quitKey),
		term.WithSourceLogger(c.logger.With("component", "term")))
	defer src.Close()

	return d.Run(ctx, src)
}

// screenLog is an io.Writer that shows the most recent lines written to it
// on a tcell screen.
type screenLog struct {
	mu     sync.Mutex
	screen tcell.Screen
	title  string
	lines  [][]byte
}

func (l *screenLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		l.lines = append(l.lines, bytes.Clone(line))
	}
	if _, h := l.screen.Size(); h > 1 && len(l.lines) > h-2 {
		l.lines = l.lines[len(l.lines)-(h-2):]
	}
	l.mu.Unlock()

	l.draw()
	return len(p), nil
}

func (l *screenLog) draw() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.screen.Clear()
	drawText(l.screen, 0, tcell.StyleDefault.Bold(true), l.title)
	for i, line := range l.lines {
		drawText(l.screen, i+2, tcell.StyleDefault, string(line))
	}
	l.screen.Show()
}

func drawText(s tcell.Screen, row int, style tcell.Style, text string) {
	col := 0
	for _, r := range text {
		s.SetContent(col, row, r, nil, style)
		col++
	}
}
