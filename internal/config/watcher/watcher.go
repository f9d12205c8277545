// Package watcher reports changes to configuration files.
//
// Files are watched through their parent directory so that editors which
// save by writing a new file and renaming it over the old one are seen.
// Bursts of events are coalesced: a change is reported once the watched
// files have been quiet for the debounce interval.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned when using a watcher after Close.
var ErrClosed = errors.New("watcher closed")

// Operation is a bit set of file operations.
type Operation uint8

const (
	OpCreate Operation = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// String returns a name like "write" or "create|write".
func (o Operation) String() string {
	if o == 0 {
		return "unknown"
	}
	var names []string
	for _, n := range []struct {
		op   Operation
		name string
	}{
		{OpCreate, "create"},
		{OpWrite, "write"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
	} {
		if o&n.op != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}

// Event reports a settled change to a watched file.
type Event struct {
	// Path is the absolute path of the file.
	Path string

	// Op holds every operation seen during the debounce window.
	Op Operation
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher watches a set of files for changes.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	changes  chan Event

	mu     sync.Mutex
	files  map[string]struct{}
	dirs   map[string]struct{}
	closed bool
}

// New creates a watcher.
func New(opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		debounce: 250 * time.Millisecond,
		logger:   slog.New(slog.DiscardHandler),
		changes:  make(chan Event, 16),
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch adds a file to the watch list. The file need not exist yet, but
// its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.files[abs] = struct{}{}
	return nil
}

// WatchedFiles returns the watched files in sorted order.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	slices.Sort(files)
	return files
}

// Changes returns the channel on which settled changes are delivered.
// The channel is closed when Run returns.
func (w *Watcher) Changes() <-chan Event {
	return w.changes
}

// Run processes file system events until ctx is cancelled or the watcher
// is closed. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.changes)
	defer w.Close()

	pending := make(map[string]Operation)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(ev.Name)
			op := convertOp(ev.Op)
			if op == 0 || !w.isWatched(path) {
				continue
			}
			pending[path] |= op
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watch error", "error", err)

		case <-timer.C:
			w.flush(ctx, pending)
		}
	}
}

// flush delivers pending changes in path order.
func (w *Watcher) flush(ctx context.Context, pending map[string]Operation) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for _, p := range paths {
		select {
		case w.changes <- Event{Path: p, Op: pending[p]}:
		case <-ctx.Done():
			return
		}
		delete(pending, p)
	}
}

func (w *Watcher) isWatched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path]
	return ok
}

// Close stops the underlying file system watcher. It is safe to call more
// than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.fs.Close()
}

// convertOp maps fsnotify operations to watcher operations. Chmod alone is
// not a content change and maps to zero.
func convertOp(fsOp fsnotify.Op) Operation {
	var op Operation
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
