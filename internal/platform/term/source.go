package term

import (
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeyd/internal/input/key"
)

// Source reads key events from a tcell screen.
//
// The screen must be initialized by the caller. The event channel is
// closed when the screen is finalized, the quit key is pressed or Close
// is called.
type Source struct {
	screen     tcell.Screen
	translator Translator
	quit       tcell.Key
	logger     *slog.Logger

	once      sync.Once
	closeOnce sync.Once
	done      chan struct{}
	events    chan key.Combo
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithQuitKey sets the key that ends the source. Defaults to Control+C.
func WithQuitKey(k tcell.Key) SourceOption {
	return func(s *Source) {
		s.quit = k
	}
}

// WithSourceLogger sets the logger for untranslatable keys.
func WithSourceLogger(l *slog.Logger) SourceOption {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSource creates a source reading from screen.
func NewSource(screen tcell.Screen, tr Translator, opts ...SourceOption) *Source {
	s := &Source{
		screen:     screen,
		translator: tr,
		quit:       tcell.KeyCtrlC,
		logger:     slog.New(slog.DiscardHandler),
		done:       make(chan struct{}),
		events:     make(chan key.Combo, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Events starts polling on first use and returns the combo channel.
func (s *Source) Events() <-chan key.Combo {
	s.once.Do(func() {
		go s.poll()
	})
	return s.events
}

// Close stops polling even if nobody is reading Events. It does not
// finalize the screen.
func (s *Source) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		// Wake a PollEvent that is blocked waiting for input.
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}

func (s *Source) poll() {
	defer close(s.events)

	for {
		select {
		case <-s.done:
			return
		default:
		}

		ev := s.screen.PollEvent()
		switch e := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			if e.Key() == s.quit {
				return
			}
			combo, ok := s.translator.Translate(e)
			if !ok {
				s.logger.Debug("untranslatable key", "key", e.Name())
				continue
			}
			select {
			case s.events <- combo:
			case <-s.done:
				return
			}
		}
	}
}
