// Package watcher reports edits to a single source file.
//
// The file and its parent directory are both registered with fsnotify: the
// file watch sees in-place writes, the directory watch sees the file being
// recreated by editors that save through a temporary file and a rename.
// Bursts of events are coalesced by a debounce window into one signal.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// ErrWatchSetup indicates the source or its directory could not be watched.
var ErrWatchSetup = errors.New("watch setup failed")

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// State is the lifecycle position of a Watcher.
type State int32

const (
	StateIdle       State = iota // created, not registered
	StateWatching                // registered, no pending change
	StateDebouncing              // change seen, waiting for the burst to end
	StateStopped                 // Run returned or Close was called
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWatching:
		return "watching"
	case StateDebouncing:
		return "debouncing"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Negative values are treated as zero.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.delay = max(d, 0)
	}
}

// WithLogger sets the logger for event diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher emits one signal on Changes per coalesced edit of the source.
type Watcher struct {
	path   string
	dir    string
	delay  time.Duration
	logger *log.Logger

	fsw       *fsnotify.Watcher
	debounced func(func())
	state     atomic.Int32

	mu      sync.Mutex // guards arming, emission and close
	closed  bool
	changes chan struct{}
	armed   uint64 // generation of the newest debounce timer

	stopOnce sync.Once
}

// New registers path and its parent directory.
// Returns ErrWatchSetup if either registration fails. A source that does
// not exist yet is only watched through its directory until it appears.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatchSetup, err)
	}

	w := &Watcher{
		path:    abs,
		dir:     filepath.Dir(abs),
		delay:   DefaultDebounce,
		logger:  log.New(io.Discard, "", 0),
		changes: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debounced = debounce.New(w.delay)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatchSetup, err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrWatchSetup, w.dir, err)
	}
	if err := fsw.Add(w.path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			_ = fsw.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrWatchSetup, w.path, err)
		}
		w.logger.Printf("%s does not exist yet, waiting for it to be created", w.path)
	}

	w.fsw = fsw
	w.state.Store(int32(StateWatching))
	return w, nil
}

// Path returns the absolute path of the watched source.
func (w *Watcher) Path() string {
	return w.path
}

// Changes delivers one signal per coalesced edit. At most one signal is
// pending; it is closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	return State(w.state.Load())
}

// Run reads filesystem events until ctx is done or the watcher fails.
// A failure to re-register a recreated source ends Run with an error
// wrapping ErrWatchSetup; cancellation returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if err := w.handleEvent(ev); err != nil {
				return err
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Printf("event queue overflowed, assuming a change")
				w.trigger()
				continue
			}
			w.logger.Printf("error: %v", err)
		}
	}
}

// Close stops the watcher and closes Changes. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		w.state.Store(int32(StateStopped))
		err = w.fsw.Close()

		w.mu.Lock()
		w.closed = true
		close(w.changes)
		w.mu.Unlock()
	})
	return err
}

// handleEvent triggers on writes to the source and on its creation, which
// also re-adds the file watch lost when the old inode went away.
func (w *Watcher) handleEvent(ev fsnotify.Event) error {
	if filepath.Clean(ev.Name) != w.path {
		return nil
	}

	switch {
	case ev.Has(fsnotify.Create):
		if err := w.fsw.Add(w.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: re-adding %s: %w", ErrWatchSetup, w.path, err)
		}
		w.logger.Printf("%s recreated", filepath.Base(w.path))
		w.trigger()
	case ev.Has(fsnotify.Write):
		w.logger.Printf("%s written", filepath.Base(w.path))
		w.trigger()
	}
	return nil
}

// trigger starts or extends the debounce window. The state change and the
// arming happen under mu, so emit never observes one without the other.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	switch w.State() {
	case StateWatching:
		w.state.Store(int32(StateDebouncing))
	case StateDebouncing:
	default:
		return
	}

	w.armed++
	gen := w.armed
	w.debounced(func() { w.emit(gen) })
}

// emit runs once the window elapses. A timer superseded by a later trigger
// does nothing, so the state stays Debouncing until the newest one fires.
// The send never blocks: a signal that is already pending covers this
// change too.
func (w *Watcher) emit(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || gen != w.armed {
		return
	}
	if !w.state.CompareAndSwap(int32(StateDebouncing), int32(StateWatching)) {
		return
	}

	select {
	case w.changes <- struct{}{}:
	default:
	}
}
