// Package broadcast fans a single current value out to many subscribers.
//
// Only the latest value is kept. Subscribers observe strictly increasing
// versions and a slow subscriber skips whatever was published while it
// was busy; it never receives a value older than one it has seen.
package broadcast

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Next once the subscription or the broadcaster
// has been closed.
var ErrClosed = errors.New("broadcaster closed")

// Broadcaster holds the current value and the live subscriptions.
// The zero value is not usable; create one with New.
type Broadcaster struct {
	mu      sync.Mutex
	value   string
	version uint64
	subs    map[*Subscription]struct{}
	closed  bool
}

// Subscription is one consumer of a Broadcaster.
type Subscription struct {
	b      *Broadcaster
	ctx    context.Context
	notify chan struct{}
	done   chan struct{}
	once   sync.Once
	seen   uint64 // guarded by b.mu
}

// New returns a broadcaster whose current value is initial, at version 1.
func New(initial string) *Broadcaster {
	return &Broadcaster{
		value:   initial,
		version: 1,
		subs:    make(map[*Subscription]struct{}),
	}
}

// Publish replaces the current value and wakes every subscriber.
// It never blocks on a subscriber. Subscriptions whose context is done are
// released here.
func (b *Broadcaster) Publish(v string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.publishLocked(v)
}

// PublishIfChanged publishes v only if it differs from the current value.
// Reports whether a publish happened.
func (b *Broadcaster) PublishIfChanged(v string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || v == b.value {
		return false
	}
	b.publishLocked(v)
	return true
}

// PublishIfVersion publishes v only if the current version is still
// version. A caller that read the version before a slow render uses it to
// avoid replacing a value published in the meantime.
func (b *Broadcaster) PublishIfVersion(v string, version uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.version != version {
		return false
	}
	b.publishLocked(v)
	return true
}

func (b *Broadcaster) publishLocked(v string) {
	if b.closed {
		return
	}
	b.value = v
	b.version++

	for s := range b.subs {
		if s.ctx.Err() != nil {
			delete(b.subs, s)
			s.release()
			continue
		}
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
}

// Current returns the current value and its version.
func (b *Broadcaster) Current() (string, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value, b.version
}

// Len returns the number of registered subscriptions, including ones whose
// context is done but which have not been released by a Publish yet.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subscribe registers a subscription bound to ctx. The first Next call
// returns the current value.
func (b *Broadcaster) Subscribe(ctx context.Context) *Subscription {
	s := &Subscription{
		b:      b,
		ctx:    ctx,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s.release()
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Close releases every subscription. Later publishes are ignored and
// later subscriptions are born closed.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.release()
	}
	clear(b.subs)
}

// Next returns the first value newer than the last one this subscription
// returned, waiting for a publish if there is none.
// It returns ErrClosed after Close, or the context error when ctx or the
// subscription context is done.
func (s *Subscription) Next(ctx context.Context) (string, error) {
	for {
		if v, ok, err := s.poll(); err != nil || ok {
			return v, err
		}

		select {
		case <-s.notify:
		case <-s.done:
			return "", ErrClosed
		case <-ctx.Done():
			return "", ctx.Err()
		case <-s.ctx.Done():
			return "", s.ctx.Err()
		}
	}
}

func (s *Subscription) poll() (string, bool, error) {
	b := s.b
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-s.done:
		return "", false, ErrClosed
	default:
	}
	if b.version > s.seen {
		s.seen = b.version
		return b.value, true, nil
	}
	return "", false, nil
}

// Version returns the version of the last value Next returned, or zero.
func (s *Subscription) Version() uint64 {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	return s.seen
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.b.mu.Lock()
	delete(s.b.subs, s)
	s.b.mu.Unlock()
	s.release()
}

func (s *Subscription) release() {
	s.once.Do(func() { close(s.done) })
}
