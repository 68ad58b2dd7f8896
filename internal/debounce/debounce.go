// Package debounce coalesces bursts of values into a single delivery.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period used when none is configured.
const DefaultQuiet = 220 * time.Millisecond

// Scheduler delivers the most recently scheduled value to fn after a quiet
// period with no further Schedule calls. Each call replaces the pending
// value and restarts the timer, so a burst of edits produces exactly one
// delivery carrying the final value. Deliveries are serialized: no two
// calls to fn run concurrently.
type Scheduler[T any] struct {
	quiet time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	armed   bool
	stopped bool

	deliverMu sync.Mutex
}

// NewScheduler creates a Scheduler with the given quiet period. A
// non-positive quiet falls back to DefaultQuiet.
func NewScheduler[T any](quiet time.Duration, fn func(T)) *Scheduler[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Scheduler[T]{quiet: quiet, fn: fn}
}

// Schedule registers value as the pending delivery, superseding any value
// scheduled earlier whose timer has not yet fired.
func (s *Scheduler[T]) Schedule(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.pending = value
	s.armed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, s.fire)
}

func (s *Scheduler[T]) fire() {
	value, ok := s.take()
	if !ok {
		return
	}
	s.deliver(value)
}

// Flush delivers any pending value immediately instead of waiting for the
// quiet period. No-op when nothing is pending.
func (s *Scheduler[T]) Flush() {
	value, ok := s.take()
	if !ok {
		return
	}
	s.deliver(value)
}

// Cancel drops the pending value without delivering it. The scheduler
// remains usable.
func (s *Scheduler[T]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarm()
}

// Stop cancels any pending delivery and rejects all future schedules.
func (s *Scheduler[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarm()
	s.stopped = true
}

func (s *Scheduler[T]) take() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed || s.stopped {
		var zero T
		return zero, false
	}
	value := s.pending
	s.disarm()
	return value, true
}

func (s *Scheduler[T]) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	var zero T
	s.pending = zero
	s.armed = false
}

func (s *Scheduler[T]) deliver(value T) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	s.fn(value)
}
