// Package clock provides the time sources and deadline windows the game runs on.
package clock

import (
	"sync"
	"time"
)

// Source reports the current wall-clock time.
type Source interface {
	Now() time.Time
}

// System is the real monotonic clock.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// Mock is a controllable clock for tests.
type Mock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMock creates a mock clock starting at start.
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

// Now returns the mocked time.
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set jumps the mock to t.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the mock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Window is a timed effect measured on a round clock (elapsed play time).
// The zero value is an expired window.
type Window struct {
	Until time.Duration
}

// Active reports whether the window is still open at now.
func (w Window) Active(now time.Duration) bool {
	return now < w.Until
}

// Extend (re)starts the window so it closes d after now.
func (w *Window) Extend(now, d time.Duration) {
	w.Until = now + d
}

// Remaining returns the time left in the window, or zero once closed.
func (w Window) Remaining(now time.Duration) time.Duration {
	if now >= w.Until {
		return 0
	}
	return w.Until - now
}
