package clock

import (
	"sync"
	"time"
)

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Millis returns the current time in Unix milliseconds.
func Millis() int64 { return NowFunc().UnixMilli() }

// Monotonic wraps a millisecond source so that successive stamps never
// decrease, even when the wall clock steps backwards.
type Monotonic struct {
	mu     sync.Mutex
	source func() int64
	last   int64
}

// NewMonotonic creates a Monotonic over source; nil source uses Millis.
func NewMonotonic(source func() int64) *Monotonic {
	if source == nil {
		source = Millis
	}
	return &Monotonic{source: source}
}

// Stamp returns the next non-decreasing timestamp.
func (m *Monotonic) Stamp() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.source()
	if now < m.last {
		now = m.last
	}
	m.last = now
	return now
}

// Counter returns a strictly increasing stamp source starting at start.
func Counter(start int64) func() int64 {
	var mu sync.Mutex
	next := start
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		current := next
		next++
		return current
	}
}
