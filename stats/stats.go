package stats

import (
	"sync"
)

// Delta represents an incremental counter change emitted by the registry.
type Delta struct {
	Admitted int
	Skipped  int
	Rejected int
	Evicted  int
	Killed   int
}

// IsZero reports whether d carries no change.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Counters keeps aggregated registry counters. It is safe for concurrent use.
type Counters struct {
	mu       sync.Mutex
	current  Snapshot
	onChange func(Snapshot)
}

// Snapshot is a read-only copy of Counters.
type Snapshot struct {
	// Admitted counts tasks added to the registry.
	Admitted int `json:"admitted" yaml:"admitted"`
	// Skipped counts Add calls the priority policy declined without error.
	Skipped int `json:"skipped" yaml:"skipped"`
	// Rejected counts Add calls that failed with an error.
	Rejected int `json:"rejected" yaml:"rejected"`
	// Evicted counts tasks removed by a policy to make room.
	Evicted int `json:"evicted" yaml:"evicted"`
	// Killed counts tasks removed by kill, killGroup, killAll or a reset.
	Killed int `json:"killed" yaml:"killed"`
}

// Update applies the supplied delta. If an onChange callback has been
// registered it is invoked with a snapshot outside the critical section.
func (c *Counters) Update(d Delta) {
	if c == nil || d.IsZero() {
		return
	}
	c.mu.Lock()
	c.current.Admitted += d.Admitted
	c.current.Skipped += d.Skipped
	c.current.Rejected += d.Rejected
	c.current.Evicted += d.Evicted
	c.current.Killed += d.Killed
	snapshot := c.current
	cb := c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (c *Counters) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables the callback; only one callback is active at a time.
func (c *Counters) OnChange(cb func(Snapshot)) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.onChange = cb
	c.mu.Unlock()
}
