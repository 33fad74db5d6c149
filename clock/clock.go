// Package clock supplies the time source tweens measure progress against.
package clock

import (
	"fmt"
	"sync"
	"time"
)

// Clock returns the current time. Readings must not go backwards within a
// process lifetime.
type Clock interface {
	Now() time.Time
}

type monotonicClock struct{}

func (monotonicClock) Now() time.Time { return time.Now() }

type wallClock struct{}

// Round(0) strips the monotonic reading, leaving only wall time.
func (wallClock) Now() time.Time { return time.Now().Round(0) }

// System returns the high resolution clock backed by the runtime's
// monotonic reading.
func System() Clock { return monotonicClock{} }

// Wall returns the fallback clock. It reads wall time only, so it can move
// backwards if the system clock is adjusted.
func Wall() Clock { return wallClock{} }

// Named returns the clock called name: "system" (or empty) or "wall".
func Named(name string) (Clock, error) {
	switch name {
	case "", "system":
		return System(), nil
	case "wall":
		return Wall(), nil
	}
	return nil, fmt.Errorf("unknown clock %q", name)
}

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManual creates a Manual clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t. Earlier times are ignored.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.After(m.now) {
		m.now = t
	}
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
