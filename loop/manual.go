package loop

import (
	"time"

	"github.com/matt-g-everett/ledtween/clock"
)

// Manual is a deterministic Host for tests. Time only moves through Step and
// Advance, which fire callbacks on the calling goroutine in deadline order.
type Manual struct {
	*schedule
	clock *clock.Manual
}

// NewManual creates a Manual host over c with frames aligned to refresh
// frames per second.
func NewManual(c *clock.Manual, refresh int) *Manual {
	return &Manual{
		schedule: newSchedule(c.Now(), refresh),
		clock:    c,
	}
}

// Clock returns the manual clock driving the host.
func (m *Manual) Clock() *clock.Manual { return m.clock }

// FrameInterval returns the time between display frames.
func (m *Manual) FrameInterval() time.Duration { return m.interval }

// AfterFunc implements Host.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	return m.addTimer(m.clock.Now(), d, fn)
}

// RequestFrame implements Host.
func (m *Manual) RequestFrame(fn func()) {
	m.addFrame(m.clock.Now(), fn)
}

// Pending reports whether any timer or frame callback is waiting.
func (m *Manual) Pending() bool {
	_, ok := m.next()
	return ok
}

// Step moves the clock to the earliest pending deadline and fires what is
// due there. It reports false when nothing is pending.
func (m *Manual) Step() bool {
	due, ok := m.next()
	if !ok {
		return false
	}
	m.clock.Set(due)
	m.fire(m.clock.Now())
	return true
}

// Advance moves the clock forward by d, firing every callback that falls due
// along the way at its own deadline.
func (m *Manual) Advance(d time.Duration) {
	target := m.clock.Now().Add(d)
	for {
		due, ok := m.next()
		if !ok || due.After(target) {
			break
		}
		m.clock.Set(due)
		m.fire(m.clock.Now())
	}
	m.clock.Set(target)
}
