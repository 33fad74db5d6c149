// Package scheduler steps every live animation once per frame from a single
// shared loop.
//
// The loop starts itself when the first step is added and stops when a tick
// finds nothing left to run. Steps are plain callbacks: returning false
// removes the step after the call.
package scheduler

import (
	"sync"
	"time"

	"github.com/matt-g-everett/ledtween/clock"
	"github.com/matt-g-everett/ledtween/loop"
)

// DefaultFixedFPS is the tick rate of the fixed interval source.
const DefaultFixedFPS = 60

// TickSource selects how the next tick is requested from the host.
type TickSource int

const (
	// AnimationFrame ticks on the host's display frames.
	AnimationFrame TickSource = iota
	// FixedInterval ticks on a plain timer at the fixed FPS.
	FixedInterval
)

func (s TickSource) String() string {
	switch s {
	case AnimationFrame:
		return "frame"
	case FixedInterval:
		return "interval"
	default:
		return "unknown"
	}
}

// Step is a registered callback. Steps are compared by identity.
type Step struct {
	run func() bool
}

// NewStep wraps fn. fn returns false when it is finished.
func NewStep(fn func() bool) *Step {
	return &Step{run: fn}
}

// Scheduler owns the ordered set of active steps. It is not safe for
// concurrent use: every call must come from the host's thread.
type Scheduler struct {
	host  loop.Host
	clock clock.Clock

	steps   []*Step
	running bool
	ticking bool
	cursor  int

	source   TickSource
	interval time.Duration

	fps      fpsCounter
	listener func(int)
}

// New creates a Scheduler that asks host for ticks and samples FPS with c.
func New(host loop.Host, c clock.Clock) *Scheduler {
	return &Scheduler{
		host:     host,
		clock:    c,
		source:   AnimationFrame,
		interval: time.Second / DefaultFixedFPS,
	}
}

var (
	defaultOnce      sync.Once
	defaultScheduler *Scheduler
)

// Default returns the process-wide scheduler running on loop.Default. Use it
// only from tasks submitted to that loop.
func Default() *Scheduler {
	defaultOnce.Do(func() {
		l := loop.Default()
		defaultScheduler = New(l, l.Clock())
	})
	return defaultScheduler
}

// Add appends step and starts the loop if it is idle. Starting the loop runs
// the first tick immediately.
func (s *Scheduler) Add(step *Step) {
	s.steps = append(s.steps, step)
	if !s.running {
		s.running = true
		s.tick()
	}
}

// Remove detaches the first occurrence of step. It reports whether step was
// registered. Removing during a tick never skips or repeats another step.
func (s *Scheduler) Remove(step *Step) bool {
	for i, cur := range s.steps {
		if cur == step {
			s.removeAt(i)
			return true
		}
	}
	return false
}

func (s *Scheduler) removeAt(i int) {
	copy(s.steps[i:], s.steps[i+1:])
	s.steps[len(s.steps)-1] = nil
	s.steps = s.steps[:len(s.steps)-1]
	if s.ticking && i <= s.cursor {
		s.cursor--
	}
}

// Contains reports whether step is registered.
func (s *Scheduler) Contains(step *Step) bool {
	for _, cur := range s.steps {
		if cur == step {
			return true
		}
	}
	return false
}

// Len returns the number of registered steps.
func (s *Scheduler) Len() int { return len(s.steps) }

// Running reports whether a tick is scheduled.
func (s *Scheduler) Running() bool { return s.running }

// UseAnimationFrame switches to display frame ticks.
func (s *Scheduler) UseAnimationFrame() { s.source = AnimationFrame }

// UseFixedInterval switches to timer ticks at the fixed FPS.
func (s *Scheduler) UseFixedInterval() { s.source = FixedInterval }

// Source returns the active tick source.
func (s *Scheduler) Source() TickSource { return s.source }

// SetFixedFPS sets the rate of the fixed interval source. Non-positive
// values are ignored.
func (s *Scheduler) SetFixedFPS(fps int) {
	if fps <= 0 {
		return
	}
	s.interval = time.Second / time.Duration(fps)
}

// FixedInterval returns the period of the fixed interval source.
func (s *Scheduler) FixedInterval() time.Duration { return s.interval }

// SetFPSListener registers fn to receive the tick count of every 1000ms
// window.
func (s *Scheduler) SetFPSListener(fn func(int)) {
	s.listener = fn
	s.fps = fpsCounter{}
}

// RemoveFPSListener drops the FPS listener.
func (s *Scheduler) RemoveFPSListener() { s.listener = nil }

func (s *Scheduler) requestTick() {
	if s.source == FixedInterval {
		s.host.AfterFunc(s.interval, s.tick)
		return
	}
	s.host.RequestFrame(s.tick)
}

func (s *Scheduler) tick() {
	if s.listener != nil {
		if n, ok := s.fps.sample(s.clock.Now()); ok {
			s.listener(n)
		}
	}

	if len(s.steps) == 0 {
		s.running = false
		return
	}
	s.requestTick()

	s.ticking = true
	for s.cursor = 0; s.cursor < len(s.steps); s.cursor++ {
		step := s.steps[s.cursor]
		// A step that detached itself during run may already be back in
		// the set; only the entry at the cursor is the one that ran.
		if !step.run() && s.cursor >= 0 && s.cursor < len(s.steps) && s.steps[s.cursor] == step {
			s.removeAt(s.cursor)
		}
	}
	s.ticking = false
}
