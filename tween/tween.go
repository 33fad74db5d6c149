// Package tween animates a single numeric value from 0 to 1 over time.
//
// A Tween registers a step with a shared scheduler while it runs. Each tick
// the step measures progress against the clock, eases it and hands the value
// to OnFrame. Control calls that arrive while a run is in flight either act on
// it (Pause, Reverse, Stop, Finish) or wait in the tween's queue (Start).
//
// A Tween is not safe for concurrent use. Call it from the goroutine running
// its host, for example through loop.Loop.Submit.
package tween

import (
	"errors"
	"time"

	"github.com/matt-g-everett/ledtween/clock"
	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/loop"
	"github.com/matt-g-everett/ledtween/scheduler"
)

// ErrInvalidConstruction is returned by New when neither a frame callback nor
// a configuration is given.
var ErrInvalidConstruction = errors.New("tween: frame callback and configuration are both missing")

// Option configures the services a Tween runs on.
type Option func(*Tween)

// WithScheduler sets the scheduler the tween registers its step with.
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(t *Tween) { t.sched = s }
}

// WithHost sets the host used for delayed starts and async dequeues.
func WithHost(h loop.Host) Option {
	return func(t *Tween) { t.host = h }
}

// WithClock sets the clock progress is measured against.
func WithClock(c clock.Clock) Option {
	return func(t *Tween) { t.clock = c }
}

// WithRegistry sets the registry easing names are resolved in.
func WithRegistry(r *easing.Registry) Option {
	return func(t *Tween) { t.registry = r }
}

// Tween is one animated value.
type Tween struct {
	sched    *scheduler.Scheduler
	host     loop.Host
	clock    clock.Clock
	registry *easing.Registry

	cfg      Config
	easing   *easing.Curve
	duration time.Duration

	state       State
	startTime   time.Time
	currentTime time.Time
	endTime     time.Time
	reversed    bool
	curve       *easing.Curve
	step        *scheduler.Step
	delayTimer  loop.Timer

	// queue survives Reset.
	queue Queue
}

// New creates a Tween. frame, when non-nil, replaces cfg.OnFrame; cfg may be
// nil when frame is given. Services not set by opts default to the
// process-wide loop, scheduler and easing registry.
func New(frame func(float64), cfg *Config, opts ...Option) (*Tween, error) {
	if frame == nil && cfg == nil {
		return nil, ErrInvalidConstruction
	}

	var c Config
	if cfg != nil {
		c = *cfg
	}
	if frame != nil {
		c.OnFrame = frame
	}

	t := new(Tween)
	for _, opt := range opts {
		opt(t)
	}
	if t.registry == nil {
		t.registry = easing.Default()
	}
	if err := t.Reset(&c); err != nil {
		return nil, err
	}
	if t.host == nil {
		t.host = loop.Default()
	}
	if t.clock == nil {
		t.clock = loop.Default().Clock()
	}
	if t.sched == nil {
		t.sched = scheduler.Default()
	}
	return t, nil
}

// State returns the lifecycle state.
func (t *Tween) State() State { return t.state }

// Reversed reports whether the tween is playing its easing backwards.
func (t *Tween) Reversed() bool { return t.reversed }

// Duration returns the resolved run length.
func (t *Tween) Duration() time.Duration { return t.duration }

// Easing returns the configured curve.
func (t *Tween) Easing() *easing.Curve { return t.easing }

// Progress returns the linear progress of the last tick, in [0, 1].
func (t *Tween) Progress() float64 {
	if t.startTime.IsZero() {
		return 0
	}
	p := t.progressAt(t.currentTime)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Start begins a run now, or queues it if the tween is not ready.
func (t *Tween) Start() { t.StartDelayed(0) }

// StartDelayed begins a run after delay. If the tween is not ready the start
// is queued and runs once the current run is over.
func (t *Tween) StartDelayed(delay time.Duration) {
	if t.state != Ready {
		t.queue.Enqueue(Command{Kind: CmdStart, Delay: delay})
		return
	}

	if delay > 0 {
		t.fire(EventDelay)
		t.delayTimer = t.host.AfterFunc(delay, func() {
			t.delayTimer = nil
			t.fire(EventDelayElapsed)
			t.Start()
		})
		return
	}

	t.resetRun()

	now := t.clock.Now()
	t.startTime, t.currentTime = now, now
	t.endTime = now.Add(t.duration)
	t.curve = t.easing
	t.fire(EventStart)

	var step *scheduler.Step
	step = scheduler.NewStep(func() bool {
		if t.step != step {
			return false
		}
		return t.advance(step)
	})
	t.step = step

	call(t.cfg.OnStart)
	if t.step == step {
		t.sched.Add(step)
	}
}

// advance is the per-tick body of a run. It returns false once the step
// has detached.
func (t *Tween) advance(step *scheduler.Step) bool {
	switch t.state {
	case Paused:
		// Keep t.step: Resume registers the same step again.
		t.sched.Remove(step)
		call(t.cfg.OnPause)
		return false
	case Stopping:
		t.fire(EventStopped)
		t.detach()
		call(t.cfg.OnStop)
		t.Dequeue(false)
		return false
	case Reversing:
		t.fire(EventReversed)
		t.curve = t.curve.Flip()
		call(t.cfg.OnReverse)
	}

	now := t.clock.Now()
	t.currentTime = now
	p := t.progressAt(now)

	if p < 1 {
		t.cfg.OnFrame(t.curve.Ease(p))
		return t.step == step
	}

	t.cfg.OnFrame(t.curve.Ease(1))
	if t.step != step {
		return false
	}
	if t.cfg.OnBeforeEnd != nil && !t.cfg.OnBeforeEnd() {
		return t.step == step
	}
	if t.step != step {
		return false
	}

	t.fire(EventEnd)
	t.detach()
	call(t.cfg.OnEnd)
	t.Dequeue(false)
	return false
}

// Stop ends the run. A running tween stops on its next tick and calls
// OnStop; in any other state the tween is reset at once, cancelling a
// pending delayed start. clearQueue drops queued commands.
func (t *Tween) Stop(clearQueue bool) {
	if t.state == Running {
		t.fire(EventStop)
	} else {
		t.resetRun()
	}
	if clearQueue {
		t.queue.Clear()
	}
}

// Finish jumps a running tween to its end. The next tick renders the final
// frame and ends normally.
func (t *Tween) Finish() {
	if t.state == Running {
		t.endTime = t.clock.Now()
	}
}

// Pause holds a running tween. The step detaches on the next tick.
func (t *Tween) Pause() {
	t.fire(EventPause)
}

// Resume continues a paused tween from the progress it had.
func (t *Tween) Resume() {
	if t.state != Paused {
		return
	}
	elapsed := t.currentTime.Sub(t.startTime)
	now := t.clock.Now()
	t.currentTime = now
	t.startTime = now.Add(-elapsed)
	t.endTime = t.startTime.Add(t.duration)

	t.fire(EventResume)
	call(t.cfg.OnResume)

	if t.step != nil && t.state == Running && !t.sched.Contains(t.step) {
		t.sched.Add(t.step)
	}
}

// Reverse plays a running tween back towards its start, mirroring the
// progress made so far. The easing flips on the next tick.
func (t *Tween) Reverse() {
	if t.state != Running {
		return
	}
	elapsed := t.currentTime.Sub(t.startTime)
	now := t.clock.Now()
	t.currentTime = now
	t.startTime = now.Add(-(t.duration - elapsed))
	t.endTime = t.startTime.Add(t.duration)
	t.reversed = !t.reversed
	t.fire(EventReverse)
}

// Restart runs the tween again from the beginning. A running tween is
// extended in place.
func (t *Tween) Restart() {
	switch t.state {
	case Running:
		t.endTime = t.clock.Now().Add(t.duration)
	case Ready:
		t.Start()
	default:
		t.Stop(false)
		t.Start()
	}
}

// Reset returns the tween to Ready. With a non-nil cfg the configuration is
// rebuilt from Defaults and cfg first; an unknown easing name fails without
// touching the tween. Queued commands are kept.
func (t *Tween) Reset(cfg *Config) error {
	if cfg != nil {
		merged := Defaults.merge(*cfg)
		curve, err := resolveEasing(t.registry, merged)
		if err != nil {
			return err
		}
		t.cfg = merged
		t.easing = curve
		t.duration = merged.Duration.Resolve()
	}
	t.resetRun()
	return nil
}

// Enqueue defers c until the tween next becomes ready.
func (t *Tween) Enqueue(c Command) { t.queue.Enqueue(c) }

// Dequeue runs the oldest queued command. With async set it runs on a later
// pass of the host instead of on the caller's stack.
func (t *Tween) Dequeue(async bool) {
	if async {
		t.host.AfterFunc(0, func() { t.Dequeue(false) })
		return
	}
	c, ok := t.queue.Dequeue()
	if !ok {
		return
	}
	if c.Kind == CmdStart {
		t.StartDelayed(c.Delay)
	}
}

// ClearQueue drops every queued command.
func (t *Tween) ClearQueue() { t.queue.Clear() }

// IsQueued reports whether commands are waiting.
func (t *Tween) IsQueued() bool { return t.queue.IsQueued() }

// QueueLen returns the number of waiting commands.
func (t *Tween) QueueLen() int { return t.queue.Len() }

// resetRun clears everything tied to the current run.
func (t *Tween) resetRun() {
	t.detach()
	if t.delayTimer != nil {
		t.delayTimer.Stop()
		t.delayTimer = nil
	}
	t.startTime = time.Time{}
	t.currentTime = time.Time{}
	t.endTime = time.Time{}
	t.curve = nil
	t.reversed = false
	t.fire(EventReset)
}

// detach removes the step from the scheduler and forgets it.
func (t *Tween) detach() {
	if t.step == nil {
		return
	}
	if t.sched != nil {
		t.sched.Remove(t.step)
	}
	t.step = nil
}

func (t *Tween) fire(e Event) bool {
	next, ok := Transition(t.state, e)
	if ok {
		t.state = next
	}
	return ok
}

func (t *Tween) progressAt(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	return 1 - float64(t.endTime.Sub(now))/float64(t.duration)
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
