package tween

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/matt-g-everett/ledtween/clock"
	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/loop"
	"github.com/matt-g-everett/ledtween/scheduler"
)

var epoch = time.Unix(5000, 0)

type rig struct {
	host  *loop.Manual
	sched *scheduler.Scheduler
}

func newRig() *rig {
	host := loop.NewManual(clock.NewManual(epoch), loop.DefaultRefreshRate)
	return &rig{host: host, sched: scheduler.New(host, host.Clock())}
}

func (r *rig) options() []Option {
	return []Option{
		WithHost(r.host),
		WithClock(r.host.Clock()),
		WithScheduler(r.sched),
		WithRegistry(easing.Default()),
	}
}

func (r *rig) newTween(t *testing.T, cfg Config) *Tween {
	t.Helper()
	tw, err := New(nil, &cfg, r.options()...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tw
}

func (r *rig) frames(n int) {
	r.host.Advance(time.Duration(n) * r.host.FrameInterval())
}

type recorder struct {
	values []float64
}

func (rec *recorder) frame(v float64) { rec.values = append(rec.values, v) }

func (rec *recorder) last() float64 {
	if len(rec.values) == 0 {
		return math.NaN()
	}
	return rec.values[len(rec.values)-1]
}

func TestRoundTrip(t *testing.T) {
	r := newRig()
	var rec recorder
	done := false
	tw := r.newTween(t, Config{
		Duration: Fast,
		Easing:   "linear",
		OnFrame:  rec.frame,
		OnEnd:    func() { done = true },
	})

	tw.Start()
	if tw.State() != Running {
		t.Fatalf("state after Start = %v, want tween", tw.State())
	}
	for i := 0; !done && i < 100; i++ {
		r.frames(1)
	}
	if !done {
		t.Fatal("tween never ended")
	}

	for i := 1; i < len(rec.values); i++ {
		if rec.values[i] <= rec.values[i-1] {
			t.Fatalf("frame %d value %v not above %v", i, rec.values[i], rec.values[i-1])
		}
	}
	if rec.last() != 1 {
		t.Errorf("final frame = %v, want exactly 1", rec.last())
	}
	if tw.State() != Ready {
		t.Errorf("state after end = %v, want ready", tw.State())
	}
	if r.sched.Len() != 0 {
		t.Errorf("scheduler still holds %d steps", r.sched.Len())
	}
}

func TestStartWhileRunningQueues(t *testing.T) {
	r := newRig()
	var ends, starts int
	tw := r.newTween(t, Config{
		Duration: Fast,
		OnStart:  func() { starts++ },
		OnEnd:    func() { ends++ },
	})

	tw.Start()
	tw.Start()
	if starts != 1 || !tw.IsQueued() {
		t.Fatalf("second Start did not queue: starts=%d queued=%v", starts, tw.IsQueued())
	}
	if r.sched.Len() != 1 {
		t.Fatalf("scheduler holds %d steps, want 1", r.sched.Len())
	}

	// 300ms at 60Hz ends on the 19th frame.
	r.frames(18)
	if ends != 0 || starts != 1 {
		t.Fatalf("before the first run ended: ends=%d starts=%d", ends, starts)
	}
	r.frames(1)
	if ends != 1 || starts != 2 {
		t.Fatalf("after the first run: ends=%d starts=%d, want 1 and 2", ends, starts)
	}
	if tw.State() != Running || tw.IsQueued() {
		t.Errorf("queued start did not take over: state=%v queued=%v", tw.State(), tw.IsQueued())
	}
	if r.sched.Len() != 1 {
		t.Errorf("scheduler holds %d steps, want 1", r.sched.Len())
	}

	r.frames(19)
	if ends != 2 || tw.State() != Ready {
		t.Errorf("second run: ends=%d state=%v", ends, tw.State())
	}
}

func TestDelayedStart(t *testing.T) {
	r := newRig()
	var rec recorder
	tw := r.newTween(t, Config{OnFrame: rec.frame})

	tw.StartDelayed(100 * time.Millisecond)
	if tw.State() != Delay {
		t.Fatalf("state = %v, want delay", tw.State())
	}
	r.host.Advance(99 * time.Millisecond)
	if len(rec.values) != 0 {
		t.Fatalf("%d frames before the delay elapsed", len(rec.values))
	}
	if tw.State() != Delay {
		t.Fatalf("state = %v before the delay elapsed", tw.State())
	}

	r.host.Advance(time.Millisecond)
	if tw.State() != Running {
		t.Fatalf("state = %v after the delay, want tween", tw.State())
	}
	if len(rec.values) != 1 || rec.values[0] != 0 {
		t.Errorf("frames after delay = %v, want [0]", rec.values)
	}
	r.frames(3)
	if len(rec.values) != 4 {
		t.Errorf("frames = %d, want 4", len(rec.values))
	}
}

func TestStartDelayedWhileRunningQueuesDelay(t *testing.T) {
	r := newRig()
	tw := r.newTween(t, Config{Duration: Fast})
	tw.Start()
	tw.StartDelayed(50 * time.Millisecond)

	r.frames(19)
	if tw.State() != Delay {
		t.Errorf("queued delayed start: state = %v, want delay", tw.State())
	}
}

func TestStopDuringDelayCancelsTimer(t *testing.T) {
	r := newRig()
	var rec recorder
	tw := r.newTween(t, Config{OnFrame: rec.frame})

	tw.StartDelayed(100 * time.Millisecond)
	tw.Stop(false)
	if tw.State() != Ready {
		t.Fatalf("state = %v, want ready", tw.State())
	}
	r.host.Advance(time.Second)
	if len(rec.values) != 0 || tw.State() != Ready {
		t.Errorf("cancelled delay still started: frames=%d state=%v", len(rec.values), tw.State())
	}
	if r.host.Pending() {
		t.Error("delay timer still pending")
	}
}

func TestStopRunning(t *testing.T) {
	r := newRig()
	var rec recorder
	stops := 0
	tw := r.newTween(t, Config{OnFrame: rec.frame, OnStop: func() { stops++ }})

	tw.Start()
	r.frames(3)
	tw.Stop(false)
	if tw.State() != Stopping {
		t.Fatalf("state = %v, want stopping", tw.State())
	}
	frames := len(rec.values)

	r.frames(1)
	if tw.State() != Ready || stops != 1 {
		t.Errorf("after tick: state=%v stops=%d", tw.State(), stops)
	}
	if len(rec.values) != frames {
		t.Error("stopping tick rendered a frame")
	}
	if r.sched.Len() != 0 {
		t.Error("step still registered after stop")
	}
}

func TestStopDrainsQueueOrClears(t *testing.T) {
	r := newRig()
	tw := r.newTween(t, Config{})
	tw.Start()
	tw.Start()
	tw.Stop(false)
	r.frames(1)
	if tw.State() != Running {
		t.Errorf("queued start after stop: state = %v, want tween", tw.State())
	}

	tw.Start()
	tw.Stop(true)
	if tw.IsQueued() {
		t.Error("Stop(true) kept queued commands")
	}
	r.frames(1)
	if tw.State() != Ready {
		t.Errorf("state = %v, want ready", tw.State())
	}
}

func TestPauseResumePreservesProgress(t *testing.T) {
	r := newRig()
	var rec recorder
	var pauses, resumes int
	tw := r.newTween(t, Config{
		OnFrame:  rec.frame,
		OnPause:  func() { pauses++ },
		OnResume: func() { resumes++ },
	})

	tw.Start()
	r.frames(10)
	tw.Pause()
	if tw.State() != Paused {
		t.Fatalf("state = %v, want paused", tw.State())
	}
	before := rec.last()
	count := len(rec.values)

	r.frames(1)
	if pauses != 1 || len(rec.values) != count {
		t.Fatalf("pause tick: pauses=%d frames=%d want %d", pauses, len(rec.values), count)
	}
	if r.sched.Len() != 0 {
		t.Fatal("paused step still registered")
	}

	r.host.Advance(time.Second + 3*time.Millisecond)
	if len(rec.values) != count {
		t.Fatal("frames rendered while paused")
	}

	tw.Resume()
	if tw.State() != Running || resumes != 1 {
		t.Fatalf("after Resume: state=%v resumes=%d", tw.State(), resumes)
	}
	if r.sched.Len() != 1 {
		t.Fatalf("resumed step not registered")
	}
	r.frames(1)

	after := rec.values[count]
	tick := float64(r.host.FrameInterval()) / float64(tw.Duration())
	if after < before || after-before > tick+1e-9 {
		t.Errorf("progress jumped across pause: %v -> %v", before, after)
	}
}

func TestPauseResumeBeforeTickKeepsOneStep(t *testing.T) {
	r := newRig()
	tw := r.newTween(t, Config{})
	tw.Start()
	tw.Pause()
	tw.Resume()
	if r.sched.Len() != 1 {
		t.Errorf("scheduler holds %d steps, want 1", r.sched.Len())
	}
}

func TestReverseTwice(t *testing.T) {
	r := newRig()
	var rec recorder
	reverses := 0
	tw := r.newTween(t, Config{OnFrame: rec.frame, OnReverse: func() { reverses++ }})
	straight := tw.Easing()

	tw.Start()
	r.frames(6)
	forward := rec.last()

	tw.Reverse()
	if tw.State() != Reversing || !tw.Reversed() {
		t.Fatalf("after Reverse: state=%v reversed=%v", tw.State(), tw.Reversed())
	}
	r.frames(1)
	if tw.State() != Running || reverses != 1 {
		t.Fatalf("reverse tick: state=%v reverses=%d", tw.State(), reverses)
	}
	if tw.curve != straight.Reversed() {
		t.Error("easing not swapped for its reversed form")
	}
	if rec.last() >= forward {
		t.Errorf("value did not turn back: %v after %v", rec.last(), forward)
	}

	r.frames(2)
	backward := rec.last()
	tw.Reverse()
	r.frames(1)
	if tw.Reversed() || reverses != 2 {
		t.Errorf("second reverse: reversed=%v reverses=%d", tw.Reversed(), reverses)
	}
	if tw.curve != straight {
		t.Error("easing not restored to the original curve")
	}
	if rec.last() <= backward {
		t.Errorf("value did not turn forward again: %v after %v", rec.last(), backward)
	}
}

func TestReversedRunStillEndsAtFinalFrame(t *testing.T) {
	r := newRig()
	var rec recorder
	done := false
	tw := r.newTween(t, Config{OnFrame: rec.frame, OnEnd: func() { done = true }})
	tw.Start()
	r.frames(6)
	tw.Reverse()
	r.host.Advance(time.Second)

	if !done {
		t.Fatal("reversed tween never ended")
	}
	// The reversed linear curve lands back on 0.
	if rec.last() != 0 {
		t.Errorf("final reversed frame = %v, want 0", rec.last())
	}
}

func TestFinish(t *testing.T) {
	r := newRig()
	var rec recorder
	done := false
	tw := r.newTween(t, Config{Duration: Slow, OnFrame: rec.frame, OnEnd: func() { done = true }})

	tw.Start()
	r.frames(2)
	tw.Finish()
	r.frames(1)
	if !done || rec.last() != 1 || tw.State() != Ready {
		t.Errorf("after Finish: done=%v last=%v state=%v", done, rec.last(), tw.State())
	}
}

func TestOnBeforeEndHoldsFinalFrame(t *testing.T) {
	r := newRig()
	var rec recorder
	asked, ends := 0, 0
	tw := r.newTween(t, Config{
		Duration: Fast,
		OnFrame:  rec.frame,
		OnBeforeEnd: func() bool {
			asked++
			return asked > 2
		},
		OnEnd: func() { ends++ },
	})

	tw.Start()
	r.frames(19)
	if asked != 1 || ends != 0 || tw.State() != Running {
		t.Fatalf("first veto: asked=%d ends=%d state=%v", asked, ends, tw.State())
	}
	r.frames(2)
	if asked != 3 || ends != 1 || tw.State() != Ready {
		t.Errorf("after veto lifted: asked=%d ends=%d state=%v", asked, ends, tw.State())
	}

	n := len(rec.values)
	for _, v := range rec.values[n-3:] {
		if v != 1 {
			t.Errorf("held frames = %v, want final value 1", rec.values[n-3:])
			break
		}
	}
}

func TestRestart(t *testing.T) {
	r := newRig()
	ends := 0
	tw := r.newTween(t, Config{Duration: Fast, OnEnd: func() { ends++ }})

	tw.Restart()
	if tw.State() != Running {
		t.Fatalf("Restart from ready: state = %v", tw.State())
	}
	r.frames(10)
	tw.Restart()
	r.frames(10)
	if ends != 0 {
		t.Fatal("run ended at its original deadline after Restart")
	}
	r.frames(10)
	if ends != 1 {
		t.Errorf("ends = %d after the extended run, want 1", ends)
	}

	tw.StartDelayed(time.Second)
	tw.Restart()
	if tw.State() != Running {
		t.Errorf("Restart from delay: state = %v, want tween", tw.State())
	}
}

func TestIgnoredControls(t *testing.T) {
	r := newRig()
	var hooks int
	count := func() { hooks++ }
	tw := r.newTween(t, Config{OnPause: count, OnResume: count, OnReverse: count})

	tw.Pause()
	tw.Resume()
	tw.Reverse()
	tw.Finish()
	if tw.State() != Ready || hooks != 0 || tw.Reversed() {
		t.Errorf("controls on a ready tween changed it: state=%v hooks=%d", tw.State(), hooks)
	}
}

func TestResetKeepsQueue(t *testing.T) {
	r := newRig()
	tw := r.newTween(t, Config{Easing: "easeInQuad"})
	tw.Start()
	tw.Start()

	if err := tw.Reset(nil); err != nil {
		t.Fatal(err)
	}
	if tw.State() != Ready || !tw.IsQueued() {
		t.Errorf("Reset: state=%v queued=%v", tw.State(), tw.IsQueued())
	}
	if r.sched.Len() != 0 {
		t.Error("Reset left the step registered")
	}

	err := tw.Reset(&Config{Easing: "nope"})
	if !errors.Is(err, easing.ErrUnknownEasing) {
		t.Fatalf("Reset with unknown easing = %v", err)
	}
	if tw.Easing().Name() != "easeInQuad" {
		t.Errorf("failed Reset replaced easing with %q", tw.Easing().Name())
	}

	if err := tw.Reset(&Config{Duration: Slow}); err != nil {
		t.Fatal(err)
	}
	if tw.Easing().Name() != "linear" || tw.Duration() != 900*time.Millisecond {
		t.Errorf("Reset merged to easing %q duration %v", tw.Easing().Name(), tw.Duration())
	}
}

func TestConstructionErrors(t *testing.T) {
	r := newRig()
	if _, err := New(nil, nil, r.options()...); !errors.Is(err, ErrInvalidConstruction) {
		t.Errorf("New(nil, nil) = %v, want ErrInvalidConstruction", err)
	}

	tw, err := New(func(float64) {}, &Config{Easing: "wobble"}, r.options()...)
	if !errors.Is(err, easing.ErrUnknownEasing) || tw != nil {
		t.Errorf("New with unknown easing = (%v, %v)", tw, err)
	}
	if r.sched.Len() != 0 || r.host.Pending() {
		t.Error("failed construction touched the scheduler")
	}
}

func TestFrameArgumentOverridesConfig(t *testing.T) {
	r := newRig()
	var fromArg, fromCfg int
	tw, err := New(func(float64) { fromArg++ }, &Config{OnFrame: func(float64) { fromCfg++ }}, r.options()...)
	if err != nil {
		t.Fatal(err)
	}
	tw.Start()
	if fromArg != 1 || fromCfg != 0 {
		t.Errorf("frame calls arg=%d cfg=%d", fromArg, fromCfg)
	}

	tw2, err := New(func(float64) {}, nil, r.options()...)
	if err != nil {
		t.Fatal(err)
	}
	if tw2.Duration() != 500*time.Millisecond || tw2.Easing().Name() != "linear" {
		t.Errorf("defaults not applied: %v %q", tw2.Duration(), tw2.Easing().Name())
	}
}

func TestEasingFunc(t *testing.T) {
	r := newRig()
	var rec recorder
	tw := r.newTween(t, Config{
		EasingFunc: func(p float64) float64 { return p * 10 },
		OnFrame:    rec.frame,
		Duration:   Of(0),
	})
	tw.Start()
	if rec.last() != 10 {
		t.Errorf("custom easing frame = %v, want 10", rec.last())
	}
	if tw.Easing().Reversed() == nil {
		t.Error("custom easing has no reversed form")
	}
}

func TestZeroDurationEndsOnFirstTick(t *testing.T) {
	r := newRig()
	ends := 0
	tw := r.newTween(t, Config{Duration: Of(0), OnEnd: func() { ends++ }})
	tw.Start()
	if ends != 1 || tw.State() != Ready {
		t.Errorf("zero duration: ends=%d state=%v", ends, tw.State())
	}
}

func TestAsyncDequeue(t *testing.T) {
	r := newRig()
	tw := r.newTween(t, Config{})
	tw.Enqueue(Command{Kind: CmdStart})

	tw.Dequeue(true)
	if tw.State() != Ready || !tw.IsQueued() {
		t.Fatalf("async dequeue ran synchronously: state=%v", tw.State())
	}
	r.host.Step()
	if tw.State() != Running || tw.IsQueued() {
		t.Errorf("async dequeue did not run: state=%v queued=%v", tw.State(), tw.IsQueued())
	}
}

func TestEndingTweenDoesNotSkipNeighbour(t *testing.T) {
	r := newRig()
	var a, b recorder
	short := r.newTween(t, Config{Duration: Fast, OnFrame: a.frame})
	long := r.newTween(t, Config{Duration: Slow, OnFrame: b.frame})

	short.Start()
	long.Start()
	r.frames(19)

	if short.State() != Ready {
		t.Fatalf("short tween state = %v, want ready", short.State())
	}
	if len(b.values) != 19 {
		t.Errorf("long tween rendered %d frames over 19 ticks", len(b.values))
	}
}

func TestProgress(t *testing.T) {
	r := newRig()
	tw := r.newTween(t, Config{})
	if tw.Progress() != 0 {
		t.Errorf("idle progress = %v", tw.Progress())
	}
	tw.Start()
	r.host.Advance(250 * time.Millisecond)
	// Last tick at frame 15 of a 500ms run.
	want := float64(15*r.host.FrameInterval()) / float64(500*time.Millisecond)
	if math.Abs(tw.Progress()-want) > 1e-9 {
		t.Errorf("Progress() = %v, want %v", tw.Progress(), want)
	}
}

func TestHooksReenterControls(t *testing.T) {
	tests := []struct {
		name    string
		config  func(tw **Tween, ends *int) Config
		trigger func(r *rig, tw *Tween)
	}{
		{
			name: "resume from OnPause",
			config: func(tw **Tween, ends *int) Config {
				return Config{
					OnPause: func() { (*tw).Resume() },
					OnEnd:   func() { *ends++ },
				}
			},
			trigger: func(r *rig, tw *Tween) {
				tw.Start()
				r.frames(3)
				tw.Pause()
				r.frames(1)
			},
		},
		{
			name: "start from OnStop",
			config: func(tw **Tween, ends *int) Config {
				return Config{
					OnStop: func() { (*tw).Start() },
					OnEnd:  func() { *ends++ },
				}
			},
			trigger: func(r *rig, tw *Tween) {
				tw.Start()
				r.frames(3)
				tw.Stop(false)
				r.frames(1)
			},
		},
		{
			name: "start from OnEnd",
			config: func(tw **Tween, ends *int) Config {
				return Config{
					OnEnd: func() {
						*ends++
						if *ends == 1 {
							(*tw).Start()
						}
					},
				}
			},
			trigger: func(r *rig, tw *Tween) {
				tw.Start()
				r.frames(19)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			var tw *Tween
			ends := 0
			cfg := tt.config(&tw, &ends)
			cfg.Duration = Fast
			tw = r.newTween(t, cfg)

			tt.trigger(r, tw)
			if tw.State() != Running {
				t.Fatalf("state = %v after the hook, want tween", tw.State())
			}
			if r.sched.Len() != 1 {
				t.Fatalf("scheduler holds %d steps after the hook, want 1", r.sched.Len())
			}

			before := ends
			r.frames(40)
			if ends != before+1 || tw.State() != Ready {
				t.Errorf("run after the hook: ends=%d (was %d) state=%v", ends, before, tw.State())
			}
			if r.sched.Len() != 0 {
				t.Errorf("scheduler holds %d steps after the run", r.sched.Len())
			}
		})
	}
}

func TestDequeueIgnoresUnknownKind(t *testing.T) {
	r := newRig()
	tw := r.newTween(t, Config{})
	tw.Enqueue(Command{Kind: CommandKind(7)})
	tw.Dequeue(false)
	if tw.State() != Ready || tw.IsQueued() {
		t.Errorf("unknown command: state=%v queued=%v", tw.State(), tw.IsQueued())
	}
}
