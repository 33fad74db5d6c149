// Package loop provides the single-threaded host the frame scheduler and
// tweens run on. Every task, timer and frame callback of a Loop executes on
// the goroutine that called Run, so the code they drive needs no locking.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matt-g-everett/ledtween/clock"
)

// ErrRunning is returned by Run when the loop is already running.
var ErrRunning = errors.New("loop: already running")

// idleWait bounds how long Run sleeps with nothing scheduled.
const idleWait = time.Hour

// Loop is a real-time Host. Submit, AfterFunc and RequestFrame are safe to
// call from any goroutine.
type Loop struct {
	*schedule

	clock   clock.Clock
	tasksMu sync.Mutex
	tasks   []func()
	wake    chan struct{}
	running atomic.Bool
}

// New creates a Loop reading time from c, with frame callbacks aligned to
// refresh frames per second.
func New(c clock.Clock, refresh int) *Loop {
	return &Loop{
		schedule: newSchedule(c.Now(), refresh),
		clock:    c,
		wake:     make(chan struct{}, 1),
	}
}

var (
	defaultOnce sync.Once
	defaultLoop *Loop
)

// Default returns the process-wide loop, starting it on first use.
func Default() *Loop {
	defaultOnce.Do(func() {
		defaultLoop = New(clock.System(), DefaultRefreshRate)
		go defaultLoop.Run(context.Background())
	})
	return defaultLoop
}

// Clock returns the time source the loop schedules against.
func (l *Loop) Clock() clock.Clock { return l.clock }

// Submit queues fn to run on the loop goroutine.
func (l *Loop) Submit(fn func()) {
	l.tasksMu.Lock()
	l.tasks = append(l.tasks, fn)
	l.tasksMu.Unlock()
	l.signal()
}

// AfterFunc implements Host.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	e := l.addTimer(l.clock.Now(), d, fn)
	l.signal()
	return e
}

// RequestFrame implements Host.
func (l *Loop) RequestFrame(fn func()) {
	l.addFrame(l.clock.Now(), fn)
	l.signal()
}

// Running reports whether Run is active.
func (l *Loop) Running() bool { return l.running.Load() }

// Run processes tasks, timers and frames until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.running.Store(false)

	wait := time.NewTimer(idleWait)
	defer wait.Stop()

	for {
		l.runTasks()
		l.fire(l.clock.Now())

		if !wait.Stop() {
			select {
			case <-wait.C:
			default:
			}
		}
		wait.Reset(l.nextWait())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-wait.C:
		}
	}
}

func (l *Loop) runTasks() {
	l.tasksMu.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.tasksMu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}

func (l *Loop) nextWait() time.Duration {
	l.tasksMu.Lock()
	pending := len(l.tasks)
	l.tasksMu.Unlock()
	if pending > 0 {
		return 0
	}

	due, ok := l.next()
	if !ok {
		return idleWait
	}
	d := due.Sub(l.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
