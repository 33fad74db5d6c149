package loop

import (
	"container/heap"
	"sync"
	"time"
)

// DefaultRefreshRate is the display rate frame callbacks are aligned to.
const DefaultRefreshRate = 60

// Host is the timing facility the scheduler and tweens run on. All callbacks
// a Host invokes run on one logical thread.
type Host interface {
	// RequestFrame runs fn once on the next display frame.
	RequestFrame(fn func())
	// AfterFunc runs fn once after at least d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped it,
	// false if it already ran or was stopped.
	Stop() bool
}

type entry struct {
	when  time.Time
	seq   uint64
	fn    func()
	index int
	owner *schedule
}

func (e *entry) Stop() bool { return e.owner.cancel(e) }

// timerHeap orders entries by deadline, FIFO among equal deadlines.
type timerHeap []*entry

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// schedule holds the pending timers and frame callbacks shared by Loop and
// Manual. Callbacks always run with mu released.
type schedule struct {
	mu       sync.Mutex
	timers   timerHeap
	frames   []func()
	frameDue time.Time
	interval time.Duration
	origin   time.Time
	seq      uint64
}

func newSchedule(origin time.Time, refresh int) *schedule {
	if refresh <= 0 {
		refresh = DefaultRefreshRate
	}
	return &schedule{
		interval: time.Second / time.Duration(refresh),
		origin:   origin,
	}
}

// frameAfter returns the first frame boundary strictly after now.
func (s *schedule) frameAfter(now time.Time) time.Time {
	elapsed := now.Sub(s.origin)
	if elapsed < 0 {
		return s.origin
	}
	n := elapsed/s.interval + 1
	return s.origin.Add(n * s.interval)
}

func (s *schedule) addTimer(now time.Time, d time.Duration, fn func()) *entry {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	e := &entry{when: now.Add(d), seq: s.seq, fn: fn, owner: s}
	heap.Push(&s.timers, e)
	return e
}

func (s *schedule) addFrame(now time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		s.frameDue = s.frameAfter(now)
	}
	s.frames = append(s.frames, fn)
}

func (s *schedule) cancel(e *entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.index < 0 {
		return false
	}
	heap.Remove(&s.timers, e.index)
	return true
}

// next reports the earliest pending deadline.
func (s *schedule) next() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		due time.Time
		ok  bool
	)
	if len(s.timers) > 0 {
		due, ok = s.timers[0].when, true
	}
	if len(s.frames) > 0 && (!ok || s.frameDue.Before(due)) {
		due, ok = s.frameDue, true
	}
	return due, ok
}

// fire runs every timer and frame callback due at now. Timers added while
// firing wait for the next call even if already due.
func (s *schedule) fire(now time.Time) {
	s.mu.Lock()
	limit := s.seq
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if len(s.timers) == 0 {
			s.mu.Unlock()
			break
		}
		top := s.timers[0]
		if top.when.After(now) || top.seq > limit {
			s.mu.Unlock()
			break
		}
		heap.Pop(&s.timers)
		s.mu.Unlock()
		top.fn()
	}

	s.mu.Lock()
	if len(s.frames) == 0 || now.Before(s.frameDue) {
		s.mu.Unlock()
		return
	}
	frames := s.frames
	s.frames = nil
	s.mu.Unlock()

	for _, fn := range frames {
		fn()
	}
}
