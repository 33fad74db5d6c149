package scheduler

import "time"

// fpsWindow is the sampling window of the FPS listener.
const fpsWindow = time.Second

// fpsCounter counts ticks over fixed windows.
type fpsCounter struct {
	start time.Time
	count int
}

// sample records one tick at now. When the window has elapsed it returns the
// count of the finished window and true. The first sample always closes an
// empty window.
func (f *fpsCounter) sample(now time.Time) (int, bool) {
	var (
		n  int
		ok bool
	)
	if f.start.IsZero() || now.Sub(f.start) >= fpsWindow {
		n, ok = f.count, true
		f.count = 0
		f.start = now
	}
	f.count++
	return n, ok
}
