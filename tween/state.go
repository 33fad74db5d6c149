package tween

import "fmt"

// State is a tween's lifecycle state.
//
//	Ready ──Start──► Running ──Pause────► Paused ──Resume──► Running
//	  │                 ├─────Reverse──► Reversing ──tick──► Running
//	  │ delay > 0       ├─────Stop─────► Stopping ───tick──► Ready
//	  ▼                 └─────End──────► Ready
//	Delay ──elapsed──► Ready
//
// Reversing and Stopping are transient: the step callback resolves them on
// the next tick.
type State int

const (
	Ready State = iota
	Delay
	Running
	Paused
	Reversing
	Stopping
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Delay:
		return "delay"
	case Running:
		return "tween"
	case Paused:
		return "paused"
	case Reversing:
		return "reverse"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event drives a state transition.
type Event int

const (
	EventStart Event = iota
	EventDelay
	EventDelayElapsed
	EventPause
	EventResume
	EventReverse
	// EventReversed is the tick that completes a reversal.
	EventReversed
	EventStop
	// EventStopped is the tick that completes a stop.
	EventStopped
	EventEnd
	EventReset
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventDelay:
		return "delay"
	case EventDelayElapsed:
		return "delay-elapsed"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventReverse:
		return "reverse"
	case EventReversed:
		return "reversed"
	case EventStop:
		return "stop"
	case EventStopped:
		return "stopped"
	case EventEnd:
		return "end"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// transitions lists every accepted (state, event) pair. Anything missing is
// ignored by the control surface. EventEnd is accepted from the states a
// frame callback can request mid-tick: the final frame still ends the run.
var transitions = map[State]map[Event]State{
	Ready: {
		EventStart: Running,
		EventDelay: Delay,
		EventStop:  Ready,
		EventReset: Ready,
	},
	Delay: {
		EventDelayElapsed: Ready,
		EventStop:         Ready,
		EventReset:        Ready,
	},
	Running: {
		EventPause:   Paused,
		EventReverse: Reversing,
		EventStop:    Stopping,
		EventEnd:     Ready,
		EventReset:   Ready,
	},
	Paused: {
		EventResume: Running,
		EventStop:   Ready,
		EventEnd:    Ready,
		EventReset:  Ready,
	},
	Reversing: {
		EventReversed: Running,
		EventStop:     Ready,
		EventEnd:      Ready,
		EventReset:    Ready,
	},
	Stopping: {
		EventStopped: Ready,
		EventStop:    Ready,
		EventEnd:     Ready,
		EventReset:   Ready,
	},
}

// Transition returns the state reached from s on e, and whether s accepts e
// at all.
func Transition(s State, e Event) (State, bool) {
	next, ok := transitions[s][e]
	if !ok {
		return s, false
	}
	return next, true
}
