package tween

import "time"

// CommandKind identifies a deferred control action.
type CommandKind int

// CmdStart starts a run after Command.Delay.
const CmdStart CommandKind = 0

func (k CommandKind) String() string {
	switch k {
	case CmdStart:
		return "start"
	default:
		return "unknown"
	}
}

// Command is a control action waiting for the tween to become ready.
type Command struct {
	Kind  CommandKind
	Delay time.Duration
}

// Queue is a FIFO of commands.
type Queue struct {
	items []Command
}

// Enqueue appends c.
func (q *Queue) Enqueue(c Command) {
	q.items = append(q.items, c)
}

// Dequeue removes and returns the oldest command.
func (q *Queue) Dequeue() (Command, bool) {
	if len(q.items) == 0 {
		return Command{}, false
	}
	c := q.items[0]
	q.items[0] = Command{}
	q.items = q.items[1:]
	return c, true
}

// Clear drops every pending command.
func (q *Queue) Clear() { q.items = nil }

// IsQueued reports whether any command is pending.
func (q *Queue) IsQueued() bool { return len(q.items) > 0 }

// Len returns the number of pending commands.
func (q *Queue) Len() int { return len(q.items) }
