package model

import (
	"time"
)

// NodeRef identifies the rendered cell a thumbnail task belongs to. The
// acquisition pipeline checks Attached before every state transition so work
// for cells that scrolled away or were removed is dropped silently.
type NodeRef interface {
	// Attached reports whether the cell is still part of the rendering surface
	Attached() bool
}

// ThumbTask represents one unit of thumbnail acquisition work, including its
// retry state. A task is owned exclusively by the acquisition pipeline from
// enqueue until it reaches a terminal status.
type ThumbTask struct {
	ID    string
	Node  NodeRef
	URL   string
	Group string // cancellation group the task's requests are issued under

	Status    TaskStatus
	Attempt   int           // attempts consumed from the retry budget
	Delay     time.Duration // delay applied before the next dispatch
	LastError string        // last error message if any

	Data []byte // thumbnail bytes, set on success

	EnqueuedAt time.Time
	FinishedAt time.Time
}

// Elapsed returns the wall time from enqueue to the terminal transition, or
// the time spent so far for tasks still in flight
func (t *ThumbTask) Elapsed() time.Duration {
	if t.EnqueuedAt.IsZero() {
		return 0
	}
	if t.FinishedAt.IsZero() {
		return time.Since(t.EnqueuedAt)
	}
	return t.FinishedAt.Sub(t.EnqueuedAt)
}
