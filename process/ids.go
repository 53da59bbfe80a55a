// Package process supervises the heterogeneous population of child processes
// the bar drives: spawning them, reading and writing their stdio line by
// line, reaping them, and surfacing every lifecycle transition as an Event
// on one shared channel per Supervisor. Nothing outside this package touches
// an *exec.Cmd, a pid, or a raw file descriptor directly.
package process

import "github.com/google/uuid"

// ChildID is an opaque handle identifying a spawned child across its
// lifetime. Callers hold it, never the underlying *exec.Cmd or pid, the way
// the wider corpus uses google/uuid to correlate log lines to a resource
// without leaking its internals.
type ChildID uuid.UUID

func newChildID() ChildID {
	return ChildID(uuid.New())
}

func (id ChildID) String() string {
	return uuid.UUID(id).String()
}
