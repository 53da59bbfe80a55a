// Package scheduler decides which blocks are due to run and drives their
// execution per mode, generalizing the teacher's fixed-interval Runner loop
// into the bar's four-mode scheduling policy.
package scheduler

import "time"

// Clock measures monotonic seconds since it was created, the same unit
// bar.Block.LastOpen/LastRead are recorded in. Built on time.Since rather
// than wall-clock subtraction so a system clock adjustment never perturbs
// scheduling.
type Clock struct {
	start time.Time
}

// NewClock starts a new monotonic clock.
func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// Seconds returns elapsed seconds since the clock was created.
func (c *Clock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}
