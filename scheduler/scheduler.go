package scheduler

import (
	"time"

	"github.com/succade-go/succade/bar"
	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/process"
)

// WaitTolerance lets a TIMED block fire slightly early rather than the loop
// sleeping for an arbitrarily small remainder. Mirrors the teacher's own
// tolerance constant, generalized from a fixed ticker to a variable wait.
const WaitTolerance = 100 * time.Millisecond

// Due reports whether b is due to run now, per its mode. LIVE blocks are
// never due here - they are opened once at startup by spark.OpenAll and run
// continuously - so Due always returns false for them.
func Due(state *bar.State, b *bar.Block, now float64) bool {
	switch b.Mode {
	case config.ModeOnce:
		return b.LastOpen == 0
	case config.ModeTimed:
		if b.Alive {
			return false
		}
		if b.LastOpen == 0 {
			return true
		}
		return b.Reload-(now-b.LastOpen) < WaitTolerance.Seconds()
	case config.ModeSparked:
		if b.SparkIdx < 0 || b.SparkIdx >= len(state.Sparks) {
			return false
		}
		spark := state.Sparks[b.SparkIdx]
		if spark.Output != "" {
			return true
		}
		return !b.Consume && b.LastOpen == 0
	default:
		return false
	}
}

// Tick runs one scheduling pass: every non-LIVE Block in State.Blocks
// order is opened if Due, at most once each. now is the current Clock
// reading. A block that fails to spawn does not keep later blocks from being
// opened; the first spawn error is returned.
func Tick(state *bar.State, now float64) error {
	var firstErr error
	for _, b := range state.Blocks {
		if b.Mode == config.ModeLive {
			continue
		}
		if !Due(state, b, now) {
			continue
		}
		if err := open(state, b, now); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// open spawns b's process. SPARKED blocks with Consume pass their spark's
// latest output as a single argv element, then clear it; every other mode
// spawns with no extra argument.
func open(state *bar.State, b *bar.Block, now float64) error {
	argv := []string{b.Bin}

	if b.Mode == config.ModeSparked && b.Consume && b.SparkIdx >= 0 {
		spark := state.Sparks[b.SparkIdx]
		if spark.Output != "" {
			argv = append(argv, spark.Output)
		}
	}

	id, err := state.Supervisor.Spawn(argv, process.SpawnOptions{Stdout: true})
	if err != nil {
		// Spawn failure is non-fatal: log by the caller, try again next time
		// the block is due.
		return err
	}

	b.ChildID = id
	b.Alive = true
	b.LastOpen = now

	if b.Mode == config.ModeSparked && b.Consume && b.SparkIdx >= 0 {
		spark := state.Sparks[b.SparkIdx]
		spark.Output = ""
	}

	return nil
}

// HandleReadReady reacts to a stdout line arriving for a scheduler-owned
// (non-spark) child: if the line differs from the block's current Output,
// the composite is marked dirty.
func HandleReadReady(state *bar.State, ev process.Event, line string, now float64) {
	for _, b := range state.Blocks {
		if b.ChildID != ev.ChildID {
			continue
		}
		b.LastRead = now
		if line != b.Output {
			b.Output = line
			state.Dirty = true
		}
		return
	}
}

// HandleExited marks the owning Block no longer alive once its child has
// exited. The block becomes due again on its own schedule; nothing is
// restarted automatically.
func HandleExited(state *bar.State, ev process.Event) {
	for _, b := range state.Blocks {
		if b.ChildID == ev.ChildID {
			b.Alive = false
			return
		}
	}
}

// NextWait returns the minimum time-until-due across every TIMED block that
// is not currently running, with an overdue block counting as 0, or -1 if
// there is no such block (the caller should then wait indefinitely for the
// next I/O event).
func NextWait(state *bar.State, now float64) time.Duration {
	best := time.Duration(-1)
	for _, b := range state.Blocks {
		if b.Mode != config.ModeTimed || b.Alive {
			continue
		}
		var remaining float64
		if b.LastOpen == 0 {
			remaining = 0
		} else {
			remaining = b.Reload - (now - b.LastOpen)
		}
		if remaining < 0 {
			remaining = 0
		}
		d := time.Duration(remaining * float64(time.Second))
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
