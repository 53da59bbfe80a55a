// Package spark runs the long-lived processes that gate SPARKED blocks and
// stream LIVE blocks. Every Spark is opened once at startup and kept
// running; a dead spark is never restarted (Design Note 9(a), matching the
// original's run_spark/main loop exactly).
package spark

import (
	"github.com/succade-go/succade/bar"
	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/process"
)

// OpenAll spawns every Spark in state.Sparks that isn't already alive. Its
// command line is either the SPARKED block's configured trigger, or, for a
// LIVE block, the block's own Bin. A spark that fails to start does not stop
// the others from being opened; the first such error is returned.
func OpenAll(state *bar.State, now float64) error {
	var firstErr error
	for _, sp := range state.Sparks {
		if sp.Alive || sp.Command == "" {
			continue
		}
		if err := open(state, sp, now); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func open(state *bar.State, sp *bar.Spark, now float64) error {
	argv, err := process.SplitCommand(sp.Command)
	if err != nil || len(argv) == 0 {
		return err
	}

	id, err := state.Supervisor.Spawn(argv, process.SpawnOptions{Stdout: true})
	if err != nil {
		return err
	}

	sp.ChildID = id
	sp.Alive = true
	sp.LastOpen = now

	// Only a LIVE block's process is the spark itself; a SPARKED block keeps
	// its own ChildID/LastOpen, set by the scheduler when it runs.
	b := state.Blocks[sp.BlockIdx]
	if b.Mode == config.ModeLive {
		b.ChildID = id
		b.Alive = true
		b.LastOpen = now
	}

	return nil
}

// HandleReadReady drains every currently buffered line for sp's stream,
// keeping only the last (Drain), then applies it per the spark's role: if
// its block is LIVE, the line becomes the block's Output directly; if
// SPARKED, the line becomes pending input for scheduler.Tick's next pass.
func HandleReadReady(state *bar.State, sup *process.Supervisor, ev process.Event) {
	for _, sp := range state.Sparks {
		if sp.ChildID != ev.ChildID {
			continue
		}
		line, ok := Drain(sup, sp.ChildID, ev.Stream)
		if !ok {
			return
		}
		sp.Output = line

		b := state.Blocks[sp.BlockIdx]
		if b.Mode == config.ModeLive {
			if line != b.Output {
				b.Output = line
				state.Dirty = true
			}
		}
		return
	}
}

// Drain reads every complete line currently buffered for id/stream and
// returns only the last one (discarding the rest) - a burst of spark output
// between iterations should only ever produce one due-ness, not one per
// line.
func Drain(sup *process.Supervisor, id process.ChildID, stream process.Stream) (string, bool) {
	var last string
	var ok bool
	for {
		line, has, _ := sup.ReadLine(id, stream)
		if !has {
			break
		}
		last = line
		ok = true
	}
	return last, ok
}

// Clear empties sp's pending output. The scheduler does not call it: after
// passing the output to a spawned block's argv it resets Spark.Output itself.
func Clear(sp *bar.Spark) {
	sp.Output = ""
}

// HandleExited marks the Spark whose child just exited as no longer alive.
// It is deliberately not restarted - see the package doc comment.
func HandleExited(state *bar.State, ev process.Event) {
	for _, sp := range state.Sparks {
		if sp.ChildID == ev.ChildID {
			sp.Alive = false
			return
		}
	}
}
