// Package action parses action identifiers the renderer writes to its
// stdout and dispatches them to the user commands a Block configured for
// that button. A direct generalization of the teacher's process_action,
// with Design Note 9(c)'s ambiguity resolved per spec.md: split at the
// final underscore, then validate the suffix against the closed set.
package action

import (
	"log"
	"strings"

	"github.com/succade-go/succade/bar"
	"github.com/succade-go/succade/process"
)

// validSuffixes is the closed set of button identifiers a renderer action
// line may carry.
var validSuffixes = map[string]bool{
	"lmb": true,
	"mmb": true,
	"rmb": true,
	"sup": true,
	"sdn": true,
}

// Parse splits a renderer action line of the form "<sid>_<suffix>" at its
// final underscore and validates suffix against the closed set. A line
// shorter than 5 bytes, with no underscore, or with an unrecognized suffix
// is rejected (ok == false).
func Parse(line string) (sid, suffix string, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 5 {
		return "", "", false
	}

	i := strings.LastIndexByte(line, '_')
	if i < 0 || i == 0 || i == len(line)-1 {
		return "", "", false
	}

	sid, suffix = line[:i], line[i+1:]
	if !validSuffixes[suffix] {
		return "", "", false
	}
	return sid, suffix, true
}

// command returns the Block's configured command for suffix, or "" if none
// is bound.
func command(b *bar.Block, suffix string) string {
	switch suffix {
	case "lmb":
		return b.ActionLeft
	case "mmb":
		return b.ActionMiddle
	case "rmb":
		return b.ActionRight
	case "sup":
		return b.ActionUp
	case "sdn":
		return b.ActionDown
	default:
		return ""
	}
}

// Dispatch parses line and, on a match against a known Block and a bound
// action command, spawns that command fire-and-forget via the supervisor.
// Parse failures and unknown sids are logged and dropped, never fatal.
func Dispatch(state *bar.State, sup *process.Supervisor, line string) {
	sid, suffix, ok := Parse(line)
	if !ok {
		log.Printf("[ERR] action: unrecognized line %q", line)
		return
	}

	b, ok := state.BlockByName(sid)
	if !ok {
		log.Printf("[ERR] action: unknown block %q (line %q)", sid, line)
		return
	}

	cmd := command(b, suffix)
	if cmd == "" {
		return
	}

	argv, err := process.SplitCommand(cmd)
	if err != nil || len(argv) == 0 {
		log.Printf("[ERR] action: bad command for %s: %v", sid, err)
		return
	}

	if err := sup.SpawnDetached(argv, process.SpawnOptions{}); err != nil {
		log.Printf("[ERR] action: spawn failed for %s: %v", sid, err)
	}
}
