package bar

import "github.com/succade-go/succade/process"

// Spark is a long-lived child whose stdout lines drive a Block. Its role -
// feeding a SPARKED block's trigger input, or being a LIVE block's own
// output stream - is resolved from BlockIdx's Block.Mode at runtime rather
// than split into two types (Design Note on LIVE/SPARKED unification).
type Spark struct {
	// BlockIdx indexes into State.Blocks, never a pointer - see the
	// Ownership note in bar.State's doc comment.
	BlockIdx int
	Command  string

	ChildID  process.ChildID
	Alive    bool
	Output   string
	LastOpen float64
	LastRead float64
}

// NewSpark builds a Spark bound to blockIdx with the given command line.
func NewSpark(blockIdx int, command string) *Spark {
	return &Spark{BlockIdx: blockIdx, Command: command}
}
