// Package bar holds the live runtime shape every other component mutates
// each iteration: the renderer's own state, the ordered list of Blocks, the
// Sparks feeding them, and the Supervisor that owns their child processes.
// It is the bridge between the static config package and the rest of the
// system, built once at startup by NewState and never reordered afterward.
package bar

import (
	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/process"
)

// State is the single in-memory object the event loop, scheduler, spark
// engine, formatter and action dispatcher all read and mutate.
type State struct {
	Lemon  *Lemon
	Blocks []*Block
	Sparks []*Spark

	Prefs      config.Prefs
	Supervisor *process.Supervisor

	// Dirty is set whenever any Block's Output changes, or on the first
	// iteration, and cleared once format.Compose's result has been written
	// to the renderer.
	Dirty bool
}

// BlockByName returns the Block whose Sid equals sid, used by the action
// dispatcher to route a renderer click back to the block that owns it.
func (s *State) BlockByName(sid string) (*Block, bool) {
	for _, b := range s.Blocks {
		if b.Sid == sid {
			return b, true
		}
	}
	return nil, false
}

// NewState merges a fully-finalized config.Config with the block order
// parsed from the Lemon's format string into runtime State. Blocks and
// Sparks are pre-sized here and never reallocated afterward, so a
// Spark.BlockIdx handed out now stays valid for the life of the process
// (Design Note on index-based back-references).
func NewState(cfg *config.Config, sup *process.Supervisor, prefs config.Prefs) (*State, error) {
	order, err := ParseFormat(config.StringVal(cfg.Lemon.Format))
	if err != nil {
		return nil, err
	}

	s := &State{
		Lemon:      NewLemon(cfg.Lemon),
		Supervisor: sup,
		Prefs:      prefs,
		Dirty:      true,
	}

	s.Blocks = make([]*Block, 0, len(order))
	seen := make(map[string]int, len(order))
	for _, tok := range order {
		if idx, ok := seen[tok.Sid]; ok {
			// repeated token: same block reused at (possibly new) alignment
			s.Blocks[idx].Align = tok.Align
			continue
		}
		bc, ok := cfg.Blocks[tok.Sid]
		if !ok {
			bc = config.DefaultBlockConfig()
			bc.Sid = config.String(tok.Sid)
			bc.Finalize()
		}
		b := NewBlock(tok.Sid, bc, tok.Align)
		seen[tok.Sid] = len(s.Blocks)
		s.Blocks = append(s.Blocks, b)
	}

	s.Sparks = make([]*Spark, 0, len(s.Blocks))
	for i, b := range s.Blocks {
		switch b.Mode {
		case config.ModeSparked:
			sp := NewSpark(i, config.StringVal(b.Trigger))
			b.SparkIdx = len(s.Sparks)
			s.Sparks = append(s.Sparks, sp)
		case config.ModeLive:
			sp := NewSpark(i, b.Bin)
			b.SparkIdx = len(s.Sparks)
			s.Sparks = append(s.Sparks, sp)
		default:
			b.SparkIdx = -1
		}
	}

	return s, nil
}
