package bar

import (
	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/process"
)

// Block is one cell on the bar: the runtime counterpart of config.BlockConfig,
// with the plain-value fields the scheduler/formatter touch every iteration
// hoisted out of the pointer-field config struct for direct access.
type Block struct {
	Cfg *config.BlockConfig

	Sid     string
	Bin     string
	Mode    config.Mode
	Reload  float64
	Consume bool
	Trigger *string

	Align config.Align
	Style *config.StyleConfig

	Label  string
	Prefix string
	Suffix string

	ActionLeft   string
	ActionMiddle string
	ActionRight  string
	ActionUp     string
	ActionDown   string

	// SparkIdx indexes into State.Sparks, or -1 if this Block has none.
	// Always an index, never a pointer - see the Ownership note in
	// bar.State's doc comment.
	SparkIdx int

	// Runtime fields mutated every iteration by scheduler/manager.
	ChildID  process.ChildID
	Alive    bool
	LastOpen float64
	LastRead float64
	Output   string
}

// NewBlock builds a runtime Block from its finalized config.BlockConfig.
func NewBlock(sid string, cfg *config.BlockConfig, align config.Align) *Block {
	bin := config.StringVal(cfg.Bin)
	if bin == "" {
		bin = sid
	}
	return &Block{
		Cfg:          cfg,
		Sid:          sid,
		Bin:          bin,
		Mode:         config.ModeVal(cfg.Mode),
		Reload:       config.Float64Val(cfg.Reload),
		Consume:      config.BoolVal(cfg.Consume),
		Trigger:      cfg.Trigger,
		Align:        align,
		Style:        cfg.Style,
		Label:        config.StringVal(cfg.Label),
		Prefix:       config.StringVal(cfg.Prefix),
		Suffix:       config.StringVal(cfg.Suffix),
		ActionLeft:   config.StringVal(cfg.ActionLeft),
		ActionMiddle: config.StringVal(cfg.ActionMiddle),
		ActionRight:  config.StringVal(cfg.ActionRight),
		ActionUp:     config.StringVal(cfg.ActionUp),
		ActionDown:   config.StringVal(cfg.ActionDown),
		SparkIdx:     -1,
	}
}
