package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/succade-go/succade/bar"
	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/process"
)

func TestParseSplitsAtFinalUnderscore(t *testing.T) {
	sid, suffix, ok := Parse("my_block_lmb")
	require.True(t, ok)
	assert.Equal(t, "my_block", sid)
	assert.Equal(t, "lmb", suffix)
}

func TestParseRejectsUnknownSuffix(t *testing.T) {
	_, _, ok := Parse("clock_xyz")
	assert.False(t, ok)
}

func TestParseRejectsShortLine(t *testing.T) {
	_, _, ok := Parse("a_b")
	assert.False(t, ok)
}

func TestParseRejectsMissingUnderscore(t *testing.T) {
	_, _, ok := Parse("clocklmb")
	assert.False(t, ok)
}

func TestDispatchRunsBoundCommand(t *testing.T) {
	bc := config.DefaultBlockConfig()
	bc.Sid = config.String("vol")
	bc.Bin = config.String("true")
	bc.ActionLeft = config.String("true")
	bc.Finalize()
	b := bar.NewBlock("vol", bc, config.AlignLeft)

	state := &bar.State{Blocks: []*bar.Block{b}}
	sup := process.NewSupervisor()
	defer sup.Shutdown()

	// Dispatch never returns an error - a bound command spawns fire-and-forget.
	// Exercised here only to confirm it doesn't panic on a known sid/suffix.
	Dispatch(state, sup, "vol_lmb")
}

func TestDispatchIgnoresUnboundAction(t *testing.T) {
	bc := config.DefaultBlockConfig()
	bc.Sid = config.String("vol")
	bc.Bin = config.String("true")
	bc.Finalize()
	b := bar.NewBlock("vol", bc, config.AlignLeft)

	state := &bar.State{Blocks: []*bar.Block{b}}
	sup := process.NewSupervisor()
	defer sup.Shutdown()

	Dispatch(state, sup, "vol_rmb")
}

func TestDispatchIgnoresUnknownBlock(t *testing.T) {
	state := &bar.State{Blocks: []*bar.Block{}}
	sup := process.NewSupervisor()
	defer sup.Shutdown()

	Dispatch(state, sup, "ghost_lmb")
}
