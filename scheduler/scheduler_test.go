package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/succade-go/succade/bar"
	"github.com/succade-go/succade/config"
	"github.com/succade-go/succade/process"
)

func newTestState(t *testing.T, blocks ...*bar.Block) *bar.State {
	t.Helper()
	sup := process.NewSupervisor()
	t.Cleanup(func() { sup.Shutdown() })
	return &bar.State{
		Lemon:      bar.NewLemon(config.DefaultLemonConfig()),
		Blocks:     blocks,
		Sparks:     []*bar.Spark{},
		Supervisor: sup,
		Dirty:      false,
	}
}

func timedBlock(sid string, reload float64) *bar.Block {
	bc := config.DefaultBlockConfig()
	bc.Sid = config.String(sid)
	bc.Bin = config.String("true")
	bc.Mode = modePtr(config.ModeTimed)
	bc.Reload = config.Float64(reload)
	bc.Finalize()
	return bar.NewBlock(sid, bc, config.AlignLeft)
}

func modePtr(m config.Mode) *config.Mode { return &m }

func TestDueTimedRhythm(t *testing.T) {
	b := timedBlock("clock", 10.0)

	assert.True(t, Due(nil, b, 0), "never-opened TIMED block is due immediately")

	b.LastOpen = 100.0
	assert.False(t, Due(nil, b, 101.0), "freshly-opened TIMED block is not due before its reload interval")

	assert.True(t, Due(nil, b, 109.95), "TIMED block is due once within WaitTolerance of its reload interval")
}

func TestDueTimedNotDueWhileAlive(t *testing.T) {
	b := timedBlock("clock", 1.0)
	b.LastOpen = 0
	b.Alive = true

	assert.False(t, Due(nil, b, 100.0), "a still-running TIMED block is never due again")
}

func TestTickDoesNotReopenRunningBlock(t *testing.T) {
	b := timedBlock("clock", 10.0)
	state := newTestState(t, b)

	require.NoError(t, Tick(state, 1.0))
	assert.True(t, b.Alive)
	firstChild := b.ChildID

	require.NoError(t, Tick(state, 1.001))
	assert.Equal(t, firstChild, b.ChildID, "a second Tick must not re-spawn an already-running block")
}

func TestDueSparkedConsumesOutputOnce(t *testing.T) {
	bc := config.DefaultBlockConfig()
	bc.Sid = config.String("vol")
	bc.Bin = config.String("true")
	bc.Mode = modePtr(config.ModeSparked)
	bc.Consume = config.Bool(true)
	bc.Finalize()
	b := bar.NewBlock("vol", bc, config.AlignLeft)
	b.SparkIdx = 0

	sp := bar.NewSpark(0, "true")
	state := newTestState(t, b)
	state.Sparks = []*bar.Spark{sp}

	assert.False(t, Due(state, b, 0), "SPARKED+consume block is not due while its spark has no output")

	sp.Output = "99"
	assert.True(t, Due(state, b, 0), "SPARKED block becomes due once its spark produces output")

	require.NoError(t, open(state, b, 1.0))
	assert.Equal(t, "", sp.Output, "opening a consuming SPARKED block clears the spark's output")
}

func TestNextWaitTracksSoonestTimedBlock(t *testing.T) {
	fast := timedBlock("fast", 2.0)
	fast.LastOpen = 10.0
	slow := timedBlock("slow", 20.0)
	slow.LastOpen = 10.0

	state := newTestState(t, fast, slow)

	wait := NextWait(state, 11.0)
	assert.Greater(t, wait.Seconds(), 0.0)
	assert.Less(t, wait.Seconds(), 2.0)
}
