package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/succade-go/succade/bar"
	"github.com/succade-go/succade/config"
)

func blockWithOutput(sid, output string, align config.Align) *bar.Block {
	bc := config.DefaultBlockConfig()
	bc.Sid = config.String(sid)
	bc.Bin = config.String("true")
	bc.Finalize()
	b := bar.NewBlock(sid, bc, align)
	b.Output = output
	return b
}

func testLemon() *bar.Lemon {
	lc := config.DefaultLemonConfig()
	lc.Finalize()
	return bar.NewLemon(lc)
}

func TestComposeEmitsAlignmentMarkerOnChange(t *testing.T) {
	a := blockWithOutput("a", "1", config.AlignLeft)
	b := blockWithOutput("b", "2", config.AlignLeft)
	c := blockWithOutput("c", "3", config.AlignRight)

	state := &bar.State{Lemon: testLemon(), Blocks: []*bar.Block{a, b, c}}

	line, err := Compose(state)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(line, "%{l}"), "two consecutive left-aligned blocks share one %{l} marker")
	assert.Equal(t, 1, strings.Count(line, "%{r}"), "the alignment change to right emits exactly one %{r} marker")
}

func TestEscapeDoublesPercent(t *testing.T) {
	assert.Equal(t, "100%%", escape("100%"))
	assert.Equal(t, "no percent here", escape("no percent here"))
}

func TestPadRightAlignsPositiveWidth(t *testing.T) {
	assert.Equal(t, "  ab", pad("ab", 4))
	assert.Equal(t, "abcd", pad("abcd", 2), "body already at or past width is left untouched")
}

func TestPadLeftAlignsNegativeWidth(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", -4))
}

func TestComposerRenderIsIdempotent(t *testing.T) {
	a := blockWithOutput("a", "1", config.AlignLeft)
	state := &bar.State{Lemon: testLemon(), Blocks: []*bar.Block{a}, Dirty: true}

	c := NewComposer()

	_, changed, err := c.Render(state)
	require.NoError(t, err)
	assert.True(t, changed, "first render always reports a change")

	state.Dirty = true
	_, changed, err = c.Render(state)
	require.NoError(t, err)
	assert.False(t, changed, "re-rendering identical state reports no change even if Dirty was left set")

	a.Output = "2"
	_, changed, err = c.Render(state)
	require.NoError(t, err)
	assert.True(t, changed, "an actual output change is reported")
}
