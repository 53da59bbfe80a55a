package bar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/succade-go/succade/config"
)

func TestParseFormatAlignment(t *testing.T) {
	tokens, err := ParseFormat("a | b c || d")
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, FormatToken{Sid: "a", Align: config.AlignLeft}, tokens[0])
	assert.Equal(t, FormatToken{Sid: "b", Align: config.AlignCenter}, tokens[1])
	assert.Equal(t, FormatToken{Sid: "c", Align: config.AlignCenter}, tokens[2])
	assert.Equal(t, FormatToken{Sid: "d", Align: config.AlignRight}, tokens[3])
}

func TestParseFormatSaturatesAtRight(t *testing.T) {
	tokens, err := ParseFormat("a ||| b")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, config.AlignRight, tokens[1].Align)
}

func TestParseFormatEmpty(t *testing.T) {
	tokens, err := ParseFormat("")
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
