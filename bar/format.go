package bar

import (
	"strings"

	"github.com/succade-go/succade/config"
)

// FormatToken is one parsed position in the format string: a block sid at a
// given alignment.
type FormatToken struct {
	Sid   string
	Align config.Align
}

// ParseFormat tokenizes a format string by whitespace, treating any
// whitespace-separated run of "|" characters as an alignment escalator:
// each "|" advances alignment one step left->center->right, saturating at
// right, and a run of N contributes N steps. Every other token creates (or,
// if its sid repeats, reuses) a block position at the current alignment.
// This is a direct generalization of the teacher's parse_format/
// found_block_handler callback pair into a plain slice-builder - there's no
// callback indirection needed once there's no C ABI boundary to cross.
func ParseFormat(format string) ([]FormatToken, error) {
	fields := strings.Fields(format)
	tokens := make([]FormatToken, 0, len(fields))
	align := config.AlignLeft

	for _, f := range fields {
		if isAllPipes(f) {
			align = advanceAlign(align, len(f))
			continue
		}
		tokens = append(tokens, FormatToken{Sid: f, Align: align})
	}
	return tokens, nil
}

func isAllPipes(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '|' {
			return false
		}
	}
	return true
}

func advanceAlign(a config.Align, steps int) config.Align {
	v := int(a) + steps
	if v > int(config.AlignRight) {
		v = int(config.AlignRight)
	}
	return config.Align(v)
}
