package format

import (
	"crypto/sha256"

	"github.com/succade-go/succade/bar"
)

// Composer wraps Compose with a second idempotence guard layered on top of
// State.Dirty: a sha256 digest of the last line actually written, grounded
// directly on the teacher's processor.getHash/save pattern (hash the
// candidate content, skip the write if unchanged). This catches a
// scheduling bug that flips Dirty without changing the composed bytes.
type Composer struct {
	lastSum [sha256.Size]byte
	hasSum  bool
}

// NewComposer returns a ready Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Render composes state and reports whether the result differs from the
// last line this Composer produced. changed is false on a repeat render
// even if the caller's Dirty flag was (wrongly) set.
func (c *Composer) Render(state *bar.State) (line string, changed bool, err error) {
	line, err = Compose(state)
	if err != nil {
		return "", false, err
	}

	sum := sha256.Sum256([]byte(line))
	if c.hasSum && sum == c.lastSum {
		return line, false, nil
	}
	c.lastSum = sum
	c.hasSum = true
	return line, true, nil
}
