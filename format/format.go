// Package format composes the renderer's input line from bar.State: one
// markup segment per Block, joined with alignment markers, with style
// inherited in layers from bar defaults down to per-block overrides. A
// direct generalization of the teacher's blockstr/barstr pair (see
// original_source/src/succade.c) onto bar.State instead of a C struct tree.
package format

import (
	"fmt"
	"strings"

	"github.com/succade-go/succade/bar"
	"github.com/succade-go/succade/config"
)

type actionSpec struct {
	n      int
	suffix string
	get    func(b *bar.Block) string
}

// actionSpecs is fixed lemonbar button-number order: left/middle/right
// mouse, then scroll up/down. The numbers are mouse-button numbers, not a
// sequential count of which actions happen to be bound.
var actionSpecs = []actionSpec{
	{1, "lmb", func(b *bar.Block) string { return b.ActionLeft }},
	{2, "mmb", func(b *bar.Block) string { return b.ActionMiddle }},
	{3, "rmb", func(b *bar.Block) string { return b.ActionRight }},
	{4, "sup", func(b *bar.Block) string { return b.ActionUp }},
	{5, "sdn", func(b *bar.Block) string { return b.ActionDown }},
}

// escape doubles every "%" so block output can never be mistaken for
// lemonbar markup.
func escape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	return strings.ReplaceAll(s, "%", "%%")
}

func pick(blockVal, barVal *string, fallback string) string {
	if blockVal != nil && *blockVal != "" {
		return *blockVal
	}
	if barVal != nil && *barVal != "" {
		return *barVal
	}
	return fallback
}

func resolveColor(blockVal, barVal *string) string {
	return pick(blockVal, barVal, "-")
}

func resolveOffset(blockStyle, barStyle *config.StyleConfig) int {
	if blockStyle != nil && blockStyle.Offset != nil && *blockStyle.Offset != 0 {
		return *blockStyle.Offset
	}
	if barStyle != nil && barStyle.Offset != nil {
		return *barStyle.Offset
	}
	return 0
}

func resolveMinWidth(blockStyle, barStyle *config.StyleConfig) int {
	if blockStyle != nil && blockStyle.MinWidth != nil && *blockStyle.MinWidth != 0 {
		return *blockStyle.MinWidth
	}
	if barStyle != nil && barStyle.MinWidth != nil {
		return *barStyle.MinWidth
	}
	return 0
}

// resolveFlag ORs the block-level and bar-level flags together - Design
// Note 9(b): the original's acknowledged bug is preserved deliberately, not
// fixed.
func resolveFlag(blockVal, barVal *bool) bool {
	return config.BoolVal(blockVal) || config.BoolVal(barVal)
}

// segment builds one Block's full markup segment: action openers, style
// prelude, prefix/label/body/suffix chunks, style reset, action closers.
func segment(lemon *bar.Lemon, b *bar.Block) string {
	var sb strings.Builder

	var bound []actionSpec
	for _, a := range actionSpecs {
		if a.get(b) != "" {
			bound = append(bound, a)
		}
	}
	for _, a := range bound {
		fmt.Fprintf(&sb, "%%{A%d:%s_%s:}", a.n, b.Sid, a.suffix)
	}

	barStyle := lemon.Cfg.Style
	blockStyle := b.Style

	blockFG := resolveColor(blockStyle.BlockFG, barStyle.BlockFG)
	blockBG := resolveColor(blockStyle.BlockBG, barStyle.BlockBG)
	lc := resolveColor(blockStyle.LC, barStyle.LC)
	offset := resolveOffset(blockStyle, barStyle)
	overline := resolveFlag(blockStyle.Overline, barStyle.Overline)
	underline := resolveFlag(blockStyle.Underline, barStyle.Underline)

	fmt.Fprintf(&sb, "%%{O%d}", offset)
	fmt.Fprintf(&sb, "%%{U%s}", lc)
	sb.WriteString(toggle("o", overline))
	sb.WriteString(toggle("u", underline))

	labelFG := pick(blockStyle.LabelFG, barStyle.LabelFG, blockFG)
	labelBG := pick(blockStyle.LabelBG, barStyle.LabelBG, blockBG)
	affixFG := pick(blockStyle.AffixFG, barStyle.AffixFG, blockFG)
	affixBG := pick(blockStyle.AffixBG, barStyle.AffixBG, blockBG)

	prefix := config.StringVal(lemon.Cfg.Prefix)
	suffix := config.StringVal(lemon.Cfg.Suffix)

	if prefix != "" {
		fmt.Fprintf(&sb, "%%{T3}%%{F%s}%%{B%s}%s", affixFG, affixBG, escape(prefix))
	}

	if b.Label != "" {
		fmt.Fprintf(&sb, "%%{T2}%%{F%s}%%{B%s}%s", labelFG, labelBG, escape(b.Label))
	}

	body := escape(b.Output)
	minWidth := resolveMinWidth(blockStyle, barStyle)
	body = pad(body, minWidth)
	fmt.Fprintf(&sb, "%%{T1}%%{F%s}%%{B%s}%s", blockFG, blockBG, body)

	if suffix != "" {
		fmt.Fprintf(&sb, "%%{T3}%%{F%s}%%{B%s}%s", affixFG, affixBG, escape(suffix))
	}

	sb.WriteString("%{T- F- B- U- -o -u}")

	for i := len(bound) - 1; i >= 0; i-- {
		sb.WriteString("%{A}")
	}

	return sb.String()
}

// pad left-pads body with spaces to width for positive width (right
// alignment within the field) and right-pads for negative width (left
// alignment), matching printf's "%*s"/"%-*s" convention. Padding is counted
// against the already-escaped length, not the raw body length (Design Note
// 9(d)): a body containing "%" costs two columns per "%" once escaped, and
// that's what gets padded against, not the pre-escape length.
func pad(body string, width int) string {
	n := len(body)
	if width >= 0 {
		if n >= width {
			return body
		}
		return strings.Repeat(" ", width-n) + body
	}
	w := -width
	if n >= w {
		return body
	}
	return body + strings.Repeat(" ", w-n)
}

func toggle(code string, on bool) string {
	if on {
		return "%{+" + code + "}"
	}
	return "%{-" + code + "}"
}

// Compose concatenates every Block's segment, inserting an alignment marker
// whenever alignment changes from the previous block (the first block
// always emits one), terminating with a single newline.
func Compose(state *bar.State) (string, error) {
	var sb strings.Builder
	var last config.Align
	first := true

	for _, b := range state.Blocks {
		if first || b.Align != last {
			fmt.Fprintf(&sb, "%%{%c}", b.Align.Char())
			last = b.Align
			first = false
		}
		sb.WriteString(segment(state.Lemon, b))
	}

	sb.WriteString("\n")
	return sb.String(), nil
}
