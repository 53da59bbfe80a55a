package config

import "fmt"

// StyleConfig is the set of visual defaults the bar offers to every block,
// per spec.md §3: "a composite style config shared as defaults with blocks".
// Blocks resolve their own style against this one, attribute by attribute
// (format.resolve*), falling back to it only where they have no override of
// their own.
type StyleConfig struct {
	BlockFG *string `mapstructure:"block_fg"`
	BlockBG *string `mapstructure:"block_bg"`
	LabelFG *string `mapstructure:"label_fg"`
	LabelBG *string `mapstructure:"label_bg"`
	AffixFG *string `mapstructure:"affix_fg"`
	AffixBG *string `mapstructure:"affix_bg"`
	LC      *string `mapstructure:"line_color"`

	Overline  *bool `mapstructure:"overline"`
	Underline *bool `mapstructure:"underline"`
	Offset    *int  `mapstructure:"offset"`
	MinWidth  *int  `mapstructure:"min_width"`
}

func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{}
}

func (c *StyleConfig) Copy() *StyleConfig {
	if c == nil {
		return nil
	}
	var o StyleConfig
	o.BlockFG = c.BlockFG
	o.BlockBG = c.BlockBG
	o.LabelFG = c.LabelFG
	o.LabelBG = c.LabelBG
	o.AffixFG = c.AffixFG
	o.AffixBG = c.AffixBG
	o.LC = c.LC
	o.Overline = c.Overline
	o.Underline = c.Underline
	o.Offset = c.Offset
	o.MinWidth = c.MinWidth
	return &o
}

func (c *StyleConfig) Merge(o *StyleConfig) *StyleConfig {
	if c == nil {
		if o == nil {
			return nil
		}
		return o.Copy()
	}
	if o == nil {
		return c.Copy()
	}

	r := c.Copy()
	if o.BlockFG != nil {
		r.BlockFG = o.BlockFG
	}
	if o.BlockBG != nil {
		r.BlockBG = o.BlockBG
	}
	if o.LabelFG != nil {
		r.LabelFG = o.LabelFG
	}
	if o.LabelBG != nil {
		r.LabelBG = o.LabelBG
	}
	if o.AffixFG != nil {
		r.AffixFG = o.AffixFG
	}
	if o.AffixBG != nil {
		r.AffixBG = o.AffixBG
	}
	if o.LC != nil {
		r.LC = o.LC
	}
	if o.Overline != nil {
		r.Overline = o.Overline
	}
	if o.Underline != nil {
		r.Underline = o.Underline
	}
	if o.Offset != nil {
		r.Offset = o.Offset
	}
	if o.MinWidth != nil {
		r.MinWidth = o.MinWidth
	}
	return r
}

func (c *StyleConfig) Finalize() {
	if c.Overline == nil {
		c.Overline = Bool(false)
	}
	if c.Underline == nil {
		c.Underline = Bool(false)
	}
	if c.Offset == nil {
		c.Offset = Int(0)
	}
	if c.MinWidth == nil {
		c.MinWidth = Int(0)
	}
}

func (c *StyleConfig) GoString() string {
	if c == nil {
		return "(*StyleConfig)(nil)"
	}
	return fmt.Sprintf("&StyleConfig{"+
		"BlockFG:%s, BlockBG:%s, LabelFG:%s, LabelBG:%s, AffixFG:%s, AffixBG:%s, LC:%s, "+
		"Overline:%s, Underline:%s, Offset:%s, MinWidth:%s}",
		StringGoString(c.BlockFG), StringGoString(c.BlockBG), StringGoString(c.LabelFG), StringGoString(c.LabelBG),
		StringGoString(c.AffixFG), StringGoString(c.AffixBG), StringGoString(c.LC),
		BoolGoString(c.Overline), BoolGoString(c.Underline), IntGoString(c.Offset), IntGoString(c.MinWidth),
	)
}
