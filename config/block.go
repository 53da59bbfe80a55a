package config

import "fmt"

const (
	DefaultBlockReload = 5.0
)

// BlockConfig configures a single bar segment: how it produces output
// (Bin/Trigger/Spark/Mode/Reload/Consume), where it sits (Align) and how it
// looks (the per-block Style overrides layered on LemonConfig.Style), plus
// the five action command slots a click/scroll region can dispatch to.
// Field-by-field Copy/Merge/Finalize/GoString mirrors LemonConfig and the
// teacher's own nested config structs.
type BlockConfig struct {
	Sid *string `mapstructure:"-"`

	Bin     *string  `mapstructure:"bin"`
	Mode    *Mode    `mapstructure:"mode"`
	Reload  *float64 `mapstructure:"reload"`
	Consume *bool    `mapstructure:"consume"`

	Trigger *string `mapstructure:"trigger"`
	Spark   *string `mapstructure:"spark"`

	Align *Align `mapstructure:"align"`

	Label  *string `mapstructure:"label"`
	Prefix *string `mapstructure:"prefix"`
	Suffix *string `mapstructure:"suffix"`

	Style *StyleConfig `mapstructure:"style"`

	ActionLeft   *string `mapstructure:"action_left"`
	ActionMiddle *string `mapstructure:"action_middle"`
	ActionRight  *string `mapstructure:"action_right"`
	ActionUp     *string `mapstructure:"action_up"`
	ActionDown   *string `mapstructure:"action_down"`
}

func DefaultBlockConfig() *BlockConfig {
	return &BlockConfig{
		Style: DefaultStyleConfig(),
	}
}

func (c *BlockConfig) Copy() *BlockConfig {
	if c == nil {
		return nil
	}
	var o BlockConfig
	o.Sid = c.Sid
	o.Bin = c.Bin
	o.Mode = c.Mode
	o.Reload = c.Reload
	o.Consume = c.Consume
	o.Trigger = c.Trigger
	o.Spark = c.Spark
	o.Align = c.Align
	o.Label = c.Label
	o.Prefix = c.Prefix
	o.Suffix = c.Suffix
	o.Style = c.Style.Copy()
	o.ActionLeft = c.ActionLeft
	o.ActionMiddle = c.ActionMiddle
	o.ActionRight = c.ActionRight
	o.ActionUp = c.ActionUp
	o.ActionDown = c.ActionDown
	return &o
}

func (c *BlockConfig) Merge(o *BlockConfig) *BlockConfig {
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
	if o.Sid != nil {
		r.Sid = o.Sid
	}
	if o.Bin != nil {
		r.Bin = o.Bin
	}
	if o.Mode != nil {
		r.Mode = o.Mode
	}
	if o.Reload != nil {
		r.Reload = o.Reload
	}
	if o.Consume != nil {
		r.Consume = o.Consume
	}
	if o.Trigger != nil {
		r.Trigger = o.Trigger
	}
	if o.Spark != nil {
		r.Spark = o.Spark
	}
	if o.Align != nil {
		r.Align = o.Align
	}
	if o.Label != nil {
		r.Label = o.Label
	}
	if o.Prefix != nil {
		r.Prefix = o.Prefix
	}
	if o.Suffix != nil {
		r.Suffix = o.Suffix
	}
	r.Style = r.Style.Merge(o.Style)
	if o.ActionLeft != nil {
		r.ActionLeft = o.ActionLeft
	}
	if o.ActionMiddle != nil {
		r.ActionMiddle = o.ActionMiddle
	}
	if o.ActionRight != nil {
		r.ActionRight = o.ActionRight
	}
	if o.ActionUp != nil {
		r.ActionUp = o.ActionUp
	}
	if o.ActionDown != nil {
		r.ActionDown = o.ActionDown
	}
	return r
}

func (c *BlockConfig) Finalize() {
	if c.Mode == nil {
		m := ModeOnce
		c.Mode = &m
	}
	if c.Reload == nil {
		c.Reload = Float64(DefaultBlockReload)
	}
	if c.Consume == nil {
		c.Consume = Bool(true)
	}
	if c.Align == nil {
		a := AlignLeft
		c.Align = &a
	}
	if c.Style == nil {
		c.Style = DefaultStyleConfig()
	}
	c.Style.Finalize()
}

func (c *BlockConfig) GoString() string {
	if c == nil {
		return "(*BlockConfig)(nil)"
	}
	return fmt.Sprintf("&BlockConfig{Sid:%s, Bin:%s, Mode:%v, Reload:%s, Style:%#v}",
		StringGoString(c.Sid), StringGoString(c.Bin), c.Mode, Float64GoString(c.Reload), c.Style)
}
