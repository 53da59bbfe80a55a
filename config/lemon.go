package config

import (
	"fmt"
	"os"

	"github.com/succade-go/succade/signals"
)

const (
	DefaultLemonBin     = "lemonbar"
	DefaultLemonName    = "succade_bar"
	DefaultLemonSection = "bar"
)

// LemonConfig configures the renderer process itself, replacing the
// teacher's Consul/Syslog-only top-level Config with the fields
// spec.md §3 assigns to "Lemon". Follows the same pointer-field
// Copy/Merge/Finalize/GoString convention as the rest of this package.
type LemonConfig struct {
	Name   *string `mapstructure:"name"`
	Bin    *string `mapstructure:"bin"`
	Width  *int    `mapstructure:"width"`
	Height *int    `mapstructure:"height"`
	X      *int    `mapstructure:"x"`
	Y      *int    `mapstructure:"y"`

	FG *string `mapstructure:"foreground"`
	BG *string `mapstructure:"background"`
	LC *string `mapstructure:"line_color"`
	LW *int    `mapstructure:"line_width"`

	Bottom *bool `mapstructure:"bottom"`
	Force  *bool `mapstructure:"force_docking"`

	BlockFont *string `mapstructure:"block_font"`
	LabelFont *string `mapstructure:"label_font"`
	AffixFont *string `mapstructure:"affix_font"`

	Prefix *string `mapstructure:"prefix"`
	Suffix *string `mapstructure:"suffix"`
	Format *string `mapstructure:"format"`

	Style *StyleConfig `mapstructure:"style"`

	KillSignal   *os.Signal `mapstructure:"kill_signal"`
	ReloadSignal *os.Signal `mapstructure:"reload_signal"`

	LogLevel *string       `mapstructure:"log_level"`
	PidFile  *string       `mapstructure:"pid_file"`
	Syslog   *SyslogConfig `mapstructure:"syslog"`
	Env      *EnvConfig    `mapstructure:"env"`
}

func DefaultLemonConfig() *LemonConfig {
	return &LemonConfig{
		Style:  DefaultStyleConfig(),
		Syslog: DefaultSyslogConfig(),
		Env:    DefaultEnvConfig(),
	}
}

func (c *LemonConfig) Copy() *LemonConfig {
	if c == nil {
		return nil
	}
	var o LemonConfig
	o.Name = c.Name
	o.Bin = c.Bin
	o.Width = c.Width
	o.Height = c.Height
	o.X = c.X
	o.Y = c.Y
	o.FG = c.FG
	o.BG = c.BG
	o.LC = c.LC
	o.LW = c.LW
	o.Bottom = c.Bottom
	o.Force = c.Force
	o.BlockFont = c.BlockFont
	o.LabelFont = c.LabelFont
	o.AffixFont = c.AffixFont
	o.Prefix = c.Prefix
	o.Suffix = c.Suffix
	o.Format = c.Format
	o.Style = c.Style.Copy()
	o.KillSignal = c.KillSignal
	o.ReloadSignal = c.ReloadSignal
	o.LogLevel = c.LogLevel
	o.PidFile = c.PidFile
	o.Syslog = c.Syslog.Copy()
	o.Env = c.Env.Copy()
	return &o
}

func (c *LemonConfig) Merge(o *LemonConfig) *LemonConfig {
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
	if o.Name != nil {
		r.Name = o.Name
	}
	if o.Bin != nil {
		r.Bin = o.Bin
	}
	if o.Width != nil {
		r.Width = o.Width
	}
	if o.Height != nil {
		r.Height = o.Height
	}
	if o.X != nil {
		r.X = o.X
	}
	if o.Y != nil {
		r.Y = o.Y
	}
	if o.FG != nil {
		r.FG = o.FG
	}
	if o.BG != nil {
		r.BG = o.BG
	}
	if o.LC != nil {
		r.LC = o.LC
	}
	if o.LW != nil {
		r.LW = o.LW
	}
	if o.Bottom != nil {
		r.Bottom = o.Bottom
	}
	if o.Force != nil {
		r.Force = o.Force
	}
	if o.BlockFont != nil {
		r.BlockFont = o.BlockFont
	}
	if o.LabelFont != nil {
		r.LabelFont = o.LabelFont
	}
	if o.AffixFont != nil {
		r.AffixFont = o.AffixFont
	}
	if o.Prefix != nil {
		r.Prefix = o.Prefix
	}
	if o.Suffix != nil {
		r.Suffix = o.Suffix
	}
	if o.Format != nil {
		r.Format = o.Format
	}
	r.Style = r.Style.Merge(o.Style)
	if o.KillSignal != nil {
		r.KillSignal = o.KillSignal
	}
	if o.ReloadSignal != nil {
		r.ReloadSignal = o.ReloadSignal
	}
	if o.LogLevel != nil {
		r.LogLevel = o.LogLevel
	}
	if o.PidFile != nil {
		r.PidFile = o.PidFile
	}
	r.Syslog = r.Syslog.Merge(o.Syslog)
	r.Env = r.Env.Merge(o.Env)
	return r
}

func (c *LemonConfig) Finalize() {
	if c.Name == nil {
		c.Name = String(DefaultLemonName)
	}
	if c.Bin == nil {
		c.Bin = String(DefaultLemonBin)
	}
	if c.LW == nil {
		c.LW = Int(1)
	}
	if c.LogLevel == nil {
		c.LogLevel = String("WARN")
	}
	if c.KillSignal == nil {
		c.KillSignal = Signal(signals.SignalLookup["SIGINT"])
	}
	if c.ReloadSignal == nil {
		c.ReloadSignal = Signal(signals.SignalLookup["SIGHUP"])
	}
	if c.Style == nil {
		c.Style = DefaultStyleConfig()
	}
	c.Style.Finalize()
	if c.Syslog == nil {
		c.Syslog = DefaultSyslogConfig()
	}
	c.Syslog.Finalize()
	if c.Env == nil {
		c.Env = DefaultEnvConfig()
	}
	c.Env.Finalize()
}

func (c *LemonConfig) GoString() string {
	if c == nil {
		return "(*LemonConfig)(nil)"
	}
	return fmt.Sprintf("&LemonConfig{Name:%s, Bin:%s, Format:%s, Style:%#v}",
		StringGoString(c.Name), StringGoString(c.Bin), StringGoString(c.Format), c.Style)
}
