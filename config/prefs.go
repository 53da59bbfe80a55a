package config

import "fmt"

// Prefs holds the handful of settings that only ever come from the command
// line or environment, never from a config file section: where to find the
// config file(s) and whether to tolerate an otherwise-empty bar. Kept
// separate from Config/LemonConfig the way the teacher keeps Cli flag state
// (Path, once-ish flags) apart from the merged runtime Config.
type Prefs struct {
	Paths   *[]string `mapstructure:"-"`
	Empty   *bool     `mapstructure:"-"`
	Section *string   `mapstructure:"-"`
}

func DefaultPrefs() *Prefs {
	return &Prefs{}
}

func (p *Prefs) Copy() *Prefs {
	if p == nil {
		return nil
	}
	var o Prefs
	if p.Paths != nil {
		paths := append([]string(nil), (*p.Paths)...)
		o.Paths = &paths
	}
	o.Empty = p.Empty
	o.Section = p.Section
	return &o
}

func (p *Prefs) Merge(o *Prefs) *Prefs {
	if p == nil {
		if o == nil {
			return nil
		}
		return o.Copy()
	}
	if o == nil {
		return p.Copy()
	}

	r := p.Copy()
	if o.Paths != nil {
		r.Paths = o.Paths
	}
	if o.Empty != nil {
		r.Empty = o.Empty
	}
	if o.Section != nil {
		r.Section = o.Section
	}
	return r
}

func (p *Prefs) Finalize() {
	if p.Paths == nil {
		paths := []string{}
		p.Paths = &paths
	}
	if p.Empty == nil {
		p.Empty = Bool(false)
	}
	if p.Section == nil {
		p.Section = String(DefaultLemonSection)
	}
}

func (p *Prefs) GoString() string {
	if p == nil {
		return "(*Prefs)(nil)"
	}
	return fmt.Sprintf("&Prefs{Paths:%v, Empty:%s}", p.Paths, BoolGoString(p.Empty))
}
