package config

import "fmt"

// Config is the fully-merged runtime configuration: the Lemon process
// settings plus every configured Block, keyed by section id. Assembled the
// way the teacher layers Config: defaults, then file config, then flags,
// each produced as its own *Config and stacked with Merge.
type Config struct {
	Lemon  *LemonConfig
	Blocks map[string]*BlockConfig

	// BlockOrder preserves the section order blocks appeared in the config
	// file(s), since map iteration order is not it. The bar's left-to-right
	// layout does not read it: block order on the bar comes from the format
	// string (bar.ParseFormat).
	BlockOrder []string
}

func DefaultConfig() *Config {
	return &Config{
		Lemon:  DefaultLemonConfig(),
		Blocks: make(map[string]*BlockConfig),
	}
}

func (c *Config) Copy() *Config {
	if c == nil {
		return nil
	}
	o := &Config{
		Lemon:  c.Lemon.Copy(),
		Blocks: make(map[string]*BlockConfig, len(c.Blocks)),
	}
	for sid, b := range c.Blocks {
		o.Blocks[sid] = b.Copy()
	}
	o.BlockOrder = append([]string(nil), c.BlockOrder...)
	return o
}

// Merge combines two Configs, with o's values taking precedence. Blocks are
// merged by section id so a later layer (e.g. a CLI-provided override file)
// can patch individual fields of a block defined by an earlier layer without
// clobbering the rest of it.
func (c *Config) Merge(o *Config) *Config {
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
	r.Lemon = r.Lemon.Merge(o.Lemon)

	order := append([]string(nil), o.BlockOrder...)
	listed := make(map[string]bool, len(order))
	for _, sid := range order {
		listed[sid] = true
	}
	for sid := range o.Blocks {
		if !listed[sid] {
			order = append(order, sid)
		}
	}
	for _, sid := range order {
		ob, ok := o.Blocks[sid]
		if !ok {
			continue
		}
		if existing, ok := r.Blocks[sid]; ok {
			r.Blocks[sid] = existing.Merge(ob)
		} else {
			r.Blocks[sid] = ob.Copy()
			r.BlockOrder = append(r.BlockOrder, sid)
		}
	}
	return r
}

func (c *Config) Finalize() {
	if c.Lemon == nil {
		c.Lemon = DefaultLemonConfig()
	}
	c.Lemon.Finalize()

	if c.Blocks == nil {
		c.Blocks = make(map[string]*BlockConfig)
	}
	for sid, b := range c.Blocks {
		if b.Sid == nil {
			b.Sid = String(sid)
		}
		b.Finalize()
	}
}

func (c *Config) GoString() string {
	if c == nil {
		return "(*Config)(nil)"
	}
	return fmt.Sprintf("&Config{Lemon:%#v, Blocks:%d}", c.Lemon, len(c.Blocks))
}
