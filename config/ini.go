package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/succade-go/succade/signals"
	"gopkg.in/ini.v1"
)

// FromPaths loads and merges a succaderc-style INI file from each of paths
// in order, later files overriding earlier ones - the same precedence the
// teacher gives stacked -config flags. The section named barSection (the -s
// value, "bar" by default) becomes the LemonConfig; every other non-default
// section becomes a BlockConfig keyed by its section name.
func FromPaths(paths []string, barSection string) (*Config, error) {
	result := DefaultConfig()
	for _, p := range paths {
		c, err := FromPath(p, barSection)
		if err != nil {
			return nil, errors.Wrapf(err, "config: %s", p)
		}
		result = result.Merge(c)
	}
	return result, nil
}

// FromPath parses a single INI file into a Config.
func FromPath(path string, barSection string) (*Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true}, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ini file")
	}

	c := &Config{
		Lemon:  &LemonConfig{},
		Blocks: make(map[string]*BlockConfig),
	}

	for _, sec := range f.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			if len(sec.Keys()) == 0 {
				continue
			}
		}

		raw := sec.KeysHash()
		if name == barSection {
			var lc LemonConfig
			if err := decodeSection(raw, &lc); err != nil {
				return nil, errors.Wrapf(err, "section %q", name)
			}
			c.Lemon = c.Lemon.Merge(&lc)
			continue
		}
		if name == ini.DefaultSection {
			continue
		}

		var bc BlockConfig
		if err := decodeSection(raw, &bc); err != nil {
			return nil, errors.Wrapf(err, "section %q", name)
		}
		sid := name
		bc.Sid = String(sid)
		c.Blocks[sid] = &bc
		c.BlockOrder = append(c.BlockOrder, sid)
	}

	return c, nil
}

// decodeSection feeds an INI section's raw string map through mapstructure,
// using the same decode-hook convention the teacher applies to its own HCL
// ast - string-to-typed-value coercion lives in small, composable
// DecodeHookFuncs rather than a hand-rolled switch per field.
func decodeSection(raw map[string]string, target interface{}) error {
	m := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		m[strings.ToLower(k)] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			signals.StringToSignalFunc(),
			StringToModeFunc(),
			StringToAlignFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(m)
}

// StringToModeFunc is a mapstructure.DecodeHookFunc that parses Block mode
// names ("once", "timed", "sparked", "live") into config.Mode.
func StringToModeFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(Mode(0)) {
			return data, nil
		}
		return ParseMode(data.(string))
	}
}

// StringToAlignFunc is a mapstructure.DecodeHookFunc that parses alignment
// names ("left", "center", "right") into config.Align.
func StringToAlignFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(Align(0)) {
			return data, nil
		}
		switch strings.ToLower(data.(string)) {
		case "", "left":
			return AlignLeft, nil
		case "center":
			return AlignCenter, nil
		case "right":
			return AlignRight, nil
		default:
			return nil, fmt.Errorf("config: invalid align %q", data)
		}
	}
}
