package config

import "fmt"

// Mode is a Block's lifecycle discipline. Kept as a closed, typed enum
// rather than a string-keyed map per Design Note 9(b): the source's "config
// object with get/set by enum key" is preserved as a typed, enumerated set
// of options, not a stringly-typed lookup.
type Mode int

const (
	// ModeOnce runs exactly one time over the process lifetime.
	ModeOnce Mode = iota
	// ModeTimed re-runs on a fixed Reload interval.
	ModeTimed
	// ModeSparked runs when its Spark produces new output.
	ModeSparked
	// ModeLive is a long-lived process whose own stdout is the output.
	ModeLive
)

func (m Mode) String() string {
	switch m {
	case ModeOnce:
		return "once"
	case ModeTimed:
		return "timed"
	case ModeSparked:
		return "sparked"
	case ModeLive:
		return "live"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeVal dereferences a *Mode, defaulting to ModeOnce for nil - mirroring
// the BoolVal/IntVal family's nil-means-zero-value convention.
func ModeVal(m *Mode) Mode {
	if m == nil {
		return ModeOnce
	}
	return *m
}

// ParseMode parses the mode names used in succaderc block sections.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "once":
		return ModeOnce, nil
	case "timed":
		return ModeTimed, nil
	case "sparked":
		return ModeSparked, nil
	case "live":
		return ModeLive, nil
	default:
		return ModeOnce, fmt.Errorf("config: invalid block mode %q", s)
	}
}
