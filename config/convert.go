package config

import (
	"fmt"
	"os"
	"time"

	"github.com/succade-go/succade/signals"
)

// Bool, Int, Float64, Signal, String and TimeDuration below follow the same
// pointer-wrapper convention the teacher uses throughout its config package:
// a nil pointer means "not set by this layer", letting Merge tell "unset"
// apart from "set to the zero value" when stacking defaults, file config and
// CLI flags.

func Bool(b bool) *bool {
	return &b
}

func BoolVal(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}

func BoolGoString(b *bool) string {
	if b == nil {
		return "(*bool)(nil)"
	}
	return fmt.Sprintf("%t", *b)
}

func BoolPresent(b *bool) bool {
	return b != nil
}

func Int(i int) *int {
	return &i
}

func IntVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func IntGoString(i *int) string {
	if i == nil {
		return "(*int)(nil)"
	}
	return fmt.Sprintf("%d", *i)
}

func IntPresent(i *int) bool {
	return i != nil
}

func Float64(f float64) *float64 {
	return &f
}

func Float64Val(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func Float64GoString(f *float64) string {
	if f == nil {
		return "(*float64)(nil)"
	}
	return fmt.Sprintf("%g", *f)
}

func Float64Present(f *float64) bool {
	return f != nil
}

func Signal(s os.Signal) *os.Signal {
	return &s
}

func SignalVal(s *os.Signal) os.Signal {
	if s == nil {
		return (os.Signal)(nil)
	}
	return *s
}

func SignalGoString(s *os.Signal) string {
	if s == nil {
		return "(*os.Signal)(nil)"
	}
	if *s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%q", *s)
}

func SignalPresent(s *os.Signal) bool {
	if s == nil {
		return false
	}
	return *s != signals.SIGNIL
}

func String(s string) *string {
	return &s
}

func StringVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func StringGoString(s *string) string {
	if s == nil {
		return "(*string)(nil)"
	}
	return fmt.Sprintf("%q", *s)
}

func StringPresent(s *string) bool {
	if s == nil {
		return false
	}
	return *s != ""
}

func TimeDuration(t time.Duration) *time.Duration {
	return &t
}

func TimeDurationVal(t *time.Duration) time.Duration {
	if t == nil {
		return time.Duration(0)
	}
	return *t
}

func TimeDurationGoString(t *time.Duration) string {
	if t == nil {
		return "(*time.Duration)(nil)"
	}
	return fmt.Sprintf("%s", *t)
}

func TimeDurationPresent(t *time.Duration) bool {
	return t != nil
}
