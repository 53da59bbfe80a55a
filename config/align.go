package config

import "fmt"

// Align is a Block's horizontal placement on the bar.
type Align int

const (
	AlignLeft Align = iota - 1
	AlignCenter
	AlignRight
)

// Char returns the single-letter markup code used in %{l}/%{c}/%{r}
// alignment escalators, mirroring succade.c's get_align().
func (a Align) Char() byte {
	switch a {
	case AlignLeft:
		return 'l'
	case AlignRight:
		return 'r'
	default:
		return 'c'
	}
}

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}
