package layout

import (
	"strconv"

	"gonum.org/v1/plot"
)

// Tick is an axis mark. Minor ticks have an empty Label.
type Tick struct {
	Value float64
	Label string
}

// Major reports whether the tick carries a label.
func (t Tick) Major() bool { return t.Label != "" }

// Ticks returns human-friendly tick marks covering [min, max].
func Ticks(min, max float64) []Tick {
	if max < min {
		min, max = max, min
	}
	if max == min {
		return []Tick{{Value: min, Label: strconv.FormatFloat(min, 'g', -1, 64)}}
	}
	marks := plot.DefaultTicks{}.Ticks(min, max)
	out := make([]Tick, 0, len(marks))
	for _, m := range marks {
		out = append(out, Tick{Value: m.Value, Label: m.Label})
	}
	return out
}

// MajorTicks filters ticks down to the labelled ones.
func MajorTicks(ticks []Tick) []Tick {
	var out []Tick
	for _, t := range ticks {
		if t.Major() {
			out = append(out, t)
		}
	}
	return out
}
