package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// Norm selects how values are mapped onto [0, 1].
type Norm int

const (
	// Linear maps (v-min)/(max-min).
	Linear Norm = iota
	// Log maps (ln v - ln min)/(ln max - ln min). Values must be positive.
	Log
	// MaxRatio maps v/max. Values must be non-negative.
	MaxRatio
)

var normNames = [...]string{"linear", "log", "max"}

func (n Norm) String() string {
	if int(n) < len(normNames) {
		return normNames[n]
	}
	return fmt.Sprintf("Norm(%d)", int(n))
}

// Intensities maps each value to a scalar in [0, 1] under norm.
// The mapping is monotonic: larger values never get smaller intensities.
// If all values are equal every intensity is 1.
func Intensities(values []float64, norm Norm) ([]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.InvalidInput("value %d must be a finite number, got %v", i, v)
		}
	}

	switch norm {
	case Linear:
		return minMax(values, func(v float64) float64 { return v }), nil
	case Log:
		for i, v := range values {
			if v <= 0 {
				return nil, errors.InvalidInput("log normalization requires positive values, value %d is %v", i, v)
			}
		}
		return minMax(values, math.Log), nil
	case MaxRatio:
		return maxRatio(values)
	default:
		return nil, errors.InvalidInput("unknown normalization %v", norm)
	}
}

func minMax(values []float64, f func(float64) float64) []float64 {
	scaled := make([]float64, len(values))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range values {
		scaled[i] = f(v)
		lo = math.Min(lo, scaled[i])
		hi = math.Max(hi, scaled[i])
	}

	out := make([]float64, len(values))
	if hi == lo {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	for i, s := range scaled {
		out[i] = (s - lo) / (hi - lo)
	}
	return out
}

func maxRatio(values []float64) ([]float64, error) {
	var hi float64
	for i, v := range values {
		if v < 0 {
			return nil, errors.InvalidInput("max-ratio normalization requires non-negative values, value %d is %v", i, v)
		}
		hi = math.Max(hi, v)
	}
	out := make([]float64, len(values))
	if hi == 0 {
		return out, nil
	}
	for i, v := range values {
		out[i] = v / hi
	}
	return out, nil
}
