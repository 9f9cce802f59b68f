package layout

import "github.com/matzehuels/chileviz/pkg/errors"

// Radius maps intensity onto [floor, 1]: floor + (1-floor)*intensity.
func Radius(intensity, floor float64) float64 {
	return floor + (1-floor)*intensity
}

// Radii applies [Radius] to every intensity. floor must lie in [0, 1].
func Radii(intensities []float64, floor float64) ([]float64, error) {
	if floor < 0 || floor > 1 || floor != floor {
		return nil, errors.InvalidInput("radius floor must be in [0, 1], got %v", floor)
	}
	out := make([]float64, len(intensities))
	for i, v := range intensities {
		out[i] = Radius(v, floor)
	}
	return out, nil
}
