package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/chileviz/pkg/errors"
)

func TestRadius(t *testing.T) {
	tests := []struct {
		intensity, floor, want float64
	}{
		{0, 0.2, 0.2},
		{1, 0.2, 1},
		{0.5, 0.2, 0.6},
		{0.5, 0, 0.5},
		{0.3, 1, 1},
	}
	for _, tt := range tests {
		if got := Radius(tt.intensity, tt.floor); math.Abs(got-tt.want) > tol {
			t.Errorf("Radius(%v, %v) = %v, want %v", tt.intensity, tt.floor, got, tt.want)
		}
	}
}

func TestRadii(t *testing.T) {
	got, err := Radii([]float64{0, 1}, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0.2 || got[1] != 1 {
		t.Errorf("Radii() = %v", got)
	}

	for _, floor := range []float64{-0.1, 1.5, math.NaN()} {
		if _, err := Radii([]float64{0.5}, floor); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Radii(floor=%v) error = %v, want INVALID_INPUT", floor, err)
		}
	}
}
