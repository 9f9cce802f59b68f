package layout

import (
	"math"
	"sort"
	"testing"

	"github.com/matzehuels/chileviz/pkg/errors"
)

func TestIntensities(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		norm   Norm
		want   []float64
	}{
		{"linear two values", []float64{10, 100}, Linear, []float64{0, 1}},
		{"linear midpoint", []float64{0, 5, 10}, Linear, []float64{0, 0.5, 1}},
		{"linear signed", []float64{-10, 0, 10}, Linear, []float64{0, 0.5, 1}},
		{"log decades", []float64{1, 10, 100}, Log, []float64{0, 0.5, 1}},
		{"max ratio", []float64{25, 50, 100}, MaxRatio, []float64{0.25, 0.5, 1}},
		{"max ratio all zero", []float64{0, 0}, MaxRatio, []float64{0, 0}},
		{"equal values linear", []float64{7, 7, 7}, Linear, []float64{1, 1, 1}},
		{"equal values log", []float64{3, 3}, Log, []float64{1, 1}},
		{"empty", nil, Linear, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Intensities(tt.values, tt.norm)
			if err != nil {
				t.Fatalf("Intensities() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > tol {
					t.Errorf("intensity[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIntensitiesMonotonic(t *testing.T) {
	densities := []float64{14.5, 8.6, 4.8, 4.3, 21.5, 122.9, 537.3, 60.2, 37.0, 38.9, 66.4, 31.9, 21.9, 18.7, 1.0, 1.2}
	for _, norm := range []Norm{Linear, Log, MaxRatio} {
		got, err := Intensities(densities, norm)
		if err != nil {
			t.Fatalf("%v: %v", norm, err)
		}
		idx := make([]int, len(densities))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return densities[idx[a]] < densities[idx[b]] })
		for k := 1; k < len(idx); k++ {
			if got[idx[k]] < got[idx[k-1]] {
				t.Errorf("%v: not monotonic at %v", norm, densities[idx[k]])
			}
		}
		for i, v := range got {
			if v < 0 || v > 1 {
				t.Errorf("%v: intensity[%d] = %v out of [0,1]", norm, i, v)
			}
		}
	}
}

func TestIntensitiesErrors(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		norm   Norm
	}{
		{"log zero", []float64{0, 10}, Log},
		{"log negative", []float64{-1, 10}, Log},
		{"max ratio negative", []float64{-1, 10}, MaxRatio},
		{"nan", []float64{math.NaN()}, Linear},
		{"inf", []float64{math.Inf(-1)}, Linear},
		{"unknown norm", []float64{1}, Norm(42)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Intensities(tt.values, tt.norm)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Intensities() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
