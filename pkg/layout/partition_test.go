package layout

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/region"
)

const tol = 1e-9

func TestPartition(t *testing.T) {
	tests := []struct {
		name       string
		magnitudes []float64
		span       float64
		want       []Segment
	}{
		{
			name:       "two regions unit span",
			magnitudes: []float64{10, 30},
			span:       1,
			want: []Segment{
				{Index: 0, Start: 0, Width: 0.25},
				{Index: 1, Start: 0.25, Width: 0.75},
			},
		},
		{
			name:       "single region takes the span",
			magnitudes: []float64{5},
			span:       100,
			want:       []Segment{{Index: 0, Start: 0, Width: 100}},
		},
		{
			name:       "zero magnitude keeps its slot",
			magnitudes: []float64{1, 0, 1},
			span:       2,
			want: []Segment{
				{Index: 0, Start: 0, Width: 1},
				{Index: 1, Start: 1, Width: 0},
				{Index: 2, Start: 1, Width: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Partition(tt.magnitudes, tt.span)
			if err != nil {
				t.Fatalf("Partition() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Partition() returned %d segments, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Index != tt.want[i].Index ||
					math.Abs(got[i].Start-tt.want[i].Start) > tol ||
					math.Abs(got[i].Width-tt.want[i].Width) > tol {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPartitionInvariants(t *testing.T) {
	// Areas in thousands of km² as the petal chart uses them.
	areas := []float64{16.87, 42.23, 126.05, 75.18, 40.58, 16.40, 15.40, 16.39, 30.30, 13.18, 24.02, 31.84, 18.43, 48.58, 108.49, 132.30}

	for _, span := range []float64{1, 2 * math.Pi, 800} {
		segs, err := Partition(areas, span)
		if err != nil {
			t.Fatal(err)
		}
		var got float64
		for _, s := range segs {
			got += s.Width
		}
		if math.Abs(got-span) > tol*span {
			t.Errorf("span %v: widths sum to %v", span, got)
		}
		if segs[0].Start != 0 {
			t.Errorf("span %v: first start = %v", span, segs[0].Start)
		}
		if end := segs[len(segs)-1].End(); end != span {
			t.Errorf("span %v: last end = %v, want exactly %v", span, end, span)
		}
		for i := 1; i < len(segs); i++ {
			if math.Abs(segs[i-1].End()-segs[i].Start) > tol {
				t.Errorf("span %v: gap between segment %d and %d", span, i-1, i)
			}
		}
	}
}

func TestPartitionTrailingZeros(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 0; n < 20000; n++ {
		mags := make([]float64, 2+rng.IntN(15))
		for i := range mags[:len(mags)-1] {
			mags[i] = rng.Float64() * 100
		}
		mags[0] += 0.01
		if len(mags) > 2 && rng.IntN(2) == 0 {
			mags[len(mags)-2] = 0
		}

		segs, err := Partition(mags, 1)
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range segs {
			if s.Width < 0 {
				t.Fatalf("%v: segment %d has negative width %v", mags, i, s.Width)
			}
			if i > 0 && s.Start < segs[i-1].Start {
				t.Fatalf("%v: segment %d starts before segment %d", mags, i, i-1)
			}
			if s.End() > 1+tol {
				t.Fatalf("%v: segment %d ends past the span at %v", mags, i, s.End())
			}
		}
		if last := segs[len(segs)-1]; last.Width != 0 || last.End() != 1 {
			t.Fatalf("%v: trailing empty segment = %+v", mags, last)
		}
	}
}

func TestPartitionErrors(t *testing.T) {
	tests := []struct {
		name       string
		magnitudes []float64
		span       float64
	}{
		{"negative magnitude", []float64{1, -1}, 1},
		{"nan magnitude", []float64{math.NaN()}, 1},
		{"inf magnitude", []float64{math.Inf(1)}, 1},
		{"zero total", []float64{0, 0}, 1},
		{"empty", nil, 1},
		{"zero span", []float64{1}, 0},
		{"negative span", []float64{1}, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Partition(tt.magnitudes, tt.span)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Partition() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestPartitionRegions(t *testing.T) {
	a, _ := region.New("A", "", "", 10, 0)
	b, _ := region.New("B", "", "", 30, 0)

	segs, err := PartitionRegions([]region.Region{a, b}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if segs[0].ID != "A" || segs[1].ID != "B" {
		t.Errorf("IDs = %q, %q", segs[0].ID, segs[1].ID)
	}
	if segs[1].Start != 0.25 || segs[1].Width != 0.75 {
		t.Errorf("B = %+v", segs[1])
	}
}

func TestSegmentMid(t *testing.T) {
	s := Segment{Start: 1, Width: 2}
	if s.Mid() != 2 || s.End() != 3 {
		t.Errorf("Mid() = %v, End() = %v", s.Mid(), s.End())
	}
}
