package layout

import (
	"fmt"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/region"
)

// Segment is one region's share of a partitioned span.
type Segment struct {
	Index int     // Position in the input
	ID    string  // Region ID, empty when partitioning bare magnitudes
	Start float64 // Offset from the beginning of the span
	Width float64 // Proportional share of the span
}

// End returns Start + Width.
func (s Segment) End() float64 { return s.Start + s.Width }

// Mid returns the centre of the segment.
func (s Segment) Mid() float64 { return s.Start + s.Width/2 }

// Partition divides span among magnitudes proportionally, in input order.
//
// Every magnitude must be finite and non-negative, their sum must be
// positive and span must be positive; otherwise an INVALID_INPUT error is
// returned. The returned segments are contiguous and the last one ends
// exactly at span.
func Partition(magnitudes []float64, span float64) ([]Segment, error) {
	if err := errors.ValidatePositive("span", span); err != nil {
		return nil, err
	}
	var total float64
	for i, m := range magnitudes {
		if err := errors.ValidateMagnitude(fmt.Sprintf("magnitude %d", i), m); err != nil {
			return nil, err
		}
		total += m
	}
	if total == 0 {
		return nil, errors.InvalidInput("cannot partition: magnitudes sum to zero")
	}

	segs := make([]Segment, len(magnitudes))
	var start float64
	lastPositive := 0
	for i, m := range magnitudes {
		w := m / total * span
		segs[i] = Segment{Index: i, Start: start, Width: w}
		start += w
		if m > 0 {
			lastPositive = i
		}
	}
	// The last non-empty segment absorbs rounding; empty ones after it sit at span.
	last := &segs[lastPositive]
	last.Width = max(span-last.Start, 0)
	for i := lastPositive + 1; i < len(segs); i++ {
		segs[i].Start, segs[i].Width = span, 0
	}
	return segs, nil
}

// PartitionRegions partitions span by each region's Primary magnitude and
// labels the segments with region IDs.
func PartitionRegions(regions []region.Region, span float64) ([]Segment, error) {
	mags := make([]float64, len(regions))
	for i, r := range regions {
		mags[i] = r.Primary
	}
	segs, err := Partition(mags, span)
	if err != nil {
		return nil, err
	}
	for i := range segs {
		segs[i].ID = regions[i].ID
	}
	return segs, nil
}
