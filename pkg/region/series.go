package region

import (
	"fmt"
	"slices"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// OtherRegions is the label of the band that collects grouped small regions.
const OtherRegions = "Otras regiones"

// SeriesRow holds one region's values, aligned with [Series.Periods].
type SeriesRow struct {
	Region string
	Values []float64
}

// Series is a table of values per region and period (e.g. births per year).
// Rows keep input order; periods are sorted ascending.
type Series struct {
	Periods []string
	Rows    []SeriesRow
}

// NewSeries aligns per-region period maps on the sorted union of periods.
// Periods a region does not report are filled with 0.
func NewSeries(names []string, values []map[string]float64) (*Series, error) {
	if len(names) != len(values) {
		return nil, errors.InvalidInput("series has %d regions but %d value sets", len(names), len(values))
	}

	seen := make(map[string]bool)
	for _, m := range values {
		for p := range m {
			seen[p] = true
		}
	}
	periods := make([]string, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	slices.Sort(periods)

	s := &Series{Periods: periods}
	keys := make(map[string]bool, len(names))
	for i, name := range names {
		if err := errors.ValidateName(name); err != nil {
			return nil, err
		}
		if keys[Key(name)] {
			return nil, errors.InvalidInput("duplicate region %q in series", name)
		}
		keys[Key(name)] = true

		row := SeriesRow{Region: name, Values: make([]float64, len(periods))}
		for j, p := range periods {
			v, ok := values[i][p]
			if !ok {
				continue
			}
			if err := errors.ValidateMagnitude(fmt.Sprintf("%s value for %s", p, name), v); err != nil {
				return nil, err
			}
			row.Values[j] = v
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// Row returns the values of the named region.
func (s *Series) Row(name string) (SeriesRow, error) {
	k := Key(name)
	for _, r := range s.Rows {
		if Key(r.Region) == k {
			return r, nil
		}
	}
	return SeriesRow{}, errors.MissingKey("region", name)
}

// Group sums the listed regions into a single row labelled label, appended
// after the remaining rows. Every member must exist in the series.
func (s *Series) Group(label string, members []string) (*Series, error) {
	if len(members) == 0 {
		return s, nil
	}
	drop := make(map[string]bool, len(members))
	for _, m := range members {
		if _, err := s.Row(m); err != nil {
			return nil, err
		}
		drop[Key(m)] = true
	}

	out := &Series{Periods: slices.Clone(s.Periods)}
	merged := SeriesRow{Region: label, Values: make([]float64, len(s.Periods))}
	for _, r := range s.Rows {
		if !drop[Key(r.Region)] {
			out.Rows = append(out.Rows, SeriesRow{Region: r.Region, Values: slices.Clone(r.Values)})
			continue
		}
		for j, v := range r.Values {
			merged.Values[j] += v
		}
	}
	out.Rows = append(out.Rows, merged)
	return out, nil
}
