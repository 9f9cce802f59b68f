// Package horizon lays out and draws the births-per-region chart: one
// stacked band per region, each normalized against its own minimum and
// maximum so the shape of every series is comparable regardless of size.
package horizon

import (
	"slices"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/layout"
	"github.com/matzehuels/chileviz/pkg/region"
)

const DefaultTitle = "Evolución relativa de nacimientos por región en Chile"

// DefaultGroup lists the regions merged into [region.OtherRegions] when no
// group is configured. Members absent from the data are ignored.
var DefaultGroup = []string{
	"Aysén", "Magallanes", "Los Ríos", "Arica y Parinacota", "Ñuble",
	"Atacama", "Tarapacá", "Coquimbo", "Los Lagos",
}

// Options configure [Build].
type Options struct {
	Title string
	// Group lists the regions to merge. Nil selects DefaultGroup; every
	// explicitly listed region must exist.
	Group []string
	// NoGroup keeps every region as its own band.
	NoGroup bool
}

// Band is one region's normalized series.
type Band struct {
	Region     string    `json:"region"`
	Values     []float64 `json:"values"`
	Normalized []float64 `json:"normalized"`
	Min        float64   `json:"min"`
	Max        float64   `json:"max"`
}

// Layout is the computed horizon chart.
type Layout struct {
	Title   string   `json:"title"`
	Periods []string `json:"periods"`
	Grouped []string `json:"grouped,omitempty"`
	Bands   []Band   `json:"bands"`
}

// Build groups and normalizes s. A flat series normalizes to all ones.
func Build(s *region.Series, opts Options) (*Layout, error) {
	if s == nil || len(s.Rows) == 0 {
		return nil, errors.InvalidInput("horizon chart needs at least one region")
	}
	if len(s.Periods) == 0 {
		return nil, errors.InvalidInput("horizon chart needs at least one period")
	}

	group := opts.Group
	if group == nil {
		group = present(s, DefaultGroup)
	}
	if opts.NoGroup {
		group = nil
	}
	grouped, err := s.Group(region.OtherRegions, group)
	if err != nil {
		return nil, err
	}

	l := &Layout{
		Title:   opts.Title,
		Periods: slices.Clone(grouped.Periods),
		Grouped: slices.Clone(group),
	}
	if l.Title == "" {
		l.Title = DefaultTitle
		if n := len(l.Periods); n > 1 {
			l.Title += " (" + l.Periods[0] + "-" + l.Periods[n-1] + ")"
		}
	}
	for _, row := range grouped.Rows {
		norm, err := layout.Intensities(row.Values, layout.Linear)
		if err != nil {
			return nil, err
		}
		b := Band{Region: row.Region, Values: slices.Clone(row.Values), Normalized: norm}
		b.Min, b.Max = slices.Min(row.Values), slices.Max(row.Values)
		l.Bands = append(l.Bands, b)
	}
	return l, nil
}

func present(s *region.Series, names []string) []string {
	var out []string
	for _, n := range names {
		if _, err := s.Row(n); err == nil {
			out = append(out, n)
		}
	}
	return out
}
