// Package petal lays out and draws the regional density chart: one polar
// petal per region, as wide as the region's share of the total area and as
// long as its population density relative to the densest region.
package petal

import (
	"fmt"
	"math"

	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/layout"
	"github.com/matzehuels/chileviz/pkg/region"
)

// Defaults.
const (
	DefaultTitle    = "Densidad Poblacional por Región de Chile"
	DefaultColorMap = "viridis"
	DefaultFloor    = 0.2
	DefaultHub      = 0.1
)

// Options configure [Build].
type Options struct {
	Title    string
	ColorMap string   // Colour map name, viridis when empty
	Floor    *float64 // Shortest petal as a fraction of the longest, DefaultFloor when nil
}

// Petal is one region's sector.
type Petal struct {
	Region     string  `json:"region"`
	Label      string  `json:"label"`
	Code       string  `json:"code"`
	Area       float64 `json:"area"`
	Population float64 `json:"population"`
	Density    float64 `json:"density"`
	Start      float64 `json:"start"` // radians, counter-clockwise from 3 o'clock
	Width      float64 `json:"width"`
	Intensity  float64 `json:"intensity"` // log-normalized density, drives colour
	Ratio      float64 `json:"ratio"`     // density / max density
	Radius     float64 `json:"radius"`    // petal length in [Floor, 1]
	Color      string  `json:"color"`
}

// Mid returns the angle through the middle of the petal.
func (p Petal) Mid() float64 { return p.Start + p.Width/2 }

// Layout is the computed petal chart.
type Layout struct {
	Title      string  `json:"title"`
	ColorMap   string  `json:"colormap"`
	Hub        float64 `json:"hub"`
	Floor      float64 `json:"floor"`
	MinDensity float64 `json:"min_density"`
	MaxDensity float64 `json:"max_density"`
	Petals     []Petal `json:"petals"`
}

// Density returns population per unit area rounded to two decimals.
// area must be positive.
func Density(population, area float64) (float64, error) {
	if err := errors.ValidatePositive("area", area); err != nil {
		return 0, err
	}
	return math.Round(population/area*100) / 100, nil
}

// Build computes the petals of ds. Each region's Primary is its area and
// Secondary its population. Every area and every density must be positive.
func Build(ds *region.Dataset, opts Options) (*Layout, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.InvalidInput("petal chart needs at least one region")
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.ColorMap == "" {
		opts.ColorMap = DefaultColorMap
	}
	floor := DefaultFloor
	if opts.Floor != nil {
		floor = *opts.Floor
	}
	cmap, err := colormap.Lookup(opts.ColorMap)
	if err != nil {
		return nil, err
	}

	regions := ds.Regions()
	densities := make([]float64, len(regions))
	for i, r := range regions {
		d, err := Density(r.Secondary, r.Primary)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.ID, err)
		}
		densities[i] = d
	}

	segs, err := layout.PartitionRegions(regions, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	colors, err := layout.Intensities(densities, layout.Log)
	if err != nil {
		return nil, err
	}
	ratios, err := layout.Intensities(densities, layout.MaxRatio)
	if err != nil {
		return nil, err
	}
	radii, err := layout.Radii(ratios, floor)
	if err != nil {
		return nil, err
	}

	l := &Layout{
		Title:      opts.Title,
		ColorMap:   cmap.Name,
		Hub:        DefaultHub,
		Floor:      floor,
		MinDensity: math.Inf(1),
		Petals:     make([]Petal, len(regions)),
	}
	for i, r := range regions {
		l.MinDensity = math.Min(l.MinDensity, densities[i])
		l.MaxDensity = math.Max(l.MaxDensity, densities[i])
		l.Petals[i] = Petal{
			Region:     r.ID,
			Label:      r.Label,
			Code:       r.DisplayCode(),
			Area:       r.Primary,
			Population: r.Secondary,
			Density:    densities[i],
			Start:      segs[i].Start,
			Width:      segs[i].Width,
			Intensity:  colors[i],
			Ratio:      ratios[i],
			Radius:     radii[i],
			Color:      cmap.Hex(colors[i]),
		}
	}
	return l, nil
}
