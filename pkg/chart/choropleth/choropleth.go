// Package choropleth lays out and draws the regional map: every GeoJSON
// feature is shaded by the value of the region it names.
package choropleth

import (
	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/geo"
	"github.com/matzehuels/chileviz/pkg/layout"
	"github.com/matzehuels/chileviz/pkg/region"
)

const (
	DefaultTitle    = "Porcentaje de nacidos vivos de madre extranjera por región, Chile 2021"
	DefaultColorMap = "blues"
	DefaultLegend   = "Porcentaje de nacidos vivos de madre extranjera (%)"
	MissingLabel    = "Datos no disponibles"
	MissingColor    = "lightgrey"
)

// Options configure [Build].
type Options struct {
	Title    string
	ColorMap string     // blues when empty
	Legend   string     // colour bar label
	Window   geo.Window // DefaultWindow when zero
}

// Area is one map feature and the value joined to it.
type Area struct {
	Name      string   `json:"name"`
	Region    string   `json:"region,omitempty"` // matched dataset region
	Value     *float64 `json:"value"`            // nil when no region matched
	Intensity float64  `json:"intensity"`
	Color     string   `json:"color"`

	feature geo.Feature
}

// Layout is the computed map.
type Layout struct {
	Title     string     `json:"title"`
	ColorMap  string     `json:"colormap"`
	Legend    string     `json:"legend"`
	Window    geo.Window `json:"window"`
	Min       float64    `json:"min"`
	Max       float64    `json:"max"`
	Areas     []Area     `json:"areas"`
	Missing   int        `json:"missing"`             // features drawn without data
	Unmatched []string   `json:"unmatched,omitempty"` // regions with no feature
}

// Build left-joins ds onto the features of fc by folded region name. Each
// region's Primary is the value to shade. At least one feature must match.
func Build(fc *geo.Collection, ds *region.Dataset, opts Options) (*Layout, error) {
	if fc == nil || len(fc.Features) == 0 {
		return nil, errors.InvalidInput("choropleth needs at least one geometry feature")
	}
	if ds == nil || ds.Len() == 0 {
		return nil, errors.InvalidInput("choropleth needs at least one region")
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.ColorMap == "" {
		opts.ColorMap = DefaultColorMap
	}
	if opts.Legend == "" {
		opts.Legend = DefaultLegend
	}
	if opts.Window == (geo.Window{}) {
		opts.Window = geo.DefaultWindow
	}
	if err := opts.Window.Validate(); err != nil {
		return nil, err
	}
	cmap, err := colormap.Lookup(opts.ColorMap)
	if err != nil {
		return nil, err
	}

	l := &Layout{
		Title:    opts.Title,
		ColorMap: cmap.Name,
		Legend:   opts.Legend,
		Window:   opts.Window,
		Areas:    make([]Area, len(fc.Features)),
	}
	matched := make(map[string]bool)
	var values []float64
	var idx []int
	for i, f := range fc.Features {
		l.Areas[i] = Area{Name: f.Name, Color: MissingColor, feature: f}
		r, err := ds.Lookup(f.Name)
		if err != nil {
			l.Missing++
			continue
		}
		v := r.Primary
		l.Areas[i].Region = r.ID
		l.Areas[i].Value = &v
		matched[r.Key()] = true
		values = append(values, v)
		idx = append(idx, i)
	}
	if len(values) == 0 {
		return nil, errors.InvalidInput("no geometry feature matches a dataset region")
	}
	for _, r := range ds.Regions() {
		if !matched[r.Key()] {
			l.Unmatched = append(l.Unmatched, r.ID)
		}
	}

	intensities, err := layout.Intensities(values, layout.Linear)
	if err != nil {
		return nil, err
	}
	l.Min, l.Max = values[0], values[0]
	for j, i := range idx {
		l.Min, l.Max = min(l.Min, values[j]), max(l.Max, values[j])
		l.Areas[i].Intensity = intensities[j]
		l.Areas[i].Color = cmap.Hex(intensities[j])
	}
	return l, nil
}
