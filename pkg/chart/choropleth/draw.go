package choropleth

import (
	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/geo"
	"github.com/matzehuels/chileviz/pkg/locale"
	"github.com/matzehuels/chileviz/pkg/scene"
)

const (
	mapTop    = 70.0
	mapBottom = 170.0
	mapSide   = 40.0
)

// Draw renders l into a width x height scene with the map on top and a
// horizontal colour bar underneath.
func Draw(l *Layout, width, height float64) (*scene.Scene, error) {
	cmap, err := colormap.Lookup(l.ColorMap)
	if err != nil {
		return nil, err
	}
	proj, err := geo.NewProjection(l.Window, mapSide, mapTop, width-2*mapSide, height-mapTop-mapBottom)
	if err != nil {
		return nil, err
	}

	s := scene.New(width, height)
	chart.Title(s, l.Title, chart.LabelSize+2)

	for _, a := range l.Areas {
		fill := colormap.MustParse(a.Color)
		for _, ring := range proj.Rings(a.feature) {
			s.Add(&scene.Path{
				ID:          a.Name,
				Points:      ring,
				Closed:      true,
				Fill:        fill,
				Stroke:      chart.Black,
				StrokeWidth: 0.5,
			})
		}
	}

	barW := width * 0.6
	barY := height - mapBottom + 60
	ticks := chart.LinearTicks(l.Min, l.Max, func(v float64) string { return locale.Number(v, 1) })
	chart.ColorBar(s, cmap, (width-barW)/2, barY, barW, 16, false, ticks, l.Legend)

	if l.Missing > 0 {
		chart.Swatch(s, (width-barW)/2, barY+60, colormap.MustParse(MissingColor), MissingLabel)
	}
	return s, nil
}
