package horizon

import (
	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/scene"
)

// FillColor is the colour of every band.
var FillColor = colormap.MustParse("rgba(31,119,180,0.8)")

const (
	marginLeft   = 200.0
	marginRight  = 40.0
	marginTop    = 90.0
	marginBottom = 70.0
	bandGap      = 4.0
)

// Draw renders l into a width x height scene. Bands are stacked top to
// bottom in layout order and share the period axis.
func Draw(l *Layout, width, height float64) (*scene.Scene, error) {
	s := scene.New(width, height)
	chart.Title(s, l.Title, 14)

	x0, x1 := marginLeft, width-marginRight
	plotH := height - marginTop - marginBottom
	bandH := plotH / float64(max(1, len(l.Bands)))
	px := func(i int) float64 {
		if len(l.Periods) < 2 {
			return (x0 + x1) / 2
		}
		return x0 + (x1-x0)*float64(i)/float64(len(l.Periods)-1)
	}

	for i, b := range l.Bands {
		base := marginTop + float64(i+1)*bandH
		h := bandH - bandGap
		pts := []scene.Point{{X: px(0), Y: base}}
		for j, v := range b.Normalized {
			pts = append(pts, scene.Point{X: px(j), Y: base - v*h})
		}
		pts = append(pts, scene.Point{X: px(len(b.Normalized) - 1), Y: base})
		s.Add(&scene.Path{ID: "band-" + b.Region, Points: pts, Closed: true, Fill: FillColor})
		s.Add(&scene.Path{Points: []scene.Point{{X: x0, Y: base}, {X: x1, Y: base}}, Stroke: chart.Grey, StrokeWidth: 0.5})
		s.Add(chart.Label(x0-10, base-h/2, b.Region, chart.SmallSize, scene.AnchorEnd))
	}

	axisY := height - marginBottom
	for j, p := range l.Periods {
		s.Add(&scene.Path{Points: []scene.Point{{X: px(j), Y: axisY}, {X: px(j), Y: axisY + 4}}, Stroke: chart.Black, StrokeWidth: 0.8})
		s.Add(chart.Label(px(j), axisY+16, p, chart.SmallSize, scene.AnchorMiddle))
	}
	s.Add(chart.Label((x0+x1)/2, axisY+40, "Año", chart.LabelSize, scene.AnchorMiddle))

	chart.Swatch(s, width-marginRight-230, marginTop-30, FillColor, "Nacimientos normalizados (0-1)")
	return s, nil
}
