package petal

import (
	"image/color"
	"math"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/locale"
	"github.com/matzehuels/chileviz/pkg/scene"
)

const (
	petalAlpha  = 204 // 0.8
	labelOffset = 0.02
	legendLine  = 13.0
)

var hubColor = color.NRGBA{0x33, 0x33, 0x33, 179}

// Draw renders l into a width x height scene: legend on the left, petals in
// the middle and the density colour bar on the right.
func Draw(l *Layout, width, height float64) (*scene.Scene, error) {
	cmap, err := colormap.Lookup(l.ColorMap)
	if err != nil {
		return nil, err
	}
	s := scene.New(width, height)
	chart.Title(s, l.Title, chart.TitleSize)

	center := scene.Point{X: width * 0.52, Y: height * 0.54}
	// Longest petal plus its label must fit.
	unit := math.Min(width*0.3, height*0.38) / (l.Hub + 1 + labelOffset + 0.1)

	for _, p := range l.Petals {
		fill := colormap.MustParse(p.Color)
		fill.A = petalAlpha
		s.Add(&scene.Path{
			ID:          "petal-" + p.Code,
			Points:      scene.Wedge(center, l.Hub*unit, (l.Hub+p.Radius)*unit, p.Start, p.Start+p.Width),
			Closed:      true,
			Fill:        fill,
			Stroke:      chart.White,
			StrokeWidth: 1,
		})
	}
	for _, p := range l.Petals {
		at := scene.Polar(center, (l.Hub+p.Radius+labelOffset)*unit+6, p.Mid())
		s.Add(&scene.Text{
			ID:      "code-" + p.Code,
			At:      at,
			Content: p.Code,
			Size:    chart.SmallSize,
			Bold:    true,
			Anchor:  scene.AnchorMiddle,
			Rotate:  90 - p.Mid()*180/math.Pi,
			Color:   chart.Black,
		})
	}

	s.Add(&scene.Circle{ID: "hub", Center: center, R: l.Hub * unit, Fill: hubColor})
	s.Add(&scene.Text{ID: "hub-label", At: center, Content: "CHILE", Size: chart.LabelSize, Bold: true, Anchor: scene.AnchorMiddle, Color: chart.White})

	drawLegend(s, l, height)

	barH := height * 0.4
	ticks := chart.LogTicks(l.MinDensity, l.MaxDensity, func(v float64) string { return locale.Number(v, 0) })
	chart.ColorBar(s, cmap, width*0.86, (height-barH)/2, 22, barH, true, ticks, "Densidad (hab/km²)")
	return s, nil
}

func drawLegend(s *scene.Scene, l *Layout, height float64) {
	x, y := 40.0, 90.0
	step := math.Min(3*legendLine+8, (height-y-20)/float64(max(1, len(l.Petals))))
	for _, p := range l.Petals {
		fill := colormap.MustParse(p.Color)
		s.Add(&scene.Circle{Center: scene.Point{X: x + 6, Y: y}, R: 6, Fill: fill})
		lines := []string{
			p.Code + ". " + p.Label,
			locale.Number(p.Density, 2) + " hab/km²",
			locale.Number(p.Area, 2) + " km²",
		}
		for i, line := range lines {
			s.Add(chart.Label(x+18, y+float64(i)*legendLine, line, 9, scene.AnchorStart))
		}
		y += step
	}
}
