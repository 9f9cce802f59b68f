package sankey

import (
	"image/color"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/flow"
	"github.com/matzehuels/chileviz/pkg/locale"
	"github.com/matzehuels/chileviz/pkg/scene"
)

// Band and node colours.
var (
	PrimaryColor   = colormap.MustParse("rgba(0,128,0,0.6)")
	SecondaryColor = colormap.MustParse("rgba(255,165,0,0.6)")
	OtherColor     = colormap.MustParse("rgba(128,128,128,0.4)")
	NodeColor      = colormap.MustParse("rgba(0,0,150,0.3)")
)

const (
	marginX   = 300.0
	marginTop = 90.0
	marginBot = 90.0
	thickness = 20.0
)

// LinkColor returns the band colour of a link with the given rank.
func LinkColor(rank int) color.NRGBA {
	switch rank {
	case 0:
		return PrimaryColor
	case 1:
		return SecondaryColor
	}
	return OtherColor
}

// Caveat describes the share of emigrants the diagram leaves out, or
// returns "" when the links account for everyone.
func Caveat(l *Layout) string {
	if l.Remainder <= 0 || l.Total <= 0 {
		return ""
	}
	return "Se representa el " + locale.Percent(l.Coverage*100) + " de los emigrantes (" +
		locale.Number(l.Flow, 0) + " de " + locale.Number(l.Total, 0) +
		"); el resto va a otros destinos no informados."
}

// Draw renders l into a width x height scene.
func Draw(l *Layout, width, height float64) (*scene.Scene, error) {
	colH := height - marginTop - marginBot
	left := marginX
	right := width - marginX - thickness
	if colH <= 0 || right <= left+thickness {
		return nil, errors.InvalidInput("sankey frame %vx%v is too small", width, height)
	}
	y := func(u float64) float64 { return marginTop + u*colH }

	s := scene.New(width, height)
	chart.Title(s, l.Title, chart.TitleSize)

	for _, lk := range l.Links {
		s.Add(&scene.Path{
			ID:     lk.Origin + " -> " + lk.Destination,
			Points: scene.Band(left+thickness, y(lk.Y0a), y(lk.Y0b), right, y(lk.Y1a), y(lk.Y1b)),
			Closed: true,
			Fill:   LinkColor(lk.Rank),
		})
	}
	for _, n := range l.Nodes {
		x, anchor, lx := left, scene.AnchorEnd, left-6
		if n.Row == flow.DestinationRow {
			x, anchor, lx = right, scene.AnchorStart, right+thickness+6
		}
		s.Add(&scene.Path{
			ID:          n.ID,
			Points:      scene.Rect(x, y(n.Y), thickness, n.H*colH),
			Closed:      true,
			Fill:        NodeColor,
			Stroke:      chart.Black,
			StrokeWidth: 0.5,
		})
		s.Add(chart.Label(lx, y(n.Y+n.H/2), n.ID, chart.SmallSize, anchor))
	}

	chart.Swatch(s, 40, marginTop, PrimaryColor, "Destino principal")
	chart.Swatch(s, 40, marginTop+22, SecondaryColor, "Destino secundario")

	if c := Caveat(l); c != "" {
		t := chart.Label(width/2, height-marginBot/2, c, chart.LabelSize, scene.AnchorMiddle)
		t.ID = "caveat"
		t.Color = chart.Grey
		s.Add(t)
	}
	return s, nil
}
