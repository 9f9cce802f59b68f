package sink

import (
	"image/color"
	"math"
	"sync"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/chileviz/pkg/scene"
)

var (
	fontsOnce sync.Once
	fonts     *font.Cache
)

func fontCache() *font.Cache {
	fontsOnce.Do(func() { fonts = font.NewCache(liberation.Collection()) })
	return fonts
}

func faceFor(t *scene.Text) font.Face {
	f := font.Font{Typeface: "Liberation", Variant: "Sans"}
	if t.Bold {
		f.Weight = xfont.WeightBold
	}
	return fontCache().Lookup(f, vg.Points(t.Size))
}

// drawScene replays s onto c. One scene unit is one point.
func drawScene(c vg.Canvas, s *scene.Scene) {
	h := s.Height
	flip := func(p scene.Point) vg.Point {
		return vg.Point{X: vg.Points(p.X), Y: vg.Points(h - p.Y)}
	}

	if s.Background.A > 0 {
		fillPath(c, polygon(flip, scene.Rect(0, 0, s.Width, s.Height), true), s.Background)
	}

	for _, it := range s.Items {
		switch v := it.(type) {
		case *scene.Path:
			if len(v.Points) == 0 {
				continue
			}
			p := polygon(flip, v.Points, v.Closed)
			if v.Fill.A > 0 {
				fillPath(c, p, v.Fill)
			}
			strokePath(c, p, v.Stroke, v.StrokeWidth)
		case *scene.Circle:
			var p vg.Path
			center := flip(v.Center)
			p.Move(vg.Point{X: center.X + vg.Points(v.R), Y: center.Y})
			p.Arc(center, vg.Points(v.R), 0, 2*math.Pi)
			p.Close()
			if v.Fill.A > 0 {
				fillPath(c, p, v.Fill)
			}
			strokePath(c, p, v.Stroke, v.StrokeWidth)
		case *scene.Text:
			drawText(c, flip(v.At), v)
		}
	}
}

func polygon(flip func(scene.Point) vg.Point, pts []scene.Point, closed bool) vg.Path {
	var p vg.Path
	for i, pt := range pts {
		if i == 0 {
			p.Move(flip(pt))
			continue
		}
		p.Line(flip(pt))
	}
	if closed {
		p.Close()
	}
	return p
}

func fillPath(c vg.Canvas, p vg.Path, col color.Color) {
	c.SetColor(col)
	c.Fill(p)
}

func strokePath(c vg.Canvas, p vg.Path, col color.NRGBA, width float64) {
	if width <= 0 || col.A == 0 {
		return
	}
	c.SetColor(col)
	c.SetLineWidth(vg.Points(width))
	c.SetLineDash(nil, 0)
	c.Stroke(p)
}

func drawText(c vg.Canvas, at vg.Point, t *scene.Text) {
	if t.Content == "" {
		return
	}
	face := faceFor(t)
	ext := face.Extents()

	dx := vg.Length(0)
	switch t.Anchor {
	case scene.AnchorMiddle:
		dx = -face.Width(t.Content) / 2
	case scene.AnchorEnd:
		dx = -face.Width(t.Content)
	}
	dy := -(ext.Ascent - ext.Descent) / 2

	c.Push()
	defer c.Pop()
	c.Translate(at)
	if t.Rotate != 0 {
		// Clockwise on a y-down scene is counter-clockwise in vg.
		c.Rotate(-t.Rotate * math.Pi / 180)
	}
	c.SetColor(t.Color)
	c.FillString(face, vg.Point{X: dx, Y: dy}, t.Content)
}
