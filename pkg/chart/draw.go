package chart

import (
	"image/color"
	"math"

	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/layout"
	"github.com/matzehuels/chileviz/pkg/scene"
)

// Shared colours.
var (
	Black = color.NRGBA{0, 0, 0, 255}
	White = color.NRGBA{255, 255, 255, 255}
	Grey  = color.NRGBA{90, 90, 90, 255}
)

const (
	TitleSize = 20.0
	TitleTop  = 40.0
	LabelSize = 12.0
	SmallSize = 10.0

	colorBarSteps = 64
)

// Title draws text centred at the top of the scene.
func Title(s *scene.Scene, text string, size float64) {
	if text == "" {
		return
	}
	s.Add(&scene.Text{
		ID:      "title",
		At:      scene.Point{X: s.Width / 2, Y: TitleTop},
		Content: text,
		Size:    size,
		Anchor:  scene.AnchorMiddle,
		Color:   Black,
	})
}

// Label returns a plain black text item.
func Label(x, y float64, content string, size float64, anchor scene.Anchor) *scene.Text {
	return &scene.Text{At: scene.Point{X: x, Y: y}, Content: content, Size: size, Anchor: anchor, Color: Black}
}

// BarTick is a labelled position along a colour bar, T in [0, 1].
type BarTick struct {
	T     float64
	Label string
}

// LinearTicks returns labelled ticks for a colour bar spanning lo..hi.
// format renders each tick value.
func LinearTicks(lo, hi float64, format func(float64) string) []BarTick {
	if hi <= lo {
		return []BarTick{{T: 1, Label: format(hi)}}
	}
	var out []BarTick
	for _, tk := range layout.MajorTicks(layout.Ticks(lo, hi)) {
		if tk.Value < lo || tk.Value > hi {
			continue
		}
		out = append(out, BarTick{T: (tk.Value - lo) / (hi - lo), Label: format(tk.Value)})
	}
	return out
}

// ColorBar draws a gradient of m inside the rectangle (x, y, w, h). A
// vertical bar runs from 0 at the bottom to 1 at the top; a horizontal one
// from 0 at the left to 1 at the right. Tick labels go right of a vertical
// bar and below a horizontal one; title goes on the opposite side.
func ColorBar(s *scene.Scene, m *colormap.Map, x, y, w, h float64, vertical bool, ticks []BarTick, title string) {
	for i, c := range m.Sample(colorBarSteps) {
		t0 := float64(i) / colorBarSteps
		step := 1.0 / colorBarSteps
		var pts []scene.Point
		if vertical {
			pts = scene.Rect(x, y+h*(1-t0-step), w, h*step+0.5)
		} else {
			pts = scene.Rect(x+w*t0, y, w*step+0.5, h)
		}
		s.Add(&scene.Path{Points: pts, Closed: true, Fill: c})
	}
	s.Add(&scene.Path{Points: scene.Rect(x, y, w, h), Closed: true, Stroke: Black, StrokeWidth: 0.5})

	for _, tk := range ticks {
		if vertical {
			ty := y + h*(1-tk.T)
			s.Add(&scene.Path{Points: []scene.Point{{X: x + w, Y: ty}, {X: x + w + 4, Y: ty}}, Stroke: Black, StrokeWidth: 0.8})
			s.Add(Label(x+w+7, ty, tk.Label, SmallSize, scene.AnchorStart))
		} else {
			tx := x + w*tk.T
			s.Add(&scene.Path{Points: []scene.Point{{X: tx, Y: y + h}, {X: tx, Y: y + h + 4}}, Stroke: Black, StrokeWidth: 0.8})
			s.Add(Label(tx, y+h+14, tk.Label, SmallSize, scene.AnchorMiddle))
		}
	}

	if title == "" {
		return
	}
	if vertical {
		t := Label(x+w+60, y+h/2, title, LabelSize, scene.AnchorMiddle)
		t.Rotate = 90
		s.Add(t)
	} else {
		s.Add(Label(x+w/2, y-12, title, LabelSize, scene.AnchorMiddle))
	}
}

// Swatch draws a small legend square with its label to the right.
func Swatch(s *scene.Scene, x, y float64, fill color.NRGBA, label string) {
	s.Add(&scene.Path{Points: scene.Rect(x, y-7, 14, 14), Closed: true, Fill: fill, Stroke: Grey, StrokeWidth: 0.5})
	s.Add(Label(x+20, y, label, LabelSize, scene.AnchorStart))
}

// LogTicks returns colour bar ticks at 1, 2 and 5 times powers of ten
// between lo and hi on a logarithmic scale. Both bounds must be positive.
func LogTicks(lo, hi float64, format func(float64) string) []BarTick {
	if lo <= 0 || hi <= lo {
		return []BarTick{{T: 1, Label: format(hi)}}
	}
	span := math.Log(hi) - math.Log(lo)
	var out []BarTick
	for p := math.Floor(math.Log10(lo)); p <= math.Ceil(math.Log10(hi)); p++ {
		for _, m := range []float64{1, 2, 5} {
			v := m * math.Pow(10, p)
			if v < lo || v > hi {
				continue
			}
			out = append(out, BarTick{T: (math.Log(v) - math.Log(lo)) / span, Label: format(v)})
		}
	}
	return out
}
