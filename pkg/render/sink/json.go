package sink

import (
	"encoding/json"

	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/scene"
)

type jsonOutput struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Background string     `json:"background,omitempty"`
	Layout     any        `json:"layout,omitempty"`
	Items      []jsonItem `json:"items"`
}

type jsonItem struct {
	Kind        string        `json:"kind"`
	ID          string        `json:"id,omitempty"`
	Points      []scene.Point `json:"points,omitempty"`
	Closed      bool          `json:"closed,omitempty"`
	Center      *scene.Point  `json:"center,omitempty"`
	R           float64       `json:"r,omitempty"`
	Fill        string        `json:"fill,omitempty"`
	FillOpacity float64       `json:"fill_opacity,omitempty"`
	Stroke      string        `json:"stroke,omitempty"`
	StrokeWidth float64       `json:"stroke_width,omitempty"`
	Text        string        `json:"text,omitempty"`
	Size        float64       `json:"size,omitempty"`
	Bold        bool          `json:"bold,omitempty"`
	Anchor      string        `json:"anchor,omitempty"`
	Rotate      float64       `json:"rotate,omitempty"`
}

// RenderJSON exports the scene and the chart layout that produced it as a
// pretty-printed JSON document. layout may be nil.
func RenderJSON(s *scene.Scene, layout any) ([]byte, error) {
	out := jsonOutput{
		Width:  s.Width,
		Height: s.Height,
		Layout: layout,
		Items:  make([]jsonItem, 0, len(s.Items)),
	}
	if s.Background.A > 0 {
		out.Background = colormap.Hex(s.Background)
	}

	for _, it := range s.Items {
		ji := jsonItem{Kind: scene.Kind(it)}
		switch v := it.(type) {
		case *scene.Path:
			ji.ID, ji.Points, ji.Closed = v.ID, v.Points, v.Closed
			ji.Fill, ji.FillOpacity = jsonColor(v.Fill.A, colormap.Hex(v.Fill), colormap.Opacity(v.Fill))
			if v.StrokeWidth > 0 && v.Stroke.A > 0 {
				ji.Stroke, ji.StrokeWidth = colormap.Hex(v.Stroke), v.StrokeWidth
			}
		case *scene.Circle:
			center := v.Center
			ji.ID, ji.Center, ji.R = v.ID, &center, v.R
			ji.Fill, ji.FillOpacity = jsonColor(v.Fill.A, colormap.Hex(v.Fill), colormap.Opacity(v.Fill))
		case *scene.Text:
			ji.ID, ji.Text, ji.Size, ji.Bold = v.ID, v.Content, v.Size, v.Bold
			ji.Anchor, ji.Rotate = v.Anchor.String(), v.Rotate
			ji.Points = []scene.Point{v.At}
			ji.Fill = colormap.Hex(v.Color)
		}
		out.Items = append(out.Items, ji)
	}
	return json.MarshalIndent(out, "", "  ")
}

func jsonColor(alpha uint8, hex string, opacity float64) (string, float64) {
	if alpha == 0 {
		return "", 0
	}
	if alpha == 255 {
		return hex, 0
	}
	return hex, opacity
}
