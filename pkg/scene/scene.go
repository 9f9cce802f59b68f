// Package scene holds backend-neutral drawing primitives.
//
// Charts build a [Scene] in pixel coordinates with the origin at the top
// left and y growing downwards, the same convention SVG uses. Sinks in
// pkg/render/sink turn a scene into SVG, PNG or PDF bytes.
package scene

import "image/color"

// Point is a position in scene coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Anchor aligns text horizontally relative to its position.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a Anchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	}
	return "start"
}

// Item is one drawable element: *Path, *Circle or *Text.
type Item interface {
	kind() string
}

// Path is a polyline, or a polygon when Closed.
// A zero Fill alpha means no fill; a zero StrokeWidth means no stroke.
type Path struct {
	ID          string
	Points      []Point
	Closed      bool
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
}

// Circle is a filled and optionally stroked disc.
type Circle struct {
	ID          string
	Center      Point
	R           float64
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
}

// Text is a single line of text. Rotate is in degrees, clockwise, around At.
// At marks the vertical centre of the line.
type Text struct {
	ID      string
	At      Point
	Content string
	Size    float64
	Bold    bool
	Anchor  Anchor
	Rotate  float64
	Color   color.NRGBA
}

func (*Path) kind() string   { return "path" }
func (*Circle) kind() string { return "circle" }
func (*Text) kind() string   { return "text" }

// Kind returns "path", "circle" or "text".
func Kind(it Item) string { return it.kind() }

// Scene is an ordered list of items painted back to front.
type Scene struct {
	Width      float64
	Height     float64
	Background color.NRGBA
	Items      []Item
}

// New creates an empty scene with a white background.
func New(width, height float64) *Scene {
	return &Scene{Width: width, Height: height, Background: color.NRGBA{255, 255, 255, 255}}
}

// Add appends items in paint order.
func (s *Scene) Add(items ...Item) { s.Items = append(s.Items, items...) }

// Texts returns the text items, in paint order.
func (s *Scene) Texts() []*Text {
	var out []*Text
	for _, it := range s.Items {
		if t, ok := it.(*Text); ok {
			out = append(out, t)
		}
	}
	return out
}

// FindText returns the first text item whose content equals content.
func (s *Scene) FindText(content string) (*Text, bool) {
	for _, t := range s.Texts() {
		if t.Content == content {
			return t, true
		}
	}
	return nil, false
}

// Paths returns the path items, in paint order.
func (s *Scene) Paths() []*Path {
	var out []*Path
	for _, it := range s.Items {
		if p, ok := it.(*Path); ok {
			out = append(out, p)
		}
	}
	return out
}
