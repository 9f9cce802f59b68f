package sink

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/matzehuels/chileviz/pkg/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes the scene. The image is Width*scale by
// Height*scale pixels.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Points(s.Width), vg.Points(s.Height)),
		vgimg.UseDPI(int(72*r.scale)),
	)
	drawScene(c, s)

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
