package sink

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/matzehuels/chileviz/pkg/scene"
)

// RenderPDF draws the scene onto a single PDF page of the scene's size.
func RenderPDF(s *scene.Scene) ([]byte, error) {
	c := vgpdf.New(vg.Points(s.Width), vg.Points(s.Height))
	drawScene(c, s)

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}
