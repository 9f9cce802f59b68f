package sink

import (
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/render"
	"github.com/matzehuels/chileviz/pkg/scene"
)

// Render serializes s in the given format. layout is only used by JSON.
func Render(s *scene.Scene, f render.Format, layout any) ([]byte, error) {
	switch f {
	case render.FormatSVG:
		return RenderSVG(s), nil
	case render.FormatPNG:
		return RenderPNG(s)
	case render.FormatPDF:
		return RenderPDF(s)
	case render.FormatJSON:
		return RenderJSON(s, layout)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "scene charts cannot be rendered as %q", f)
}
