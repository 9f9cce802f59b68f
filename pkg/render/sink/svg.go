package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/scene"
)

const fontFamily = "Liberation Sans, Arial, Helvetica, sans-serif"

// RenderSVG writes s as a standalone SVG document.
func RenderSVG(s *scene.Scene) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		s.Width, s.Height, s.Width, s.Height, fontFamily)

	if s.Background.A > 0 {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f"%s/>`+"\n", s.Width, s.Height, paint("fill", s.Background))
	}
	for _, it := range s.Items {
		switch v := it.(type) {
		case *scene.Path:
			writePath(&buf, v)
		case *scene.Circle:
			writeCircle(&buf, v)
		case *scene.Text:
			writeText(&buf, v)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePath(buf *bytes.Buffer, p *scene.Path) {
	if len(p.Points) == 0 {
		return
	}
	var d strings.Builder
	for i, pt := range p.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&d, "%s%.2f %.2f ", cmd, pt.X, pt.Y)
	}
	if p.Closed {
		d.WriteString("Z")
	}
	fmt.Fprintf(buf, `  <path%s d="%s"%s%s/>`+"\n",
		idAttr(p.ID), strings.TrimSpace(d.String()), fillAttr(p.Fill), strokeAttr(p.Stroke, p.StrokeWidth))
}

func writeCircle(buf *bytes.Buffer, c *scene.Circle) {
	fmt.Fprintf(buf, `  <circle%s cx="%.2f" cy="%.2f" r="%.2f"%s%s/>`+"\n",
		idAttr(c.ID), c.Center.X, c.Center.Y, c.R, fillAttr(c.Fill), strokeAttr(c.Stroke, c.StrokeWidth))
}

func writeText(buf *bytes.Buffer, t *scene.Text) {
	var attrs strings.Builder
	fmt.Fprintf(&attrs, ` x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s" dominant-baseline="central"`,
		t.At.X, t.At.Y, t.Size, t.Anchor)
	if t.Bold {
		attrs.WriteString(` font-weight="bold"`)
	}
	if t.Rotate != 0 {
		fmt.Fprintf(&attrs, ` transform="rotate(%.2f %.2f %.2f)"`, t.Rotate, t.At.X, t.At.Y)
	}
	fmt.Fprintf(buf, `  <text%s%s%s>%s</text>`+"\n", idAttr(t.ID), attrs.String(), paint("fill", t.Color), escapeXML(t.Content))
}

func fillAttr(c color.NRGBA) string {
	if c.A == 0 {
		return ` fill="none"`
	}
	return paint("fill", c)
}

func strokeAttr(c color.NRGBA, width float64) string {
	if width <= 0 || c.A == 0 {
		return ""
	}
	return paint("stroke", c) + fmt.Sprintf(` stroke-width="%.2f"`, width)
}

// paint writes a colour attribute, adding a separate opacity attribute for
// translucent colours.
func paint(attr string, c color.NRGBA) string {
	s := fmt.Sprintf(` %s="%s"`, attr, colormap.Hex(c))
	if c.A < 255 {
		s += fmt.Sprintf(` %s-opacity="%.2f"`, attr, colormap.Opacity(c))
	}
	return s
}

func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf(` id="%s"`, escapeXML(id))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
