package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// Format is an output format name.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// SceneFormats are the formats every scene-based chart supports.
var SceneFormats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormats splits a comma-separated list such as "svg,png", trimming
// spaces and dropping duplicates. Each entry must be in allowed.
func ParseFormats(s string, allowed []Format) ([]Format, error) {
	var out []Format
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		if !slices.Contains(allowed, f) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", f, Join(allowed))
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// Join renders formats as "svg, png, pdf".
func Join(fs []Format) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
