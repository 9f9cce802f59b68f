package colormap

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chileviz/pkg/errors"
)

var named = map[string]color.NRGBA{
	"black":     {0, 0, 0, 255},
	"white":     {255, 255, 255, 255},
	"lightgrey": {211, 211, 211, 255},
	"lightgray": {211, 211, 211, 255},
	"grey":      {128, 128, 128, 255},
	"gray":      {128, 128, 128, 255},
	"none":      {},
}

// Parse reads a colour written as "#rrggbb", "rgb(r,g,b)", "rgba(r,g,b,a)"
// (alpha in [0,1]) or one of a few CSS names.
func Parse(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse colour %q", s)
		}
		return toNRGBA(c), nil
	}

	var body string
	var want int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body, want = s[5:len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body, want = s[4:len(s)-1], 3
	default:
		return color.NRGBA{}, errors.InvalidInput("unrecognized colour %q", s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != want {
		return color.NRGBA{}, errors.InvalidInput("colour %q needs %d components", s, want)
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "colour %q component %d", s, i)
		}
		ch[i] = v
	}
	for i := 0; i < 3; i++ {
		if ch[i] < 0 || ch[i] > 255 {
			return color.NRGBA{}, errors.InvalidInput("colour %q component %d out of range", s, i)
		}
	}
	if ch[3] < 0 || ch[3] > 1 {
		return color.NRGBA{}, errors.InvalidInput("colour %q alpha out of range", s)
	}
	return color.NRGBA{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2]), A: uint8(ch[3]*255 + 0.5)}, nil
}

// MustParse is like [Parse] but panics on error. Use it for constants.
func MustParse(s string) color.NRGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the RGB part of c as "#rrggbb".
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns the alpha of c in [0, 1].
func Opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
