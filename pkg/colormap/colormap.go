// Package colormap provides sequential colour maps for intensity encoding.
//
// A map is a list of evenly spaced stops; [Map.At] interpolates between
// neighbouring stops in CIE-L*a*b* so perceived lightness changes smoothly.
package colormap

import (
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// Map is a named sequential colour map.
type Map struct {
	Name  string
	stops []colorful.Color
}

var registry = map[string][]string{
	"viridis": {"#440154", "#472c7a", "#3b518b", "#2c718e", "#21908d", "#27ad81", "#5cc863", "#aadc32", "#fde725"},
	"blues":   {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"greens":  {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	"oranges": {"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704"},
}

// Names returns the registered map names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the map registered under name (case-insensitive).
func Lookup(name string) (*Map, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	hexes, ok := registry[key]
	if !ok {
		return nil, errors.InvalidInput("unknown colormap %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return New(key, hexes...)
}

// MustLookup is like [Lookup] but panics for unknown names. Use it only with
// the built-in names.
func MustLookup(name string) *Map {
	m, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return m
}

// New builds a map from two or more hex stops.
func New(name string, hexes ...string) (*Map, error) {
	if len(hexes) < 2 {
		return nil, errors.InvalidInput("colormap %q needs at least two stops", name)
	}
	m := &Map{Name: name, stops: make([]colorful.Color, len(hexes))}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "colormap %q stop %d", name, i)
		}
		m.stops[i] = c
	}
	return m, nil
}

// At returns the colour at t. t is clamped into [0, 1]; NaN maps to 0.
func (m *Map) At(t float64) color.NRGBA {
	if t != t || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(m.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(m.stops)-1 {
		return toNRGBA(m.stops[len(m.stops)-1])
	}
	c := m.stops[i].BlendLab(m.stops[i+1], pos-float64(i)).Clamped()
	return toNRGBA(c)
}

// Hex returns the colour at t as "#rrggbb".
func (m *Map) Hex(t float64) string {
	c := m.At(t)
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// Sample returns n evenly spaced colours from 0 to 1, used for colour bars.
func (m *Map) Sample(n int) []color.NRGBA {
	if n < 2 {
		return []color.NRGBA{m.At(0)}
	}
	out := make([]color.NRGBA, n)
	for i := range out {
		out[i] = m.At(float64(i) / float64(n-1))
	}
	return out
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
