package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/scene"
)

// Window is a lon/lat rectangle in degrees.
type Window struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// DefaultWindow frames continental Chile.
var DefaultWindow = Window{MinLon: -78, MaxLon: -66, MinLat: -56, MaxLat: -17}

// Bound converts the window to an orb.Bound.
func (w Window) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{w.MinLon, w.MinLat}, Max: orb.Point{w.MaxLon, w.MaxLat}}
}

// Validate checks that the window is non-empty and within lon/lat limits.
func (w Window) Validate() error {
	if w.MinLon >= w.MaxLon || w.MinLat >= w.MaxLat {
		return errors.InvalidInput("empty map window %+v", w)
	}
	if w.MinLon < -180 || w.MaxLon > 180 || w.MinLat < -90 || w.MaxLat > 90 {
		return errors.InvalidInput("map window %+v outside lon/lat range", w)
	}
	return nil
}

// Projection maps lon/lat into a frame rectangle with an equirectangular
// projection. Longitudes are scaled by the cosine of the window's middle
// latitude and the aspect ratio is preserved; the map is centred in the
// frame.
type Projection struct {
	window  Window
	kx, ky  float64
	originX float64
	originY float64
}

// NewProjection fits window into the rectangle at (x, y) of size w×h.
func NewProjection(window Window, x, y, w, h float64) (*Projection, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, errors.InvalidInput("map frame must have positive size, got %vx%v", w, h)
	}
	midLat := (window.MinLat + window.MaxLat) / 2 * math.Pi / 180
	spanX := (window.MaxLon - window.MinLon) * math.Cos(midLat)
	spanY := window.MaxLat - window.MinLat
	k := math.Min(w/spanX, h/spanY)

	p := &Projection{
		window: window,
		kx:     k * math.Cos(midLat),
		ky:     k,
	}
	p.originX = x + (w-spanX*k)/2
	p.originY = y + (h-spanY*k)/2
	return p, nil
}

// Project maps a lon/lat point into frame coordinates (y down).
func (p *Projection) Project(pt orb.Point) scene.Point {
	return scene.Point{
		X: p.originX + (pt.Lon()-p.window.MinLon)*p.kx,
		Y: p.originY + (p.window.MaxLat-pt.Lat())*p.ky,
	}
}

// Rings clips f to the window and returns each projected ring. Rings that
// fall entirely outside the window are dropped.
func (p *Projection) Rings(f Feature) [][]scene.Point {
	g := clip.Geometry(p.window.Bound(), f.Geometry)
	if g == nil {
		return nil
	}
	var out [][]scene.Point
	for _, poly := range (Feature{Geometry: g}).Polygons() {
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			pts := make([]scene.Point, len(ring))
			for i, pt := range ring {
				pts[i] = p.Project(pt)
			}
			out = append(out, pts)
		}
	}
	return out
}
