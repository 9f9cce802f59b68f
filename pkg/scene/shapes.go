package scene

import "math"

// Default sampling density for curved shapes.
const (
	arcStepsPerRadian = 24
	bandSteps         = 32
)

// Rect returns the corners of an axis-aligned rectangle, clockwise from the
// top left.
func Rect(x, y, w, h float64) []Point {
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// Polar returns the point at radius r and angle a (radians) around c.
// Angles grow counter-clockwise on screen starting at 3 o'clock.
func Polar(c Point, r, a float64) Point {
	return Point{X: c.X + r*math.Cos(a), Y: c.Y - r*math.Sin(a)}
}

// Arc samples the circle of radius r around c from angle a0 to a1.
func Arc(c Point, r, a0, a1 float64) []Point {
	n := max(2, int(math.Ceil(math.Abs(a1-a0)*arcStepsPerRadian))+1)
	pts := make([]Point, n)
	for i := range pts {
		a := a0 + (a1-a0)*float64(i)/float64(n-1)
		pts[i] = Polar(c, r, a)
	}
	return pts
}

// Wedge returns the outline of an annular sector between radii r0 < r1 and
// angles a0 < a1. With r0 == 0 it degenerates to a pie slice.
func Wedge(c Point, r0, r1, a0, a1 float64) []Point {
	outer := Arc(c, r1, a0, a1)
	if r0 <= 0 {
		return append([]Point{c}, outer...)
	}
	inner := Arc(c, r0, a1, a0)
	return append(outer, inner...)
}

// Band returns the outline of a Sankey link: a ribbon from the vertical
// interval [y0a, y0b] at x0 to [y1a, y1b] at x1, with both edges drawn as
// cubic Bézier curves whose control points sit halfway between x0 and x1.
func Band(x0, y0a, y0b, x1, y1a, y1b float64) []Point {
	top := bezier(Point{x0, y0a}, Point{x1, y1a})
	bottom := bezier(Point{x1, y1b}, Point{x0, y0b})
	return append(top, bottom...)
}

func bezier(p0, p3 Point) []Point {
	mx := (p0.X + p3.X) / 2
	p1 := Point{mx, p0.Y}
	p2 := Point{mx, p3.Y}
	pts := make([]Point, bandSteps+1)
	for i := range pts {
		t := float64(i) / bandSteps
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		pts[i] = Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		}
	}
	return pts
}

// Bounds returns the bounding box of pts as min and max corners.
func Bounds(pts []Point) (lo, hi Point) {
	if len(pts) == 0 {
		return
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return
}
