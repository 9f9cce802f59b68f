package scene

import (
	"math"
	"testing"
)

const tol = 1e-9

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}

func TestPolar(t *testing.T) {
	c := Point{100, 100}
	tests := []struct {
		a    float64
		want Point
	}{
		{0, Point{110, 100}},
		{math.Pi / 2, Point{100, 90}},
		{math.Pi, Point{90, 100}},
	}
	for _, tt := range tests {
		if got := Polar(c, 10, tt.a); !near(got, tt.want) {
			t.Errorf("Polar(a=%v) = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestWedge(t *testing.T) {
	c := Point{0, 0}
	pts := Wedge(c, 1, 2, 0, math.Pi/2)

	if !near(pts[0], Point{2, 0}) {
		t.Errorf("first point = %v, want outer start", pts[0])
	}
	if !near(pts[len(pts)-1], Point{1, 0}) {
		t.Errorf("last point = %v, want inner start", pts[len(pts)-1])
	}
	for _, p := range pts {
		r := math.Hypot(p.X, p.Y)
		if r < 1-tol || r > 2+tol {
			t.Fatalf("point %v outside the annulus", p)
		}
	}

	pie := Wedge(c, 0, 1, 0, math.Pi)
	if pie[0] != c {
		t.Errorf("pie slice should start at the centre, got %v", pie[0])
	}
}

func TestBand(t *testing.T) {
	pts := Band(0, 10, 20, 100, 50, 60)
	n := len(pts) / 2

	if !near(pts[0], Point{0, 10}) || !near(pts[n-1], Point{100, 50}) {
		t.Errorf("top edge runs %v -> %v", pts[0], pts[n-1])
	}
	if !near(pts[n], Point{100, 60}) || !near(pts[len(pts)-1], Point{0, 20}) {
		t.Errorf("bottom edge runs %v -> %v", pts[n], pts[len(pts)-1])
	}

	// The curve is monotonic in both coordinates for a downward link.
	for i := 1; i < n; i++ {
		if pts[i].X < pts[i-1].X || pts[i].Y < pts[i-1].Y {
			t.Fatalf("top edge not monotonic at %d", i)
		}
	}
}

func TestRectBounds(t *testing.T) {
	lo, hi := Bounds(Rect(5, 10, 20, 30))
	if lo != (Point{5, 10}) || hi != (Point{25, 40}) {
		t.Errorf("Bounds = %v %v", lo, hi)
	}
	lo, hi = Bounds(nil)
	if lo != (Point{}) || hi != (Point{}) {
		t.Error("Bounds(nil) should be zero")
	}
}

func TestSceneQueries(t *testing.T) {
	s := New(10, 10)
	s.Add(&Path{ID: "p"}, &Text{Content: "CHILE"}, &Circle{R: 1}, &Text{Content: "XV"})

	if len(s.Texts()) != 2 || len(s.Paths()) != 1 {
		t.Errorf("Texts=%d Paths=%d", len(s.Texts()), len(s.Paths()))
	}
	if _, ok := s.FindText("CHILE"); !ok {
		t.Error("FindText(CHILE) not found")
	}
	if Kind(s.Items[2]) != "circle" {
		t.Errorf("Kind = %q", Kind(s.Items[2]))
	}
	if s.Background.A != 255 {
		t.Error("background should be opaque white")
	}
}
