package geo

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"github.com/matzehuels/chileviz/pkg/errors"
)

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"Region": "Región de Ñuble"},
      "geometry": {"type": "Polygon", "coordinates": [[[-72.5,-36.0],[-71.0,-36.0],[-71.0,-37.2],[-72.5,-37.2],[-72.5,-36.0]]]}
    },
    {
      "type": "Feature",
      "properties": {"Region": "Región de Magallanes y de la Antártica Chilena"},
      "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[-75.0,-50.0],[-68.0,-50.0],[-68.0,-55.0],[-75.0,-55.0],[-75.0,-50.0]]],
        [[[-70.0,-60.0],[-60.0,-60.0],[-60.0,-80.0],[-70.0,-80.0],[-70.0,-60.0]]]
      ]}
    }
  ]
}`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(testGeoJSON), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Features) != 2 {
		t.Fatalf("got %d features", len(c.Features))
	}
	f, ok := c.Lookup("region de nuble")
	if !ok {
		t.Fatal("Lookup by folded name failed")
	}
	if len(f.Polygons()) != 1 {
		t.Errorf("Ñuble polygons = %d", len(f.Polygons()))
	}
	m, _ := c.Lookup("Región de Magallanes y de la Antártica Chilena")
	if len(m.Polygons()) != 2 {
		t.Errorf("Magallanes polygons = %d", len(m.Polygons()))
	}
	if _, ok := c.Lookup("Atlantis"); ok {
		t.Error("Lookup(unknown) should fail")
	}

	b := c.Bound()
	if b.Min.Lon() != -75 || b.Max.Lat() != -36 {
		t.Errorf("Bound() = %v", b)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"not json", "{", errors.ErrCodeInvalidInput},
		{"missing name", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}]}`, errors.ErrCodeMissingKey},
		{"point geometry", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"Region":"A"},"geometry":{"type":"Point","coordinates":[0,0]}}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "Region")
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regiones.geojson")
	if err := os.WriteFile(path, []byte(testGeoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, DefaultNameProperty); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.geojson"), ""); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestProjection(t *testing.T) {
	p, err := NewProjection(DefaultWindow, 0, 0, 400, 800)
	if err != nil {
		t.Fatal(err)
	}

	nw := p.Project(orb.Point{DefaultWindow.MinLon, DefaultWindow.MaxLat})
	se := p.Project(orb.Point{DefaultWindow.MaxLon, DefaultWindow.MinLat})
	if nw.X < -1e-9 || nw.Y < -1e-9 || se.X > 400+1e-9 || se.Y > 800+1e-9 {
		t.Errorf("window corners %v %v outside frame", nw, se)
	}
	if se.X <= nw.X || se.Y <= nw.Y {
		t.Errorf("projection should grow right and down: %v %v", nw, se)
	}
	// The tall window fills the frame height exactly.
	if math.Abs((se.Y-nw.Y)-800) > 1e-6 && math.Abs((se.X-nw.X)-400) > 1e-6 {
		t.Errorf("projection does not fill the frame: %v %v", nw, se)
	}
}

func TestProjectionRingsClip(t *testing.T) {
	c, err := Parse([]byte(testGeoJSON), "")
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewProjection(DefaultWindow, 0, 0, 400, 800)
	if err != nil {
		t.Fatal(err)
	}

	mag, _ := c.Lookup("Región de Magallanes y de la Antártica Chilena")
	rings := p.Rings(mag)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want the Antarctic polygon clipped away", len(rings))
	}
	for _, pt := range rings[0] {
		if pt.Y > 800+1e-6 {
			t.Errorf("clipped point %v below the frame", pt)
		}
	}
}

func TestWindowValidate(t *testing.T) {
	if err := (Window{MinLon: 0, MaxLon: 0, MinLat: 0, MaxLat: 1}).Validate(); err == nil {
		t.Error("empty window should be invalid")
	}
	if err := (Window{MinLon: -200, MaxLon: 0, MinLat: 0, MaxLat: 1}).Validate(); err == nil {
		t.Error("out of range window should be invalid")
	}
	if _, err := NewProjection(DefaultWindow, 0, 0, 0, 10); err == nil {
		t.Error("zero-size frame should be invalid")
	}
}
