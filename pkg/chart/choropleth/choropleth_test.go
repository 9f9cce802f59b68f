package choropleth

import (
	"slices"
	"testing"

	"github.com/paulmach/orb"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/geo"
	"github.com/matzehuels/chileviz/pkg/region"
)

func square(lon, lat float64) orb.Polygon {
	return orb.Polygon{{{lon, lat}, {lon + 1, lat}, {lon + 1, lat + 1}, {lon, lat + 1}, {lon, lat}}}
}

func features() *geo.Collection {
	return &geo.Collection{Features: []geo.Feature{
		{Name: "Región de Tarapacá", Geometry: square(-70, -20)},
		{Name: "Región de Antofagasta", Geometry: square(-70, -24)},
		{Name: "Región de Atacama", Geometry: square(-70, -28)},
	}}
}

func dataset(t *testing.T) *region.Dataset {
	t.Helper()
	var regions []region.Region
	for name, pct := range map[string]float64{"Región de Tarapacá": 40.4, "Región de Antofagasta": 30.2, "Región de Ñuble": 3.1} {
		r, err := region.New(name, "", "", pct, 0)
		if err != nil {
			t.Fatal(err)
		}
		regions = append(regions, r)
	}
	slices.SortFunc(regions, func(a, b region.Region) int {
		if a.ID < b.ID {
			return -1
		}
		return 1
	})
	ds, err := region.NewDataset(regions...)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestBuild(t *testing.T) {
	l, err := Build(features(), dataset(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Title != DefaultTitle || l.ColorMap != "blues" || l.Window != geo.DefaultWindow {
		t.Errorf("defaults not applied: %+v", l)
	}
	if len(l.Areas) != 3 {
		t.Fatalf("areas = %d", len(l.Areas))
	}

	tarapaca, antofagasta, atacama := l.Areas[0], l.Areas[1], l.Areas[2]
	if tarapaca.Value == nil || *tarapaca.Value != 40.4 || tarapaca.Intensity != 1 {
		t.Errorf("Tarapacá = %+v", tarapaca)
	}
	if antofagasta.Intensity != 0 {
		t.Errorf("Antofagasta intensity = %v", antofagasta.Intensity)
	}
	if atacama.Value != nil || atacama.Color != MissingColor {
		t.Errorf("Atacama should have no data: %+v", atacama)
	}
	if l.Missing != 1 {
		t.Errorf("missing = %d", l.Missing)
	}
	if !slices.Equal(l.Unmatched, []string{"Región de Ñuble"}) {
		t.Errorf("unmatched = %v", l.Unmatched)
	}
	if l.Min != 30.2 || l.Max != 40.4 {
		t.Errorf("range = %v..%v", l.Min, l.Max)
	}
}

func TestBuildMatchesFoldedNames(t *testing.T) {
	fc := &geo.Collection{Features: []geo.Feature{{Name: "REGION DE TARAPACA", Geometry: square(-70, -20)}}}
	l, err := Build(fc, dataset(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Areas[0].Region != "Región de Tarapacá" {
		t.Errorf("matched region = %q", l.Areas[0].Region)
	}
}

func TestBuildRejects(t *testing.T) {
	noMatch := &geo.Collection{Features: []geo.Feature{{Name: "Mendoza", Geometry: square(-69, -33)}}}
	tests := []struct {
		name string
		fc   *geo.Collection
		opts Options
	}{
		{"no features", &geo.Collection{}, Options{}},
		{"no match", noMatch, Options{}},
		{"bad window", features(), Options{Window: geo.Window{MinLon: 10, MaxLon: 0, MinLat: 0, MaxLat: 1}}},
		{"bad colormap", features(), Options{ColorMap: "rainbow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.fc, dataset(t), tt.opts); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Build() error = %v", err)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	l, err := Build(features(), dataset(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	s, err := Draw(l, 800, 1400)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{DefaultTitle, DefaultLegend, MissingLabel} {
		if _, ok := s.FindText(want); !ok {
			t.Errorf("missing text %q", want)
		}
	}
	var tarapaca, atacama bool
	for _, p := range s.Paths() {
		switch p.ID {
		case "Región de Tarapacá":
			tarapaca = true
		case "Región de Atacama":
			atacama = true
		}
	}
	if !tarapaca || !atacama {
		t.Error("every feature should be drawn")
	}
}
