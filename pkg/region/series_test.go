package region

import (
	"slices"
	"testing"

	"github.com/matzehuels/chileviz/pkg/errors"
)

func TestNewSeries(t *testing.T) {
	s, err := NewSeries(
		[]string{"Maule", "Aysén"},
		[]map[string]float64{
			{"2010": 12, "2009": 10},
			{"2009": 1, "2011": 3},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"2009", "2010", "2011"}; !slices.Equal(s.Periods, want) {
		t.Errorf("Periods = %v, want %v", s.Periods, want)
	}
	if want := []float64{10, 12, 0}; !slices.Equal(s.Rows[0].Values, want) {
		t.Errorf("Maule = %v, want %v", s.Rows[0].Values, want)
	}
	if want := []float64{1, 0, 3}; !slices.Equal(s.Rows[1].Values, want) {
		t.Errorf("Aysén = %v, want %v", s.Rows[1].Values, want)
	}
}

func TestNewSeriesErrors(t *testing.T) {
	tests := []struct {
		name   string
		names  []string
		values []map[string]float64
		code   errors.Code
	}{
		{"length mismatch", []string{"a"}, nil, errors.ErrCodeInvalidInput},
		{"negative value", []string{"a"}, []map[string]float64{{"2009": -1}}, errors.ErrCodeInvalidInput},
		{"duplicate", []string{"Ríos", "rios"}, []map[string]float64{{}, {}}, errors.ErrCodeInvalidInput},
		{"empty name", []string{""}, []map[string]float64{{}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSeries(tt.names, tt.values)
			if !errors.Is(err, tt.code) {
				t.Errorf("NewSeries() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSeriesGroup(t *testing.T) {
	s, err := NewSeries(
		[]string{"Aysén", "Metropolitana", "Magallanes", "Biobío"},
		[]map[string]float64{
			{"2009": 1, "2010": 2},
			{"2009": 100, "2010": 110},
			{"2009": 3, "2010": 4},
			{"2009": 20, "2010": 21},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	g, err := s.Group(OtherRegions, []string{"Aysen", "Magallanes"})
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, r := range g.Rows {
		names = append(names, r.Region)
	}
	if want := []string{"Metropolitana", "Biobío", OtherRegions}; !slices.Equal(names, want) {
		t.Errorf("grouped rows = %v, want %v", names, want)
	}
	other, err := g.Row(OtherRegions)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{4, 6}; !slices.Equal(other.Values, want) {
		t.Errorf("other = %v, want %v", other.Values, want)
	}

	// The receiver is left untouched.
	if len(s.Rows) != 4 {
		t.Errorf("original series modified: %d rows", len(s.Rows))
	}

	if _, err := s.Group(OtherRegions, []string{"Atlantis"}); !errors.Is(err, errors.ErrCodeMissingKey) {
		t.Errorf("Group(unknown) error = %v, want MISSING_KEY", err)
	}

	same, err := s.Group(OtherRegions, nil)
	if err != nil || same != s {
		t.Errorf("Group(nil) should return the receiver")
	}
}
