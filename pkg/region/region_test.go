package region

import (
	"math"
	"testing"

	"github.com/matzehuels/chileviz/pkg/errors"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ñuble", "nuble"},
		{"O’Higgins", "o'higgins"},
		{"O'Higgins", "o'higgins"},
		{"  Los   Ríos ", "los rios"},
		{"Aysén del General Carlos Ibáñez del Campo", "aysen del general carlos ibanez del campo"},
		{"Biobío", "biobio"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Key(tt.in); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		primary   float64
		secondary float64
		wantErr   bool
	}{
		{"valid", "Maule", 30.3, 1123008, false},
		{"zero magnitudes", "Maule", 0, 0, false},
		{"empty id", "", 1, 1, true},
		{"negative primary", "Maule", -1, 1, true},
		{"negative secondary", "Maule", 1, -1, true},
		{"nan primary", "Maule", math.NaN(), 1, true},
		{"inf secondary", "Maule", 1, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, "", "", tt.primary, tt.secondary)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("New() code = %v, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestNewDefaultsLabel(t *testing.T) {
	r, err := New("Maule", "", "VII", 30.3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if r.Label != "Maule" {
		t.Errorf("Label = %q, want %q", r.Label, "Maule")
	}
	if r.DisplayCode() != "VII" {
		t.Errorf("DisplayCode() = %q, want VII", r.DisplayCode())
	}

	r, _ = New("Maule", "Mau", "", 1, 1)
	if r.DisplayCode() != "Mau" {
		t.Errorf("DisplayCode() without code = %q, want label", r.DisplayCode())
	}
}

func mustRegion(t *testing.T, id string, primary, secondary float64) Region {
	t.Helper()
	r, err := New(id, "", "", primary, secondary)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestDataset(t *testing.T) {
	d, err := NewDataset(
		mustRegion(t, "Arica y Parinacota", 16.87, 244569),
		mustRegion(t, "Ñuble", 13.18, 512289),
		mustRegion(t, "O'Higgins", 16.39, 987228),
	)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}
	if d.At(1).ID != "Ñuble" {
		t.Errorf("At(1) = %q, want Ñuble", d.At(1).ID)
	}

	r, err := d.Lookup("O’Higgins")
	if err != nil {
		t.Fatalf("Lookup with typographic quote: %v", err)
	}
	if r.ID != "O'Higgins" {
		t.Errorf("Lookup() = %q", r.ID)
	}

	if _, err := d.Lookup("Atlantis"); !errors.Is(err, errors.ErrCodeMissingKey) {
		t.Errorf("Lookup(unknown) error = %v, want MISSING_KEY", err)
	}
	if d.Index("nuble") != 1 {
		t.Errorf("Index(nuble) = %d, want 1", d.Index("nuble"))
	}
	if d.Index("Atlantis") != -1 {
		t.Errorf("Index(unknown) = %d, want -1", d.Index("Atlantis"))
	}

	prim := d.Primaries()
	if len(prim) != 3 || prim[0] != 16.87 || prim[2] != 16.39 {
		t.Errorf("Primaries() = %v", prim)
	}
	sec := d.Secondaries()
	if sec[1] != 512289 {
		t.Errorf("Secondaries()[1] = %v", sec[1])
	}

	regions := d.Regions()
	regions[0].ID = "mutated"
	if d.At(0).ID == "mutated" {
		t.Error("Regions() must return a copy")
	}
}

func TestDatasetRejectsDuplicates(t *testing.T) {
	_, err := NewDataset(mustRegion(t, "Biobío", 1, 1), mustRegion(t, "Biobio", 2, 2))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewDataset(duplicate) error = %v, want INVALID_INPUT", err)
	}
}
