package region

import (
	"github.com/matzehuels/chileviz/pkg/errors"
)

// Dataset is an ordered, read-only collection of regions.
type Dataset struct {
	regions []Region
	index   map[string]int
}

// NewDataset builds a dataset preserving the order of regions.
// Two regions whose names fold to the same key are rejected.
func NewDataset(regions ...Region) (*Dataset, error) {
	d := &Dataset{
		regions: make([]Region, 0, len(regions)),
		index:   make(map[string]int, len(regions)),
	}
	for _, r := range regions {
		k := r.Key()
		if _, dup := d.index[k]; dup {
			return nil, errors.InvalidInput("duplicate region %q", r.ID)
		}
		d.index[k] = len(d.regions)
		d.regions = append(d.regions, r)
	}
	return d, nil
}

// Len returns the number of regions.
func (d *Dataset) Len() int { return len(d.regions) }

// Regions returns a copy of the regions in input order.
func (d *Dataset) Regions() []Region {
	out := make([]Region, len(d.regions))
	copy(out, d.regions)
	return out
}

// At returns the i-th region in input order.
func (d *Dataset) At(i int) Region { return d.regions[i] }

// Lookup finds a region by name. Names are compared by [Key].
func (d *Dataset) Lookup(name string) (Region, error) {
	i, ok := d.index[Key(name)]
	if !ok {
		return Region{}, errors.MissingKey("region", name)
	}
	return d.regions[i], nil
}

// Index returns the position of the named region, or -1.
func (d *Dataset) Index(name string) int {
	if i, ok := d.index[Key(name)]; ok {
		return i
	}
	return -1
}

// Primaries returns the primary magnitudes in input order.
func (d *Dataset) Primaries() []float64 {
	out := make([]float64, len(d.regions))
	for i, r := range d.regions {
		out[i] = r.Primary
	}
	return out
}

// Secondaries returns the secondary magnitudes in input order.
func (d *Dataset) Secondaries() []float64 {
	out := make([]float64, len(d.regions))
	for i, r := range d.regions {
		out[i] = r.Secondary
	}
	return out
}
