package region

import (
	"fmt"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// Region is a named category with the magnitudes a chart is computed from.
//
// The zero value is not valid; use [New].
type Region struct {
	ID        string  // Canonical name as it appears in the source data
	Label     string  // Short display label (defaults to ID)
	Code      string  // Optional ordinal code, e.g. "XV" or "RM"
	Primary   float64 // Partition size (e.g. area)
	Secondary float64 // Intensity driver (e.g. density)
}

// New validates and constructs a Region.
// Both magnitudes must be finite and non-negative.
func New(id, label, code string, primary, secondary float64) (Region, error) {
	if err := errors.ValidateName(id); err != nil {
		return Region{}, err
	}
	if err := errors.ValidateMagnitude(fmt.Sprintf("primary magnitude of %s", id), primary); err != nil {
		return Region{}, err
	}
	if err := errors.ValidateMagnitude(fmt.Sprintf("secondary magnitude of %s", id), secondary); err != nil {
		return Region{}, err
	}
	if label == "" {
		label = id
	}
	return Region{ID: id, Label: label, Code: code, Primary: primary, Secondary: secondary}, nil
}

// Key returns the folded lookup key of the region's ID.
func (r Region) Key() string { return Key(r.ID) }

// DisplayCode returns Code, falling back to Label when no code is set.
func (r Region) DisplayCode() string {
	if r.Code != "" {
		return r.Code
	}
	return r.Label
}
