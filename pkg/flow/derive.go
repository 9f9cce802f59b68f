package flow

import (
	"fmt"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/region"
)

// sumTolerance absorbs rounding in published percentages.
const sumTolerance = 1e-9

// Edge is a derived flow from one origin to one destination.
type Edge struct {
	Origin      string
	Destination string
	Magnitude   float64
	Rank        int // position of the share in the source; 0 is the primary destination
}

// Flow returns total * pct / 100.
func Flow(total, pct float64) float64 {
	return total * pct / 100
}

// Derive converts an origin's destination shares into absolute flows.
//
// total and every percentage must be finite and non-negative, and the
// percentages must not sum to more than 100. Edges are returned in share
// order with Rank set to the share position.
func Derive(origin string, total float64, shares []region.Share) ([]Edge, error) {
	if err := errors.ValidateMagnitude(fmt.Sprintf("emigrants of %s", origin), total); err != nil {
		return nil, err
	}
	var sum float64
	for _, s := range shares {
		if err := errors.ValidateMagnitude(fmt.Sprintf("share %s -> %s", origin, s.Destination), s.Percent); err != nil {
			return nil, err
		}
		sum += s.Percent
	}
	if sum > 100+sumTolerance {
		return nil, errors.InvalidInput("shares of %s sum to %v%%, more than 100%%", origin, sum)
	}

	edges := make([]Edge, len(shares))
	for i, s := range shares {
		edges[i] = Edge{
			Origin:      origin,
			Destination: s.Destination,
			Magnitude:   Flow(total, s.Percent),
			Rank:        i,
		}
	}
	return edges, nil
}

// DeriveAll derives the edges of every origin in m, in origin order.
func DeriveAll(m *region.Migration) ([]Edge, error) {
	var all []Edge
	for _, o := range m.Origins {
		edges, err := Derive(o.Region, o.Emigrants, o.Shares)
		if err != nil {
			return nil, err
		}
		all = append(all, edges...)
	}
	return all, nil
}

// Coverage returns the fraction of total represented by edges, in [0, 1].
// A zero total has nothing to represent and yields 1.
func Coverage(edges []Edge, total float64) float64 {
	if total <= 0 {
		return 1
	}
	var sum float64
	for _, e := range edges {
		sum += e.Magnitude
	}
	return min(sum/total, 1)
}

// Remainder returns the part of total that edges do not account for.
func Remainder(edges []Edge, total float64) float64 {
	var sum float64
	for _, e := range edges {
		sum += e.Magnitude
	}
	return max(total-sum, 0)
}
