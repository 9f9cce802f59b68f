package flow

import (
	"slices"
	"strings"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// Ordering selects how destinations are arranged.
type Ordering string

const (
	// OrderInput keeps destinations in region order.
	OrderInput Ordering = "input"
	// OrderByBarycenter sorts destinations by the weighted mean position of
	// their origins.
	OrderByBarycenter Ordering = "barycentric"
)

// ParseOrdering resolves an ordering name; the empty string means input order.
func ParseOrdering(s string) (Ordering, error) {
	switch o := Ordering(strings.ToLower(s)); o {
	case "":
		return OrderInput, nil
	case OrderInput, OrderByBarycenter:
		return o, nil
	}
	return "", errors.InvalidInput("unknown ordering %q (want input or barycentric)", s)
}

// Apply reorders n's destination row according to o.
func (o Ordering) Apply(n *Network) error {
	switch o {
	case OrderInput, "":
		return nil
	case OrderByBarycenter:
		return n.SetOrder(DestinationRow, OrderBarycentric(n.edges, n.Order(OriginRow), n.Order(DestinationRow)))
	}
	return errors.InvalidInput("unknown ordering %q", string(o))
}

// OrderBarycentric returns destinations sorted by the magnitude-weighted
// mean position of the origins that feed them. Destinations without
// incoming flow keep their relative order and go last. The sort is stable,
// so ties keep input order.
func OrderBarycentric(edges []Edge, origins, destinations []string) []string {
	oPos := PosMap(origins)
	weight := make(map[string]float64, len(destinations))
	moment := make(map[string]float64, len(destinations))
	for _, e := range edges {
		p, ok := oPos[e.Origin]
		if !ok {
			continue
		}
		weight[e.Destination] += e.Magnitude
		moment[e.Destination] += e.Magnitude * float64(p)
	}

	bary := func(d string) (float64, bool) {
		w := weight[d]
		if w == 0 {
			return 0, false
		}
		return moment[d] / w, true
	}

	out := slices.Clone(destinations)
	slices.SortStableFunc(out, func(a, b string) int {
		ba, okA := bary(a)
		bb, okB := bary(b)
		switch {
		case okA && !okB:
			return -1
		case !okA && okB:
			return 1
		case !okA && !okB:
			return 0
		case ba < bb:
			return -1
		case ba > bb:
			return 1
		}
		return 0
	})
	return out
}
