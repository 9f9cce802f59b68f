package flow

import "slices"

// PosMap maps each name to its index in order.
func PosMap(order []string) map[string]int {
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	return pos
}

// CountCrossings counts pairs of edges that cross when origins are drawn in
// the order given by origins and destinations in the order given by
// destinations.
//
// Two edges (o1,d1) and (o2,d2) cross if pos(o1) < pos(o2) and
// pos(d1) > pos(d2). This is an inversion count over destination positions
// with edges sorted by origin, done with a Fenwick tree in O(E log V).
func CountCrossings(edges []Edge, origins, destinations []string) int {
	if len(origins) == 0 || len(destinations) == 0 {
		return 0
	}
	oPos, dPos := PosMap(origins), PosMap(destinations)

	type pair struct{ o, d int }
	pairs := make([]pair, 0, len(edges))
	for _, e := range edges {
		o, okO := oPos[e.Origin]
		d, okD := dPos[e.Destination]
		if okO && okD {
			pairs = append(pairs, pair{o, d})
		}
	}
	if len(pairs) < 2 {
		return 0
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		if a.o != b.o {
			return a.o - b.o
		}
		return a.d - b.d
	})

	fenwick := make([]int, len(destinations)+1)
	crossings, total := 0, 0
	for _, p := range pairs {
		lessOrEqual := 0
		for q := p.d + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for i := p.d + 1; i < len(fenwick); i += i & (-i) {
			fenwick[i]++
		}
	}
	return crossings
}

// WeightedCrossings sums m1*m2 over every crossing pair of edges. Heavy
// bands crossing each other cost more than thin ones.
func WeightedCrossings(edges []Edge, origins, destinations []string) float64 {
	oPos, dPos := PosMap(origins), PosMap(destinations)
	var w float64
	for i, a := range edges {
		ao, okAO := oPos[a.Origin]
		ad, okAD := dPos[a.Destination]
		if !okAO || !okAD {
			continue
		}
		for _, b := range edges[i+1:] {
			bo, okBO := oPos[b.Origin]
			bd, okBD := dPos[b.Destination]
			if !okBO || !okBD {
				continue
			}
			if (ao < bo && ad > bd) || (ao > bo && ad < bd) {
				w += a.Magnitude * b.Magnitude
			}
		}
	}
	return w
}

// Crossings counts crossings in the network's current row orders.
func (n *Network) Crossings() int {
	return CountCrossings(n.edges, n.Order(OriginRow), n.Order(DestinationRow))
}

// WeightedCrossings is [WeightedCrossings] over the network's current row orders.
func (n *Network) WeightedCrossings() float64 {
	return WeightedCrossings(n.edges, n.Order(OriginRow), n.Order(DestinationRow))
}
