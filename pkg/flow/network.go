package flow

import (
	"slices"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/region"
)

// Rows of the bipartite network.
const (
	OriginRow      = 0
	DestinationRow = 1
)

// OriginID returns the node ID of a region on the origin side.
func OriginID(name string) string { return name + " (Origen)" }

// DestinationID returns the node ID of a region on the destination side.
func DestinationID(name string) string { return name + " (Destino)" }

// Node is a region on one side of the network.
type Node struct {
	ID     string // OriginID or DestinationID of Region
	Region string
	Row    int // OriginRow or DestinationRow
}

// Network is a weighted bipartite graph of migration flows.
//
// The zero value is not usable; use [NewNetwork] or [Build].
// Network is not safe for concurrent mutation.
type Network struct {
	nodes    map[string]*Node
	rows     [2][]*Node
	edges    []Edge
	outgoing map[string][]int // origin region -> edge indices
	incoming map[string][]int // destination region -> edge indices
	totals   map[string]float64
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]int),
		incoming: make(map[string][]int),
		totals:   make(map[string]float64),
	}
}

// Build lays out every region of m on both sides, in m.Regions order, and
// adds the derived edges of every origin.
func Build(m *region.Migration) (*Network, error) {
	n := NewNetwork()
	for _, r := range m.Regions {
		if err := n.AddRegion(r); err != nil {
			return nil, err
		}
	}
	for _, o := range m.Origins {
		if _, dup := n.totals[o.Region]; dup {
			return nil, errors.InvalidInput("duplicate origin %q", o.Region)
		}
		n.SetTotal(o.Region, o.Emigrants)
	}
	edges, err := DeriveAll(m)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := n.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// AddRegion adds a region as both an origin and a destination node.
func (n *Network) AddRegion(name string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	if _, dup := n.nodes[OriginID(name)]; dup {
		return errors.InvalidInput("duplicate region %q in network", name)
	}
	o := &Node{ID: OriginID(name), Region: name, Row: OriginRow}
	d := &Node{ID: DestinationID(name), Region: name, Row: DestinationRow}
	n.nodes[o.ID] = o
	n.nodes[d.ID] = d
	n.rows[OriginRow] = append(n.rows[OriginRow], o)
	n.rows[DestinationRow] = append(n.rows[DestinationRow], d)
	return nil
}

// AddEdge adds a flow between two regions already in the network.
func (n *Network) AddEdge(e Edge) error {
	if _, ok := n.nodes[OriginID(e.Origin)]; !ok {
		return errors.MissingKey("origin region", e.Origin)
	}
	if _, ok := n.nodes[DestinationID(e.Destination)]; !ok {
		return errors.MissingKey("destination region", e.Destination)
	}
	if err := errors.ValidateMagnitude("flow magnitude", e.Magnitude); err != nil {
		return err
	}
	idx := len(n.edges)
	n.edges = append(n.edges, e)
	n.outgoing[e.Origin] = append(n.outgoing[e.Origin], idx)
	n.incoming[e.Destination] = append(n.incoming[e.Destination], idx)
	return nil
}

// SetTotal records the total emigration of an origin, used by [Network.Coverage].
func (n *Network) SetTotal(origin string, total float64) { n.totals[origin] = total }

// Node returns the node with the given ID.
func (n *Network) Node(id string) (*Node, bool) {
	node, ok := n.nodes[id]
	return node, ok
}

// Origins returns the origin nodes in row order.
func (n *Network) Origins() []*Node { return n.rows[OriginRow] }

// Destinations returns the destination nodes in row order.
func (n *Network) Destinations() []*Node { return n.rows[DestinationRow] }

// Edges returns a copy of all edges in insertion order.
func (n *Network) Edges() []Edge { return slices.Clone(n.edges) }

// NodeCount returns the number of nodes on both sides.
func (n *Network) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int { return len(n.edges) }

// Outgoing returns the edges leaving origin, in insertion order.
func (n *Network) Outgoing(origin string) []Edge {
	return n.collect(n.outgoing[origin])
}

// Incoming returns the edges entering destination, in insertion order.
func (n *Network) Incoming(destination string) []Edge {
	return n.collect(n.incoming[destination])
}

func (n *Network) collect(idx []int) []Edge {
	out := make([]Edge, len(idx))
	for i, j := range idx {
		out[i] = n.edges[j]
	}
	return out
}

// OutFlow sums the magnitudes leaving origin.
func (n *Network) OutFlow(origin string) float64 { return sum(n.Outgoing(origin)) }

// InFlow sums the magnitudes entering destination.
func (n *Network) InFlow(destination string) float64 { return sum(n.Incoming(destination)) }

// Total returns the recorded emigration of origin, or its OutFlow when no
// total was recorded.
func (n *Network) Total(origin string) float64 {
	if t, ok := n.totals[origin]; ok {
		return t
	}
	return n.OutFlow(origin)
}

// TotalEmigration sums Total over all origins.
func (n *Network) TotalEmigration() float64 {
	var t float64
	for _, o := range n.rows[OriginRow] {
		t += n.Total(o.Region)
	}
	return t
}

// Coverage returns the share of total emigration represented by edges.
func (n *Network) Coverage() float64 {
	return Coverage(n.edges, n.TotalEmigration())
}

// Order returns the region names of a row, left to right (top to bottom).
func (n *Network) Order(row int) []string {
	out := make([]string, len(n.rows[row]))
	for i, node := range n.rows[row] {
		out[i] = node.Region
	}
	return out
}

// SetOrder reorders a row. order must be a permutation of the row's regions.
func (n *Network) SetOrder(row int, order []string) error {
	cur := n.rows[row]
	if len(order) != len(cur) {
		return errors.InvalidInput("order has %d regions, row has %d", len(order), len(cur))
	}
	byRegion := make(map[string]*Node, len(cur))
	for _, node := range cur {
		byRegion[node.Region] = node
	}
	next := make([]*Node, 0, len(order))
	for _, name := range order {
		node, ok := byRegion[name]
		if !ok {
			return errors.MissingKey("region", name)
		}
		delete(byRegion, name)
		next = append(next, node)
	}
	n.rows[row] = next
	return nil
}

func sum(edges []Edge) float64 {
	var s float64
	for _, e := range edges {
		s += e.Magnitude
	}
	return s
}
