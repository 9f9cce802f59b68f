// Package sankey lays out and draws the internal migration chart: origins in
// a left column, destinations in a right column and one band per derived
// flow, as thick as the number of people it represents.
//
// Vertical positions are computed in column units, where 1 is the full
// column height, so a layout can be drawn at any size.
package sankey

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/flow"
	"github.com/matzehuels/chileviz/pkg/layout"
	"github.com/matzehuels/chileviz/pkg/region"
)

const (
	DefaultTitle = "Principales regiones de destino de emigrantes dentro de Chile"
	DefaultPad   = 0.02
)

// Options configure [Build].
type Options struct {
	Title    string
	Ordering flow.Ordering // destination order, input order when empty
	Pad      *float64      // gap between nodes in column units, DefaultPad when nil
}

// Node is one region box in a column.
type Node struct {
	ID     string  `json:"id"`
	Region string  `json:"region"`
	Row    int     `json:"row"` // flow.OriginRow or flow.DestinationRow
	Y      float64 `json:"y"`
	H      float64 `json:"h"`
	Value  float64 `json:"value"`
}

// Link is one flow band. Y0a..Y0b is its span on the origin node and
// Y1a..Y1b its span on the destination node.
type Link struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Rank        int     `json:"rank"`
	Magnitude   float64 `json:"magnitude"`
	Y0a         float64 `json:"y0a"`
	Y0b         float64 `json:"y0b"`
	Y1a         float64 `json:"y1a"`
	Y1b         float64 `json:"y1b"`
}

// Layout is the computed Sankey diagram.
type Layout struct {
	Title     string  `json:"title"`
	Ordering  string  `json:"ordering"`
	Scale     float64 `json:"scale"` // column units per person
	Nodes     []Node  `json:"nodes"`
	Links     []Link  `json:"links"`
	Total     float64 `json:"total"`     // recorded emigrants over all origins
	Flow      float64 `json:"flow"`      // emigrants represented by links
	Remainder float64 `json:"remainder"` // Total - Flow
	Coverage  float64 `json:"coverage"`  // Flow / Total
	Crossings int     `json:"crossings"`

	CrossingWeight float64 `json:"crossing_weight"` // sum of m1*m2 over crossing band pairs
}

// Origins returns the nodes of the left column, top to bottom.
func (l *Layout) Origins() []Node { return l.row(flow.OriginRow) }

// Destinations returns the nodes of the right column, top to bottom.
func (l *Layout) Destinations() []Node { return l.row(flow.DestinationRow) }

func (l *Layout) row(r int) []Node {
	var out []Node
	for _, n := range l.Nodes {
		if n.Row == r {
			out = append(out, n)
		}
	}
	return out
}

// Build derives the flows of m and stacks them into two columns.
// Regions without flow on a side are left out of that column. Both columns
// share one scale, so a band has the same thickness at both ends.
func Build(m *region.Migration, opts Options) (*Layout, error) {
	if m == nil {
		return nil, errors.InvalidInput("sankey chart needs migration data")
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	pad := DefaultPad
	if opts.Pad != nil {
		pad = *opts.Pad
	}
	if pad < 0 || pad >= 1 || pad != pad {
		return nil, errors.InvalidInput("node padding must be in [0, 1), got %v", pad)
	}
	if opts.Ordering == "" {
		opts.Ordering = flow.OrderInput
	}

	n, err := flow.Build(m)
	if err != nil {
		return nil, err
	}
	if err := opts.Ordering.Apply(n); err != nil {
		return nil, err
	}

	l := &Layout{
		Title:     opts.Title,
		Ordering:  string(opts.Ordering),
		Total:     n.TotalEmigration(),
		Coverage:  n.Coverage(),
		Crossings: n.Crossings(),

		CrossingWeight: n.WeightedCrossings(),
	}
	var edges []flow.Edge
	for _, e := range n.Edges() {
		if e.Magnitude > 0 {
			edges = append(edges, e)
			l.Flow += e.Magnitude
		}
	}
	l.Remainder = flow.Remainder(edges, l.Total)
	if l.Flow == 0 {
		return nil, errors.InvalidInput("no migration flows to draw")
	}

	origins := withFlow(n.Order(flow.OriginRow), n.OutFlow)
	dests := withFlow(n.Order(flow.DestinationRow), n.InFlow)
	usable := math.Min(1-pad*float64(len(origins)-1), 1-pad*float64(len(dests)-1))
	if usable <= 0 {
		return nil, errors.InvalidInput("node padding %v leaves no room for %d nodes", pad, max(len(origins), len(dests)))
	}
	l.Scale = usable / l.Flow

	oNodes, err := column(origins, flow.OriginRow, n.OutFlow, l.Scale, pad)
	if err != nil {
		return nil, err
	}
	dNodes, err := column(dests, flow.DestinationRow, n.InFlow, l.Scale, pad)
	if err != nil {
		return nil, err
	}
	l.Nodes = append(oNodes, dNodes...)
	l.Links = stack(edges, oNodes, dNodes, l.Scale)
	return l, nil
}

func withFlow(order []string, value func(string) float64) []string {
	var out []string
	for _, r := range order {
		if value(r) > 0 {
			out = append(out, r)
		}
	}
	return out
}

func column(regions []string, row int, value func(string) float64, scale, pad float64) ([]Node, error) {
	values := make([]float64, len(regions))
	var total float64
	for i, r := range regions {
		values[i] = value(r)
		total += values[i]
	}
	segs, err := layout.Partition(values, total*scale)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(regions))
	for i, r := range regions {
		id := flow.OriginID(r)
		if row == flow.DestinationRow {
			id = flow.DestinationID(r)
		}
		nodes[i] = Node{
			ID:     id,
			Region: r,
			Row:    row,
			Y:      segs[i].Start + float64(i)*pad,
			H:      segs[i].Width,
			Value:  values[i],
		}
	}
	return nodes, nil
}

// stack places each band inside its nodes. Bands leave an origin in the
// order of their destinations and enter a destination in the order of
// their origins, which keeps bands from crossing inside a node.
func stack(edges []flow.Edge, origins, dests []Node, scale float64) []Link {
	oPos := nodeIndex(origins)
	dPos := nodeIndex(dests)

	links := make([]Link, len(edges))
	for i, e := range edges {
		links[i] = Link{Origin: e.Origin, Destination: e.Destination, Rank: e.Rank, Magnitude: e.Magnitude}
	}

	byOrigin := make([][]int, len(origins))
	byDest := make([][]int, len(dests))
	for i, e := range edges {
		byOrigin[oPos[e.Origin]] = append(byOrigin[oPos[e.Origin]], i)
		byDest[dPos[e.Destination]] = append(byDest[dPos[e.Destination]], i)
	}

	for o, idx := range byOrigin {
		sortBy(idx, func(i int) int { return dPos[edges[i].Destination] })
		y := origins[o].Y
		for _, i := range idx {
			links[i].Y0a, links[i].Y0b = y, y+edges[i].Magnitude*scale
			y = links[i].Y0b
		}
	}
	for d, idx := range byDest {
		sortBy(idx, func(i int) int { return oPos[edges[i].Origin] })
		y := dests[d].Y
		for _, i := range idx {
			links[i].Y1a, links[i].Y1b = y, y+edges[i].Magnitude*scale
			y = links[i].Y1b
		}
	}
	return links
}

func nodeIndex(nodes []Node) map[string]int {
	m := make(map[string]int, len(nodes))
	for i, n := range nodes {
		m[n.Region] = i
	}
	return m
}

func sortBy(idx []int, key func(int) int) {
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(key(a), key(b)) })
}
