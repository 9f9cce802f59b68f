package pipeline

import (
	"fmt"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/chart/choropleth"
	"github.com/matzehuels/chileviz/pkg/chart/horizon"
	"github.com/matzehuels/chileviz/pkg/chart/petal"
	"github.com/matzehuels/chileviz/pkg/chart/sankey"
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/flow"
	"github.com/matzehuels/chileviz/pkg/geo"
	"github.com/matzehuels/chileviz/pkg/locale"
	"github.com/matzehuels/chileviz/pkg/render/flowgraph"
	"github.com/matzehuels/chileviz/pkg/scene"
	"github.com/matzehuels/chileviz/pkg/source"
)

// Chart is a computed layout ready to render.
type Chart struct {
	Kind     chart.Kind
	Title    string
	Layout   any
	Warnings []string

	draw func(width, height float64) (*scene.Scene, error)
	dot  string
}

// FlowGraph is the layout of a flowgraph chart.
type FlowGraph struct {
	Title          string      `json:"title"`
	Ordering       string      `json:"ordering"`
	Edges          []flow.Edge `json:"edges"`
	Total          float64     `json:"total"`
	Coverage       float64     `json:"coverage"`
	Crossings      int         `json:"crossings"`
	CrossingWeight float64     `json:"crossing_weight"` // sum of m1*m2 over crossing edge pairs
	DOT            string      `json:"dot"`
}

// Draw turns the layout into a scene. It fails for flowgraph charts, which
// are drawn by Graphviz.
func (c *Chart) Draw(width, height float64) (*scene.Scene, error) {
	if c.draw == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s charts have no scene", c.Kind)
	}
	return c.draw(width, height)
}

// DOT returns the Graphviz source of a flowgraph chart.
func (c *Chart) DOT() string { return c.dot }

// Build computes the layout of opts.Kind from doc. fc is only used by
// choropleth charts.
func Build(doc *source.Document, fc *geo.Collection, opts Options) (*Chart, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	title := opts.Title
	if title == "" {
		title = doc.Title
	}
	ordering, err := flow.ParseOrdering(opts.Ordering)
	if err != nil {
		return nil, err
	}

	c := &Chart{Kind: opts.Kind}
	switch opts.Kind {
	case chart.KindPetal:
		ds, err := doc.Dataset(source.AttrArea, source.AttrPopulation)
		if err != nil {
			return nil, err
		}
		l, err := petal.Build(ds, petal.Options{Title: title, ColorMap: opts.ColorMap, Floor: opts.Floor})
		if err != nil {
			return nil, err
		}
		c.Title, c.Layout = l.Title, l
		c.draw = func(w, h float64) (*scene.Scene, error) { return petal.Draw(l, w, h) }

	case chart.KindSankey:
		m, err := doc.Migration()
		if err != nil {
			return nil, err
		}
		l, err := sankey.Build(m, sankey.Options{Title: title, Ordering: ordering})
		if err != nil {
			return nil, err
		}
		c.Title, c.Layout = l.Title, l
		if l.Remainder > 0 {
			c.Warnings = append(c.Warnings, fmt.Sprintf("flows cover %s of %s emigrants",
				locale.Percent(l.Coverage*100), locale.Number(l.Total, 0)))
		}
		c.draw = func(w, h float64) (*scene.Scene, error) { return sankey.Draw(l, w, h) }

	case chart.KindHorizon:
		s, err := doc.Series()
		if err != nil {
			return nil, err
		}
		l, err := horizon.Build(s, horizon.Options{Title: title, Group: opts.Group, NoGroup: opts.NoGroup})
		if err != nil {
			return nil, err
		}
		c.Title, c.Layout = l.Title, l
		c.draw = func(w, h float64) (*scene.Scene, error) { return horizon.Draw(l, w, h) }

	case chart.KindChoropleth:
		ds, err := doc.Dataset(source.AttrPercent, "")
		if err != nil {
			return nil, err
		}
		l, err := choropleth.Build(fc, ds, choropleth.Options{Title: title, ColorMap: opts.ColorMap})
		if err != nil {
			return nil, err
		}
		c.Title, c.Layout = l.Title, l
		if l.Missing > 0 {
			c.Warnings = append(c.Warnings, fmt.Sprintf("%d map features have no data", l.Missing))
		}
		for _, r := range l.Unmatched {
			c.Warnings = append(c.Warnings, fmt.Sprintf("region %q has no map feature", r))
		}
		c.draw = func(w, h float64) (*scene.Scene, error) { return choropleth.Draw(l, w, h) }

	case chart.KindFlowGraph:
		m, err := doc.Migration()
		if err != nil {
			return nil, err
		}
		n, err := flow.Build(m)
		if err != nil {
			return nil, err
		}
		if err := ordering.Apply(n); err != nil {
			return nil, err
		}
		if title == "" {
			title = sankey.DefaultTitle
		}
		g := &FlowGraph{
			Title:          title,
			Ordering:       string(ordering),
			Edges:          n.Edges(),
			Total:          n.TotalEmigration(),
			Coverage:       n.Coverage(),
			Crossings:      n.Crossings(),
			CrossingWeight: n.WeightedCrossings(),
			DOT:            flowgraph.ToDOT(n, flowgraph.Options{Title: title, Detailed: opts.Detailed}),
		}
		c.Title, c.Layout, c.dot = g.Title, g, g.DOT
		if g.Coverage < 1 {
			c.Warnings = append(c.Warnings, fmt.Sprintf("flows cover %s of %s emigrants",
				locale.Percent(g.Coverage*100), locale.Number(g.Total, 0)))
		}

	default:
		return nil, errors.New(errors.ErrCodeInvalidChart, "unknown chart kind %q", opts.Kind)
	}
	return c, nil
}
