// Package flowgraph renders a migration [flow.Network] as a node-link
// diagram through Graphviz.
//
// Origins form the left rank and destinations the right rank; each edge's
// pen width grows with its magnitude so the main corridors stand out.
// Primary destinations are drawn green and secondary ones orange, the same
// colours the Sankey chart uses.
//
//	dot := flowgraph.ToDOT(network, flowgraph.Options{})
//	svg, err := flowgraph.Render(ctx, dot, render.FormatSVG)
//
// Rendering runs Graphviz in-process via [github.com/goccy/go-graphviz].
// Destinations without incoming flow are left out of the diagram.
//
// [flow.Network]: github.com/matzehuels/chileviz/pkg/flow
package flowgraph
