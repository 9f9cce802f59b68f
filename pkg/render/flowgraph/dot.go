package flowgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/flow"
	"github.com/matzehuels/chileviz/pkg/locale"
	"github.com/matzehuels/chileviz/pkg/render"
)

// Formats lists the formats [Render] accepts.
var Formats = []render.Format{render.FormatSVG, render.FormatPNG, render.FormatDOT}

const (
	minPenWidth = 1.0
	maxPenWidth = 12.0

	primaryColor   = "#008000"
	secondaryColor = "#ffa500"
)

// Options configures the generated DOT.
type Options struct {
	// Title is drawn above the graph when set.
	Title string
	// Detailed adds the flow magnitude to each edge label.
	Detailed bool
}

// ToDOT converts the network to Graphviz DOT source.
func ToDOT(n *flow.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flows {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#00009633\", fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("  ranksep=3;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=16;\n", opts.Title)
	}
	buf.WriteString("\n")

	edges := n.Edges()
	var peak float64
	for _, e := range edges {
		peak = max(peak, e.Magnitude)
	}

	buf.WriteString("  subgraph origins {\n    rank=same;\n")
	for _, node := range n.Origins() {
		if n.OutFlow(node.Region) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "    %q [label=%q];\n", node.ID, node.Region)
	}
	buf.WriteString("  }\n")

	buf.WriteString("  subgraph destinations {\n    rank=same;\n")
	for _, node := range n.Destinations() {
		if n.InFlow(node.Region) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "    %q [label=%q];\n", node.ID, node.Region)
	}
	buf.WriteString("  }\n\n")

	for _, e := range edges {
		attrs := []string{
			fmt.Sprintf("penwidth=%.2f", penWidth(e.Magnitude, peak)),
			fmt.Sprintf("color=%q", edgeColor(e.Rank)),
		}
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", locale.Number(e.Magnitude, 0)))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", flow.OriginID(e.Origin), flow.DestinationID(e.Destination), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func penWidth(m, peak float64) float64 {
	if peak <= 0 {
		return minPenWidth
	}
	return minPenWidth + (maxPenWidth-minPenWidth)*m/peak
}

func edgeColor(rank int) string {
	if rank == 0 {
		return primaryColor + "99"
	}
	return secondaryColor + "99"
}

// Render lays out dot with Graphviz and encodes it. FormatDOT returns the
// source unchanged.
func Render(ctx context.Context, dot string, f render.Format) ([]byte, error) {
	var gf graphviz.Format
	switch f {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		gf = graphviz.SVG
	case render.FormatPNG:
		gf = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "flow graph cannot be rendered as %q (want %s)", f, render.Join(Formats))
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gf, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}
	if f == render.FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a plain
// viewBox so the diagram scales like the other charts.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
