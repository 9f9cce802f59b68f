package chart

import (
	"strings"

	"github.com/matzehuels/chileviz/pkg/errors"
)

// Kind identifies a chart type.
type Kind string

const (
	KindPetal      Kind = "petal"
	KindSankey     Kind = "sankey"
	KindHorizon    Kind = "horizon"
	KindChoropleth Kind = "choropleth"
	KindFlowGraph  Kind = "flowgraph"
)

// Kinds lists every chart kind in display order.
var Kinds = []Kind{KindPetal, KindSankey, KindHorizon, KindChoropleth, KindFlowGraph}

var descriptions = map[Kind]string{
	KindPetal:      "polar petals: width by area, height and colour by density",
	KindSankey:     "internal migration flows from origin to destination regions",
	KindHorizon:    "normalized yearly series, one band per region",
	KindChoropleth: "regional map shaded by a percentage",
	KindFlowGraph:  "migration flows as a Graphviz node-link diagram",
}

var aliases = map[string]Kind{
	"densidad":  KindPetal,
	"migracion": KindSankey,
	"migración": KindSankey,
	"mapa":      KindChoropleth,
	"graph":     KindFlowGraph,
}

// ParseKind resolves a kind name or alias.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	if k, ok := aliases[s]; ok {
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidChart, "unknown chart kind %q (want petal, sankey, horizon, choropleth or flowgraph)", s)
}

// Description returns a one-line summary of the kind.
func (k Kind) Description() string { return descriptions[k] }

// NeedsGeometry reports whether the kind needs a GeoJSON file.
func (k Kind) NeedsGeometry() bool { return k == KindChoropleth }

// DefaultSize returns the frame size used when none is given.
func (k Kind) DefaultSize() (width, height float64) {
	switch k {
	case KindPetal:
		return 1400, 1200
	case KindSankey:
		return 1600, 900
	case KindHorizon:
		return 1200, 800
	case KindChoropleth:
		return 800, 1400
	}
	return 0, 0
}

// MinSize returns the smallest frame the kind can be drawn in; below it the
// fixed margins leave no room for the plot.
func (k Kind) MinSize() (width, height float64) {
	switch k {
	case KindPetal:
		return 400, 400
	case KindSankey:
		return 720, 300
	case KindHorizon:
		return 400, 300
	case KindChoropleth:
		return 300, 400
	}
	return 0, 0
}
