// Package pipeline runs a chart from dataset to rendered files.
//
// A run has three stages:
//
//  1. Load: read the dataset through a source.Source (file or SQL) and,
//     for maps, the GeoJSON geometry.
//  2. Layout: compute the chart's layout with the pkg/chart builders.
//  3. Render: draw the layout and encode it in every requested format.
//
// Rendered artifacts are cached by a hash of the dataset and every option
// that affects the output. The CLI, batch mode and watch mode all go through
// [Runner.Execute]:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:    chart.KindPetal,
//	    Input:   "examples/data/densidad.json",
//	    Formats: []render.Format{render.FormatSVG},
//	})
//	svg := res.Artifacts[render.FormatSVG]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chileviz/pkg/cache"
	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/chart/petal"
	"github.com/matzehuels/chileviz/pkg/colormap"
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/flow"
	"github.com/matzehuels/chileviz/pkg/geo"
	"github.com/matzehuels/chileviz/pkg/render"
	"github.com/matzehuels/chileviz/pkg/render/flowgraph"
	"github.com/matzehuels/chileviz/pkg/source"
)

// DefaultScale is the PNG pixel density relative to the scene size.
const DefaultScale = 2.0

// Options configure a run.
type Options struct {
	Kind        chart.Kind      `json:"kind"`
	Input       string          `json:"input,omitempty"` // dataset path or database DSN
	Geometry    string          `json:"geometry,omitempty"`
	GeoProperty string          `json:"geo_property,omitempty"`
	Formats     []render.Format `json:"formats,omitempty"`

	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Title    string   `json:"title,omitempty"`
	ColorMap string   `json:"colormap,omitempty"`
	Ordering string   `json:"ordering,omitempty"`
	Group    []string `json:"group,omitempty"`
	NoGroup  bool     `json:"no_group,omitempty"`
	Floor    *float64 `json:"floor,omitempty"` // petal radius floor, petal.DefaultFloor when nil
	Detailed bool     `json:"detailed,omitempty"`
	NoCache  bool     `json:"no_cache,omitempty"`

	// Source replaces Input when set.
	Source source.Source `json:"-"`
	Logger *log.Logger   `json:"-"`

	validated bool
}

// Result is the outcome of a run.
type Result struct {
	RunID     string
	Kind      chart.Kind
	Title     string
	Layout    any // *petal.Layout, *sankey.Layout, *horizon.Layout, *choropleth.Layout or *FlowGraph
	Artifacts map[render.Format][]byte
	Warnings  []string
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timings and sizes of a run.
type Stats struct {
	Records    int
	Bytes      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports whether the artifacts came from the cache.
type CacheInfo struct {
	RenderHit bool
	Key       string
}

// AllowedFormats returns the output formats a chart kind supports.
func AllowedFormats(k chart.Kind) []render.Format {
	if k == chart.KindFlowGraph {
		return flowgraph.Formats
	}
	return render.SceneFormats
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	kind, err := chart.ParseKind(string(o.Kind))
	if err != nil {
		return err
	}
	o.Kind = kind

	if o.Input == "" && o.Source == nil {
		return errors.InvalidInput("no dataset given")
	}
	if kind.NeedsGeometry() && o.Geometry == "" {
		return errors.InvalidInput("%s chart needs a GeoJSON file", kind)
	}
	if o.GeoProperty == "" {
		o.GeoProperty = geo.DefaultNameProperty
	}

	if len(o.Formats) == 0 {
		o.Formats = []render.Format{render.FormatSVG}
	}
	allowed := AllowedFormats(kind)
	for _, f := range o.Formats {
		if !slices.Contains(allowed, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "%s chart cannot be rendered as %q (want one of %s)", kind, f, render.Join(allowed))
		}
	}

	w, h := kind.DefaultSize()
	if o.Width == 0 {
		o.Width = w
	}
	if o.Height == 0 {
		o.Height = h
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.InvalidInput("frame size must be positive, got %vx%v", o.Width, o.Height)
	}
	if mw, mh := kind.MinSize(); o.Width < mw || o.Height < mh {
		return errors.InvalidInput("%s chart needs a frame of at least %vx%v, got %vx%v", kind, mw, mh, o.Width, o.Height)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.InvalidInput("scale must be positive, got %v", o.Scale)
	}
	if o.Floor == nil {
		floor := petal.DefaultFloor
		o.Floor = &floor
	}
	if f := *o.Floor; f < 0 || f > 1 || f != f {
		return errors.InvalidInput("radius floor must be in [0, 1], got %v", f)
	}

	if o.ColorMap != "" {
		if _, err := colormap.Lookup(o.ColorMap); err != nil {
			return err
		}
	}
	if _, err := flow.ParseOrdering(o.Ordering); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns the cache key options that change the layout.
func (o *Options) LayoutKeyOpts(geoHash string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Kind:     string(o.Kind),
		Title:    o.Title,
		ColorMap: o.ColorMap,
		Ordering: o.Ordering,
		Group:    o.Group,
		NoGroup:  o.NoGroup,
		Floor:    *o.Floor,
		GeoHash:  geoHash,
	}
}

// ArtifactKeyOpts returns the cache key options for one output format.
func (o *Options) ArtifactKeyOpts(f render.Format) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: string(f), Width: o.Width, Height: o.Height}
	if f == render.FormatPNG {
		k.Scale = o.Scale
	}
	if o.Detailed {
		k.Format += "+detailed"
	}
	return k
}
