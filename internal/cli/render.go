package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/chart/petal"
	"github.com/matzehuels/chileviz/pkg/observability"
	"github.com/matzehuels/chileviz/pkg/pipeline"
	"github.com/matzehuels/chileviz/pkg/render"
	"github.com/matzehuels/chileviz/pkg/source/sqlsource"
)

// chartFlags are the flags shared by render, inspect and watch.
type chartFlags struct {
	geo         string
	geoProperty string
	formats     string
	title       string
	width       float64
	height      float64
	scale       float64
	colormap    string
	ordering    string
	group       []string
	noGroup     bool
	floor       float64
	detailed    bool
}

func (f *chartFlags) register(cmd *cobra.Command, withFormats bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.geo, "geo", "", "GeoJSON file with the region polygons (choropleth)")
	fl.StringVar(&f.geoProperty, "geo-property", "", "feature property holding the region name (default Region)")
	if withFormats {
		fl.StringVarP(&f.formats, "format", "f", "svg", "output format(s): svg, png, pdf, json, dot (comma-separated)")
		fl.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
		fl.BoolVar(&f.detailed, "detailed", false, "label flowgraph edges with their magnitudes")
	}
	fl.StringVar(&f.title, "title", "", "chart title")
	fl.Float64Var(&f.width, "width", 0, "frame width (default per chart)")
	fl.Float64Var(&f.height, "height", 0, "frame height (default per chart)")
	fl.StringVar(&f.colormap, "colormap", "", "colour map: viridis, blues, greens, oranges")
	fl.StringVar(&f.ordering, "ordering", "", "destination ordering: input (default), barycentric")
	fl.StringSliceVar(&f.group, "group", nil, "horizon regions merged into one \"Otras regiones\" band, drawn last")
	fl.BoolVar(&f.noGroup, "no-group", false, "draw every horizon region in its own band")
	fl.Float64Var(&f.floor, "floor", petal.DefaultFloor, "smallest petal radius as a fraction of the largest")
}

// options builds pipeline options for a chart of kind read from data.
func (f *chartFlags) options(kind, data string) (pipeline.Options, error) {
	k, err := chart.ParseKind(kind)
	if err != nil {
		return pipeline.Options{}, err
	}
	floor := f.floor
	opts := pipeline.Options{
		Kind:        k,
		Input:       data,
		Geometry:    f.geo,
		GeoProperty: f.geoProperty,
		Width:       f.width,
		Height:      f.height,
		Scale:       f.scale,
		Title:       f.title,
		ColorMap:    f.colormap,
		Ordering:    f.ordering,
		Group:       f.group,
		NoGroup:     f.noGroup,
		Floor:       &floor,
		Detailed:    f.detailed,
	}
	if f.formats != "" {
		if opts.Formats, err = render.ParseFormats(f.formats, pipeline.AllowedFormats(k)); err != nil {
			return pipeline.Options{}, err
		}
	}
	return opts, nil
}

type renderOpts struct {
	chartFlags
	output      string
	noCache     bool
	metricsFile string
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <kind> <data>",
		Short: "Render a chart from a dataset",
		Long: `Render a chart from a dataset file or database.

Kinds: petal (population density), sankey (internal migration), horizon
(births per year), choropleth (map, needs --geo) and flowgraph (Graphviz
view of the migration flows).

The dataset is a .json, .yaml, .toml, .csv or .xlsx file, or a database DSN
such as sqlite://datos.db or postgres://user@host/db.`,
		Example: `  chileviz render petal examples/data/densidad.json -f svg,png
  chileviz render sankey examples/data/migracion.csv --ordering barycentric
  chileviz render choropleth examples/data/madre_extranjera.yaml --geo examples/data/regiones_simplificadas.geojson`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return kindNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], args[1], &opts)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path; extensions are added per format")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without reading or writing the cache")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this textfile")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, kind, data string, opts *renderOpts) error {
	popts, err := opts.options(kind, data)
	if err != nil {
		return err
	}
	popts.NoCache = opts.noCache

	if opts.metricsFile != "" {
		prom := observability.NewPrometheus()
		observability.SetPipelineHooks(prom)
		observability.SetCacheHooks(prom)
		defer observability.Reset()
		defer func() {
			if err := prom.WriteTextfile(opts.metricsFile); err != nil {
				loggerFromContext(ctx).Warn("write metrics", "path", opts.metricsFile, "err", err)
			}
		}()
	}

	runner, err := c.newRunner(ctx, nil, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	dir, base := outputPath(opts.output, data, popts.Kind)
	_, err = runChart(ctx, runner, popts, dir, base)
	return err
}

// runChart executes one run and writes its artifacts to dir/base.<ext>.
// Nothing is written when any stage fails.
func runChart(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, dir, base string) (*pipeline.Result, error) {
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	paths, err := pipeline.WriteArtifacts(dir, base, res.Artifacts)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", base, err)
	}
	printResult(res, paths)
	return res, nil
}

// outputPath splits the output flag into a directory and a base name. An
// empty output derives the name from the dataset file, or from the chart
// kind for database inputs. Known format extensions are stripped.
func outputPath(output, data string, kind chart.Kind) (dir, base string) {
	if output == "" {
		if sqlsource.IsDSN(data) {
			return ".", string(kind)
		}
		name := filepath.Base(data)
		return ".", strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	for _, f := range []render.Format{render.FormatSVG, render.FormatPNG, render.FormatPDF, render.FormatJSON, render.FormatDOT} {
		if strings.EqualFold(ext, f.Ext()) {
			output = strings.TrimSuffix(output, ext)
			break
		}
	}
	return filepath.Dir(output), filepath.Base(output)
}

func kindNames() []string {
	names := make([]string, len(chart.Kinds))
	for i, k := range chart.Kinds {
		names[i] = string(k) + "\t" + k.Description()
	}
	return names
}
