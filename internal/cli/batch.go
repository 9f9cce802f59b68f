package cli

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chileviz/pkg/chart"
	"github.com/matzehuels/chileviz/pkg/config"
	"github.com/matzehuels/chileviz/pkg/errors"
	"github.com/matzehuels/chileviz/pkg/observability"
	"github.com/matzehuels/chileviz/pkg/pipeline"
	"github.com/matzehuels/chileviz/pkg/render"
)

const defaultJobs = 4

type batchOpts struct {
	jobs        int
	only        []string
	noCache     bool
	metricsFile string
}

func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{jobs: defaultJobs}

	cmd := &cobra.Command{
		Use:   "batch <config.toml>",
		Short: "Render every chart of a config file",
		Long: `Render every [[chart]] of a TOML config file concurrently. The first
failure cancels the remaining charts.`,
		Example: `  chileviz batch examples/chileviz.toml
  chileviz batch examples/chileviz.toml --only densidad,migracion --jobs 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args[0], &opts)
		},
	}
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "charts rendered in parallel")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "render only the named charts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without reading or writing the cache")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics of the batch to this textfile")
	return cmd
}

func (c *CLI) runBatch(ctx context.Context, path string, opts *batchOpts) error {
	logger := loggerFromContext(ctx)
	if opts.jobs < 1 {
		return errors.InvalidInput("--jobs must be at least 1, got %d", opts.jobs)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	charts, err := selectCharts(cfg, opts.only)
	if err != nil {
		return err
	}

	if opts.metricsFile != "" {
		prom := observability.NewPrometheus()
		observability.SetPipelineHooks(prom)
		observability.SetCacheHooks(prom)
		defer observability.Reset()
		defer func() {
			if err := prom.WriteTextfile(opts.metricsFile); err != nil {
				logger.Warn("write metrics", "path", opts.metricsFile, "err", err)
			}
		}()
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering 0/%d charts", len(charts)))
	spinner.Start()
	defer spinner.Stop()

	var (
		mu       sync.Mutex
		finished int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for _, ch := range charts {
		g.Go(func() error {
			popts, err := chartOptions(ch)
			if err != nil {
				return fmt.Errorf("chart %s: %w", ch.Name, err)
			}
			popts.NoCache = opts.noCache
			res, err := runner.Execute(gctx, popts)
			if err != nil {
				return fmt.Errorf("chart %s: %w", ch.Name, err)
			}
			paths, err := pipeline.WriteArtifacts(cfg.OutDir(), ch.Name, res.Artifacts)
			if err != nil {
				return fmt.Errorf("chart %s: %w", ch.Name, err)
			}

			mu.Lock()
			defer mu.Unlock()
			finished++
			spinner.SetMessage(fmt.Sprintf("Rendering %d/%d charts", finished, len(charts)))
			printResult(res, paths)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d charts", len(charts)))
	return nil
}

// selectCharts returns the config's charts merged with its defaults,
// restricted to names when any are given.
func selectCharts(cfg *config.Config, names []string) ([]config.Chart, error) {
	for _, n := range names {
		if _, err := cfg.Chart(n); err != nil {
			return nil, err
		}
	}
	var out []config.Chart
	for _, ch := range cfg.Charts {
		if len(names) > 0 && !slices.Contains(names, ch.Name) {
			continue
		}
		out = append(out, cfg.Merged(ch))
	}
	return out, nil
}

// chartOptions converts a merged config entry into pipeline options.
func chartOptions(ch config.Chart) (pipeline.Options, error) {
	kind, err := chart.ParseKind(ch.Kind)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Kind:     kind,
		Input:    ch.Data,
		Geometry: ch.Geo,
		Title:    ch.Title,
		ColorMap: ch.ColorMap,
		Ordering: ch.Ordering,
		Group:    ch.Group,
		NoGroup:  ch.NoGroup,
		Width:    ch.Width,
		Height:   ch.Height,
		Floor:    ch.Floor,
	}
	for _, f := range ch.Formats {
		parsed, err := render.ParseFormats(f, pipeline.AllowedFormats(kind))
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Formats = append(opts.Formats, parsed...)
	}
	return opts, nil
}
