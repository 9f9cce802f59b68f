package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chileviz/pkg/cache"
	"github.com/matzehuels/chileviz/pkg/geo"
	"github.com/matzehuels/chileviz/pkg/locale"
	"github.com/matzehuels/chileviz/pkg/observability"
	"github.com/matzehuels/chileviz/pkg/render"
	"github.com/matzehuels/chileviz/pkg/source"
)

// Runner executes runs against a shared cache. It holds no per-run state,
// so one Runner may serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: cache.TTLArtifact}
}

// Execute runs load, layout and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{RunID: uuid.NewString(), Kind: opts.Kind}
	logger := opts.Logger.With("run", res.RunID[:8], "chart", opts.Kind)
	hooks := observability.Pipeline()

	start := time.Now()
	doc, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	fc, err := LoadGeometry(opts)
	if err != nil {
		return nil, fmt.Errorf("load geometry: %w", err)
	}
	res.Stats.LoadTime = time.Since(start)
	res.Stats.Records = len(doc.Records)
	logger.Info("loaded dataset", "records", res.Stats.Records, "duration", res.Stats.LoadTime)

	start = time.Now()
	hooks.OnLayoutStart(ctx, string(opts.Kind), len(doc.Records))
	c, err := Build(doc, fc, opts)
	res.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, string(opts.Kind), res.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Title, res.Layout, res.Warnings = c.Title, c.Layout, c.Warnings
	for _, w := range c.Warnings {
		logger.Warn(w)
	}
	logger.Debug("computed layout", "duration", res.Stats.LayoutTime)

	start = time.Now()
	formats := formatNames(opts.Formats)
	hooks.OnRenderStart(ctx, string(opts.Kind), formats)
	artifacts, hit, key, err := r.render(ctx, c, doc, fc, opts)
	res.Stats.RenderTime = time.Since(start)
	for _, data := range artifacts {
		res.Stats.Bytes += len(data)
	}
	hooks.OnRenderComplete(ctx, string(opts.Kind), formats, res.Stats.Bytes, res.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.CacheInfo = CacheInfo{RenderHit: hit, Key: key}

	logger.Info("rendered",
		"formats", formats,
		"bytes", locale.Size(res.Stats.Bytes),
		"cached", hit,
		"duration", res.Stats.RenderTime)
	return res, nil
}

// render returns every artifact from the cache or renders them all.
func (r *Runner) render(ctx context.Context, c *Chart, doc *source.Document, fc *geo.Collection, opts Options) (map[render.Format][]byte, bool, string, error) {
	cacheHooks := observability.Cache()
	layoutKey, err := r.layoutKey(doc, fc, opts)
	if err != nil {
		return nil, false, "", err
	}

	if !opts.NoCache {
		artifacts := make(map[render.Format][]byte, len(opts.Formats))
		for _, f := range opts.Formats {
			data, ok, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(f)))
			if err != nil {
				opts.Logger.Debug("cache lookup failed", "format", f, "err", err)
			}
			if !ok {
				cacheHooks.OnCacheMiss(ctx, "artifact")
				break
			}
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, layoutKey, nil
		}
	}

	artifacts, err := Render(ctx, c, opts)
	if err != nil {
		return nil, false, layoutKey, err
	}
	if !opts.NoCache {
		for f, data := range artifacts {
			if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(f)), data, r.TTL); err != nil {
				opts.Logger.Debug("cache write failed", "format", f, "err", err)
				continue
			}
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, layoutKey, nil
}

func (r *Runner) layoutKey(doc *source.Document, fc *geo.Collection, opts Options) (string, error) {
	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return "", fmt.Errorf("hash dataset: %w", err)
	}
	var geoHash string
	if opts.Kind.NeedsGeometry() {
		if geoHash, err = cache.HashJSON(fc); err != nil {
			return "", fmt.Errorf("hash geometry: %w", err)
		}
	}
	return r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts(geoHash)), nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func formatNames(fs []render.Format) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}
