package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chileviz"

// Prometheus implements PipelineHooks and CacheHooks with metrics on a
// private registry.
type Prometheus struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	records       *prometheus.GaugeVec
	renderedBytes *prometheus.CounterVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
}

// NewPrometheus registers the chileviz metrics on a fresh registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"stage", "kind"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Pipeline stages that failed.",
		}, []string{"stage", "kind"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records in the last loaded dataset.",
		}, []string{"source"}),
		renderedBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rendered_bytes_total",
			Help:      "Bytes of rendered artifacts.",
		}, []string{"kind"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
	}
	p.registry.MustRegister(p.stageDuration, p.stageErrors, p.records, p.renderedBytes, p.cacheEvents, p.cacheBytes)
	return p
}

// Registry returns the registry holding the metrics.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) observe(stage, kind string, d time.Duration, err error) {
	p.stageDuration.WithLabelValues(stage, kind).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues(stage, kind).Inc()
	}
}

func (p *Prometheus) OnLoadStart(context.Context, string) {}

func (p *Prometheus) OnLoadComplete(_ context.Context, source string, records int, d time.Duration, err error) {
	p.observe("load", "", d, err)
	if err == nil {
		p.records.WithLabelValues(source).Set(float64(records))
	}
}

func (p *Prometheus) OnLayoutStart(context.Context, string, int) {}

func (p *Prometheus) OnLayoutComplete(_ context.Context, kind string, d time.Duration, err error) {
	p.observe("layout", kind, d, err)
}

func (p *Prometheus) OnRenderStart(context.Context, string, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, kind string, _ []string, bytes int, d time.Duration, err error) {
	p.observe("render", kind, d, err)
	if err == nil {
		p.renderedBytes.WithLabelValues(kind).Add(float64(bytes))
	}
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// WriteTextfile writes every metric to path in the text exposition format,
// for the node exporter's textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
)
