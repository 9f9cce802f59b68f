package observability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "regiones.json")
	p.OnLoadComplete(ctx, "regiones.json", 16, time.Second, nil)
	p.OnLayoutStart(ctx, "petal", 16)
	p.OnLayoutComplete(ctx, "petal", time.Second, nil)
	p.OnRenderStart(ctx, "petal", []string{"svg"})
	p.OnRenderComplete(ctx, "petal", []string{"svg"}, 1024, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}

	m := NewPrometheus()
	SetPipelineHooks(m)
	SetCacheHooks(m)
	if Pipeline() != PipelineHooks(m) || Cache() != CacheHooks(m) {
		t.Error("hooks not installed")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(m) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestPrometheus(t *testing.T) {
	ctx := context.Background()
	m := NewPrometheus()

	m.OnLoadComplete(ctx, "regiones.json", 16, 2*time.Millisecond, nil)
	m.OnLayoutComplete(ctx, "petal", time.Millisecond, nil)
	m.OnRenderComplete(ctx, "petal", []string{"svg", "png"}, 4096, 10*time.Millisecond, nil)
	m.OnRenderComplete(ctx, "sankey", []string{"pdf"}, 0, time.Millisecond, errors.New("boom"))
	m.OnCacheMiss(ctx, "artifact")
	m.OnCacheSet(ctx, "artifact", 4096)
	m.OnCacheHit(ctx, "artifact")

	if got := testutil.ToFloat64(m.records.WithLabelValues("regiones.json")); got != 16 {
		t.Errorf("records = %v", got)
	}
	if got := testutil.ToFloat64(m.renderedBytes.WithLabelValues("petal")); got != 4096 {
		t.Errorf("rendered bytes = %v", got)
	}
	if got := testutil.ToFloat64(m.stageErrors.WithLabelValues("render", "sankey")); got != 1 {
		t.Errorf("render errors = %v", got)
	}
	if got := testutil.ToFloat64(m.cacheEvents.WithLabelValues("artifact", "hit")); got != 1 {
		t.Errorf("cache hits = %v", got)
	}
	if n := testutil.CollectAndCount(m.stageDuration); n != 4 {
		t.Errorf("duration series = %d", n)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := NewPrometheus()
	m.OnCacheHit(context.Background(), "layout")

	path := filepath.Join(t.TempDir(), "chileviz.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `chileviz_cache_events_total{event="hit",key_type="layout"} 1`) {
		t.Errorf("textfile:\n%s", data)
	}
}
