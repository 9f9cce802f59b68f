// Package observability lets callers watch chart runs without the library
// depending on a metrics backend.
//
// Libraries report events to the registered hooks; the defaults do nothing.
// The CLI installs [Prometheus] hooks when --metrics-file is given:
//
//	m := observability.NewPrometheus()
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//	defer m.WriteTextfile(path)
//
// Libraries emit events like this:
//
//	observability.Pipeline().OnLoadStart(ctx, src)
//	doc, err := src.Load(ctx)
//	observability.Pipeline().OnLoadComplete(ctx, src, len(doc.Records), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives the stage events of a chart run.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, records int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, kind string, records int)
	OnLayoutComplete(ctx context.Context, kind string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, kind string, formats []string)
	OnRenderComplete(ctx context.Context, kind string, formats []string, bytes int, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                         {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string)                    {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, int, time.Duration, error) {
}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
