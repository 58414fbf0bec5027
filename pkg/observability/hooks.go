// Package observability lets a binary watch what the library packages do
// without those packages importing a metrics or tracing backend.
//
// Events fall into three groups, each with its own interface: a conversion
// run ([PipelineHooks]), cache traffic ([CacheHooks]) and outgoing HTTP
// ([HTTPHooks]). Library code fetches the current implementation and calls
// it:
//
//	observability.Pipeline().OnLoadStart(ctx, source)
//	// ... load the ontology ...
//	observability.Pipeline().OnLoadComplete(ctx, source, classes, took, err)
//
// Until something is installed every group is a no-op. The CLI installs
// [LogHooks] at startup, so the events appear as debug log lines under -v:
//
//	observability.Install(observability.NewLogHooks(logger))
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives the start and end of each conversion stage.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, classes int, took time.Duration, err error)

	OnCountStart(ctx context.Context, backing string)
	OnCountComplete(ctx context.Context, backing string, uris int, took time.Duration, err error)

	OnBuildStart(ctx context.Context, maxDepth, minSize int)
	OnBuildComplete(ctx context.Context, nodes int, took time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, took time.Duration, err error)
}

// CacheHooks receives cache traffic. kind is "http", "counts" or "ontology".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives outgoing requests. OnError covers transport failures
// only; error statuses arrive through OnResponse.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, status int, took time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// Noop implements every hook interface and does nothing.
type Noop struct{}

func (Noop) OnLoadStart(context.Context, string)                                    {}
func (Noop) OnLoadComplete(context.Context, string, int, time.Duration, error)      {}
func (Noop) OnCountStart(context.Context, string)                                   {}
func (Noop) OnCountComplete(context.Context, string, int, time.Duration, error)     {}
func (Noop) OnBuildStart(context.Context, int, int)                                 {}
func (Noop) OnBuildComplete(context.Context, int, time.Duration, error)             {}
func (Noop) OnRenderStart(context.Context, []string)                                {}
func (Noop) OnRenderComplete(context.Context, []string, time.Duration, error)       {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnRequest(context.Context, string, string, string)                      {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (Noop) OnError(context.Context, string, string, string, error)                 {}

// slot holds the installed implementation of one hook group.
type slot[T any] struct{ v atomic.Pointer[T] }

func (s *slot[T]) get(fallback T) T {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return fallback
}

func (s *slot[T]) set(h T) { s.v.Store(&h) }

var (
	pipeline slot[PipelineHooks]
	caches   slot[CacheHooks]
	requests slot[HTTPHooks]
)

// Install registers h for every hook group it implements and reports how
// many groups it took over. Call it once at startup; a nil h is ignored.
func Install(h any) int {
	n := 0
	if p, ok := h.(PipelineHooks); ok && p != nil {
		pipeline.set(p)
		n++
	}
	if c, ok := h.(CacheHooks); ok && c != nil {
		caches.set(c)
		n++
	}
	if x, ok := h.(HTTPHooks); ok && x != nil {
		requests.set(x)
		n++
	}
	return n
}

// Reset puts every group back to [Noop].
func Reset() {
	pipeline.v.Store(nil)
	caches.v.Store(nil)
	requests.v.Store(nil)
}

func Pipeline() PipelineHooks { return pipeline.get(Noop{}) }
func Cache() CacheHooks       { return caches.get(Noop{}) }
func HTTP() HTTPHooks         { return requests.get(Noop{}) }
