// Package observability exposes event hooks for scouting runs, cache lookups
// and outgoing GitHub requests.
//
// Each event family has an interface, a no-op default and a global setter.
// Libraries emit events through the accessors; the CLI registers concrete
// implementations at startup. The spinner implements [PipelineHooks], and
// [LogHooks] writes cache and HTTP events to a logger under --verbose:
//
//	observability.SetCacheHooks(observability.NewLogHooks(logger))
//	observability.SetHTTPHooks(observability.NewLogHooks(logger))
//
// Emitting an event:
//
//	observability.Pipeline().OnStageStart(ctx, "aggregate", len(selected))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the scouting pipeline.
type PipelineHooks interface {
	// Run events
	OnRunStart(ctx context.Context, runID string, offset, repoLimit int)
	OnRunComplete(ctx context.Context, runID string, candidates, scanned int, duration time.Duration, err error)

	// Stage events. in is the number of work units handed to the stage,
	// out the number it produced.
	OnStageStart(ctx context.Context, stage string, in int)
	OnStageComplete(ctx context.Context, stage string, out int, duration time.Duration)

	// OnItemFailure records a per-item failure that the stage absorbed.
	OnItemFailure(ctx context.Context, stage, item, outcome string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives response cache events. key is the full cache key,
// including the token scope prefix.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events for outgoing API requests. service names the
// client that issued the request, such as "github".
type HTTPHooks interface {
	OnRequest(ctx context.Context, service, method, url string)
	OnResponse(ctx context.Context, service, method, url string, status int, duration time.Duration)

	// OnError records a transport failure; HTTP error statuses arrive
	// through OnResponse.
	OnError(ctx context.Context, service, method, url string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, string, int, int) {}
func (NoopPipelineHooks) OnRunComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnStageStart(context.Context, string, int)                   {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, int, time.Duration) {}
func (NoopPipelineHooks) OnItemFailure(context.Context, string, string, string)       {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any scouting run.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
