// Package observability provides hooks for metrics and tracing.
//
// Libraries call the registered hooks; the application decides what they do.
// Defaults are no-ops, so instrumentation costs nothing unless a consumer
// registers an implementation at startup:
//
//	stats := &observability.Counters{}
//	observability.SetHTTPHooks(stats)
//	observability.SetPipelineHooks(stats)
//
// The licensefetch CLI uses [Counters] to print a one-line summary after a
// run.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from license discovery.
type PipelineHooks interface {
	// OnRepositoriesResolved reports how many repository roots survived
	// filtering for a homepage or direct repository URL.
	OnRepositoriesResolved(ctx context.Context, source string, count int)

	// OnLicenseCandidates reports how many distinct license hrefs were found
	// across all repository pages.
	OnLicenseCandidates(ctx context.Context, count int)

	// OnLicenseAccepted records a license body that passed the raw-content check.
	OnLicenseAccepted(ctx context.Context, rawURL string, size int)

	// OnLicenseRejected records a candidate that was fetched and discarded.
	OnLicenseRejected(ctx context.Context, rawURL, reason string)
}

// CacheHooks receives events from cached fetches.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, namespace string)
	OnCacheMiss(ctx context.Context, namespace string)
	OnCacheSet(ctx context.Context, namespace string, size int)
}

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response of any status.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure (DNS, refused, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRepositoriesResolved(context.Context, string, int) {}
func (NoopPipelineHooks) OnLicenseCandidates(context.Context, int)            {}
func (NoopPipelineHooks) OnLicenseAccepted(context.Context, string, int)      {}
func (NoopPipelineHooks) OnLicenseRejected(context.Context, string, string)   {}

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

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
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
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
