package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters implements every hook interface by counting events.
// It is safe for concurrent use.
type Counters struct {
	Requests     atomic.Int64
	Failures     atomic.Int64
	CacheHits    atomic.Int64
	CacheMisses  atomic.Int64
	Repositories atomic.Int64
	Candidates   atomic.Int64
	Accepted     atomic.Int64
	Rejected     atomic.Int64
}

func (c *Counters) OnRequest(context.Context, string, string, string) { c.Requests.Add(1) }

func (c *Counters) OnResponse(context.Context, string, string, string, int, time.Duration) {}

func (c *Counters) OnError(context.Context, string, string, string, error) { c.Failures.Add(1) }

func (c *Counters) OnCacheHit(context.Context, string) { c.CacheHits.Add(1) }

func (c *Counters) OnCacheMiss(context.Context, string) { c.CacheMisses.Add(1) }

func (c *Counters) OnCacheSet(context.Context, string, int) {}

func (c *Counters) OnRepositoriesResolved(_ context.Context, _ string, n int) {
	c.Repositories.Add(int64(n))
}

func (c *Counters) OnLicenseCandidates(_ context.Context, n int) { c.Candidates.Add(int64(n)) }

func (c *Counters) OnLicenseAccepted(context.Context, string, int) { c.Accepted.Add(1) }

func (c *Counters) OnLicenseRejected(context.Context, string, string) { c.Rejected.Add(1) }

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
