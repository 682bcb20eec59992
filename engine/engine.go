package engine

import (
	"context"

	"github.com/krisalay/s3fifo-cache/types"
	"github.com/krisalay/s3fifo-cache/writepolicy"
)

/*
CacheEngine is the behavior layer of the cache system. It is responsible
for how the cache talks to the outside world, NOT for storage or the
queue discipline.

It decides:
- How data is loaded on cache miss (read-through)
- How writes are propagated to the backing store
- How metrics are recorded

It does NOT:
- Store data
- Handle locking
- Decide eviction order (the S3-FIFO queues own that)
*/
type CacheEngine struct {

	// Loader is how the cache talks to the outside world when it does NOT
	// have the data: a database call, an API call, another cache tier.
	// If nil, Load degrades to a plain Get.
	Loader types.Loader

	// WritePolicy decides what happens when data is written to the cache.
	// - Write-through: write to the backing store immediately
	// - Write-back: write asynchronously later
	// If nil, cache writes stay only in memory.
	WritePolicy writepolicy.WritePolicy

	// Metrics is how we keep track of what the cache is doing.
	// Hits, misses, evictions, promotions, ghost traffic.
	Metrics types.Metrics
}

/*
NewCacheEngine creates a CacheEngine.
*/
func NewCacheEngine(
	loader types.Loader,
	writePolicy writepolicy.WritePolicy,
	metrics types.Metrics,
) *CacheEngine {

	// Ensure metrics is always non-nil.
	// This avoids defensive nil checks throughout the codebase.
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &CacheEngine{
		Loader:      loader,
		WritePolicy: writePolicy,
		Metrics:     metrics,
	}
}

/*
OnWrite is called whenever something is written to the cache. Write
propagation depends entirely on the configured WritePolicy; with none,
the write stays in memory.
*/
func (e *CacheEngine) OnWrite(ctx context.Context, key string, value any) {
	if e.WritePolicy != nil {
		e.WritePolicy.OnWrite(ctx, key, value)
	}
}

// CanLoad reports whether a Loader is configured.
func (e *CacheEngine) CanLoad() bool {
	return e.Loader != nil
}

/*
Load is used when the cache does NOT have the data. This usually means a
database call or a network request.
*/
func (e *CacheEngine) Load(ctx context.Context, key string) (any, error) {
	return e.Loader.Load(ctx, key)
}

/*
Close shuts down the engine's background machinery. Only the write policy
holds any; closing with no policy configured is a no-op.
*/
func (e *CacheEngine) Close() {
	if e.WritePolicy != nil {
		e.WritePolicy.Close()
	}
}
