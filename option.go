package cache

import (
	"github.com/sirupsen/logrus"

	"github.com/krisalay/s3fifo-cache/types"
	"github.com/krisalay/s3fifo-cache/writepolicy"
)

// An Option allows callers to configure a cache at construction time.
// Everything an Option sets can also be changed later through the runtime
// setters, except the loader, write policy, metrics, and logger.
type Option func(c *S3FIFOCache)

// WithMaxWeight replaces the default weight cap of 3. Negative caps are
// clamped to 0, which pins every weight at 0 and disables promotion.
func WithMaxWeight(maxWeight int) Option {
	return func(c *S3FIFOCache) {
		if maxWeight < 0 {
			maxWeight = 0
		}
		c.maxWeight = maxWeight
	}
}

// WithSmallCapacity overrides the derived small-queue bound
// (by default 10% of the combined capacity, at least 1).
func WithSmallCapacity(n int) Option {
	return func(c *S3FIFOCache) {
		c.smallCap = n
	}
}

// WithMainCapacity overrides the derived main-queue bound
// (by default the combined capacity minus the small share).
func WithMainCapacity(n int) Option {
	return func(c *S3FIFOCache) {
		c.mainCap = n
	}
}

// WithGhostCapacity overrides the ghost registry bound
// (by default the full combined capacity).
func WithGhostCapacity(n int) Option {
	return func(c *S3FIFOCache) {
		c.ghost.SetCapacity(n)
	}
}

// WithMetrics configures the cache to report events to the given recorder.
// A nil recorder is ignored; the cache then keeps its no-op metrics.
func WithMetrics(m types.Metrics) Option {
	return func(c *S3FIFOCache) {
		if m != nil {
			c.engine.Metrics = m
		}
	}
}

// WithLoader configures a backing store for the read-through Load path.
func WithLoader(l types.Loader) Option {
	return func(c *S3FIFOCache) {
		c.engine.Loader = l
	}
}

// WithWritePolicy configures how writes propagate to the backing store
// (write-through or write-back). Without one, writes stay in memory.
func WithWritePolicy(p writepolicy.WritePolicy) Option {
	return func(c *S3FIFOCache) {
		c.engine.WritePolicy = p
	}
}

// WithLogger replaces the cache's logger. Queue transitions log at Trace
// level, so the default Info level keeps the hot path silent.
func WithLogger(log *logrus.Logger) Option {
	return func(c *S3FIFOCache) {
		if log != nil {
			c.log = log
		}
	}
}
