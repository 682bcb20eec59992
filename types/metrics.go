package types

// This file defines how the cache reports what it is doing.

/*
Metrics is the set of events the cache emits as entries move through the
three queues. The cache calls exactly one of these per observable event,
always while holding its own lock, so implementations do not need to be
re-entrant with respect to the cache.

The events map onto the queue transitions:

  - Hit        → a read or overwrite found the key resident (small or main)
  - Miss       → a read found nothing resident
  - Eviction   → a resident entry was removed to make room (value dropped)
  - Promotion  → a small-queue entry earned its way into the main queue
  - GhostHit   → a write re-admitted a key straight into the main queue
    because the ghost registry remembered it
  - GhostEvict → the ghost registry dropped its oldest key to stay within
    its bound
  - Invalidation → a caller explicitly removed a key
*/
type Metrics interface {
	Hit()
	Miss()
	Eviction()
	Promotion()
	GhostHit()
	GhostEvict()
	Invalidation()
}

/*
NoopMetrics is the "do nothing" implementation of Metrics.

Callers that do not care about instrumentation should not have to write
seven empty methods, and the cache should not have to nil-check its
metrics on every event. The engine substitutes NoopMetrics whenever no
recorder is configured, so the rest of the codebase can call metrics
unconditionally.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()          {}
func (NoopMetrics) Miss()         {}
func (NoopMetrics) Eviction()     {}
func (NoopMetrics) Promotion()    {}
func (NoopMetrics) GhostHit()     {}
func (NoopMetrics) GhostEvict()   {}
func (NoopMetrics) Invalidation() {}
