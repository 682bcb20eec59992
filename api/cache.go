package cache

import (
	"context"

	"github.com/krisalay/s3fifo-cache/types"
)

/*
Cache defines the PUBLIC API of the S3-FIFO cache.
This is a contract that guarantees certain behaviors, without exposing internals.
All of the details (queue mechanics, ghost bookkeeping, concurrency, data loading,
and data writing) are hidden behind this interface.
*/
type Cache interface {

	/*
		Get retrieves the value associated with the given key.

		BEHAVIOR:
		---------
		1. If the key is resident (small or main queue):
		   - Bump its access weight (saturating at MaxWeight)
		   - Return the value (cache hit)

		2. If the key is NOT resident:
		   - Return ErrNotFound (cache miss)
		   - A key remembered by the ghost registry is still a miss;
		     reads never mutate ghost state.

		An empty key returns ErrEmptyKey.
	*/
	Get(ctx context.Context, key string) (any, error)

	/*
		Put stores a key-value pair in the cache.

		BEHAVIOR:
		---------
		- Existing key: the value is overwritten in place and the access
		  weight bumped. No eviction runs.
		- New key seen by the ghost registry: admitted straight into the
		  main queue with weight 0 (the "second chance" fast path).
		- New key never seen before: admitted at the small queue's tail
		  with weight 0.
		- Admitting a new key when the resident queues are full first
		  evicts exactly one resident entry.
		- The configured write policy (if any) propagates the write to the
		  backing store.

		An empty key returns ErrEmptyKey; a nil value returns ErrNilValue.
	*/
	Put(ctx context.Context, key string, value any) error

	/*
		PutAll applies Put for each pair in the given map.

		There is NO transactional guarantee: a failure partway through
		leaves earlier pairs already cached. Iteration order is Go map
		order, i.e. unspecified.
	*/
	PutAll(ctx context.Context, pairs map[string]any) error

	/*
		Load is the read-through path.

		1. Resident hit → return the value, same as Get.
		2. Miss with a Loader configured → fetch from the backing store
		   (deduplicated across concurrent callers), Put the result, and
		   return it.
		3. Miss without a Loader, or the Loader has nothing → ErrNotFound.
	*/
	Load(ctx context.Context, key string) (any, error)

	/*
		Invalidate removes a key from the cache immediately: from the
		entry store, from whichever resident queue holds it, and from the
		ghost registry.

		This operation is idempotent: invalidating a missing key is safe.
		It does NOT affect the backing store.
	*/
	Invalidate(key string)

	/*
		InvalidateAll clears the whole cache: both resident queues, the
		entry store, and the ghost registry.
	*/
	InvalidateAll()

	/*
		InvalidateKeys invalidates each key in the given sequence.
		Per-key behavior matches Invalidate; there is no atomicity
		guarantee across the sequence.
	*/
	InvalidateKeys(keys []string)

	/*
		Evict runs the eviction algorithm once, removing exactly one
		resident entry (promotions from small to main along the way do
		not count). Returns ErrNothingToEvict if nothing is resident.
	*/
	Evict() error

	// Len returns the number of resident entries (small + main).
	Len() int

	// Occupancy returns resident entries plus ghost keys.
	Occupancy() int

	// Keys returns the resident key set. Ghost keys are excluded.
	Keys() []string

	// GhostKeys returns the keys currently remembered by the ghost
	// registry, oldest first.
	GhostKeys() []string

	/*
		AsMap returns a point-in-time snapshot of every resident entry,
		weights included. The snapshot is a copy: mutating it does not
		touch the cache.
	*/
	AsMap() map[string]types.CacheEntry

	// MaxWeight returns the current weight cap.
	MaxWeight() int

	/*
		SetMaxWeight replaces the weight cap and returns the previous
		value. Negative caps are clamped to 0. Applied prospectively:
		existing weights are clamped lazily, on their next bump.
	*/
	SetMaxWeight(maxWeight int) int

	// Capacities returns the configured small, main, and ghost bounds.
	Capacities() (small, main, ghost int)

	/*
		SetCapacities replaces all three bounds at once. Like the
		individual setters, the new bounds apply prospectively only:
		shrinking does not evict existing contents, it just tightens
		future admission and eviction thresholds.
	*/
	SetCapacities(small, main, ghost int)

	SetSmallCapacity(n int)
	SetMainCapacity(n int)
	SetGhostCapacity(n int)

	/*
		Close gracefully shuts down the cache: flushes any pending
		write-back operations and stops background goroutines. Call on
		application shutdown and in test cleanup.
	*/
	Close()
}
