package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	api "github.com/krisalay/s3fifo-cache/api"
	"github.com/krisalay/s3fifo-cache/engine"
	"github.com/krisalay/s3fifo-cache/eviction"
	"github.com/krisalay/s3fifo-cache/store"
	"github.com/krisalay/s3fifo-cache/types"
)

const (
	// DefaultCapacity is the combined resident capacity used by NewDefault.
	DefaultCapacity = 10

	// DefaultMaxWeight is the saturation point of the per-entry access
	// counter. Three accesses are enough to tell a reused key from a
	// one-hit wonder; counting higher buys nothing.
	DefaultMaxWeight = 3
)

/*
S3FIFOCache is the main cache implementation.
This struct is the orchestrator that connects:
- the entry store
- the small and main FIFO queues
- the ghost registry
- loading
- write policies
- metrics

S3-FIFO ("Simple, Scalable, FIFO-based cache eviction", Yang et al., 2023)
approximates LRU/LFU hit ratios at FIFO cost with three queues:

  - small (~10% of capacity): probationary FIFO. All new keys start here.
  - main (~90% of capacity): protected FIFO for keys that proved useful.
  - ghost: a bounded FIFO of evicted keys, values dropped. A key found
    here on Put skips small and re-enters main directly.

Eviction pops the small head first: weight > 1 promotes it to main's tail
(weight reset), weight ≤ 1 demotes it to ghost. With small empty, the main
head is demoted unconditionally.

Every public operation touches at least two of the four structures, and a
reader must never see a key in the store that no queue owns (or the
reverse). One mutex over the whole cache makes each operation one logical
transaction; independently thread-safe substructures could not.
*/
type S3FIFOCache struct {
	// mu is the single mutual-exclusion domain over all four structures.
	// Get takes the write lock too: the weight bump is a mutation, and
	// losing bumps under concurrent reads would starve promotion.
	mu sync.RWMutex

	// store indexes every resident entry by key. Its key set equals the
	// union of the two queues' keys at all times.
	store store.Store

	small *eviction.Queue
	main  *eviction.Queue
	ghost *eviction.Ghost

	// Resident bounds. small + main occupancy never exceeds their sum;
	// the ghost bound lives in the ghost registry itself.
	smallCap int
	mainCap  int

	maxWeight int

	// engine contains the "rules" of the cache: loader, write policy, metrics.
	engine *engine.CacheEngine

	log *logrus.Logger

	// singleflight prevents multiple goroutines from loading the same key
	// from the backing store simultaneously.
	sf singleflight.Group
}

var _ api.Cache = (*S3FIFOCache)(nil)

/*
New creates a cache with the given combined resident capacity. The three
bounds derive from it (small = 10%, at least 1; main = the remainder;
ghost = the full capacity) and can be overridden by options or adjusted
later at runtime.

Returns ErrInvalidCapacity for capacities below 1.
*/
func New(capacity int, opts ...Option) (*S3FIFOCache, error) {
	if capacity < 1 {
		return nil, minCapacityError(capacity)
	}

	small := capacity / 10
	if small < 1 {
		small = 1
	}

	c := &S3FIFOCache{
		store:     store.New(),
		small:     eviction.NewQueue(),
		main:      eviction.NewQueue(),
		ghost:     eviction.NewGhost(capacity),
		smallCap:  small,
		mainCap:   capacity - small,
		maxWeight: DefaultMaxWeight,
		engine:    engine.NewCacheEngine(nil, nil, nil),
		log:       logrus.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NewDefault creates a cache with the default capacity of 10.
func NewDefault(opts ...Option) *S3FIFOCache {
	c, err := New(DefaultCapacity, opts...)
	if err != nil {
		// DefaultCapacity is a valid constant; New cannot reject it.
		panic(err)
	}
	return c
}

/*
Get retrieves a value from the cache.

A resident hit bumps the entry's weight (saturating at MaxWeight) and
returns the value. Anything else is ErrNotFound, including keys the ghost
registry remembers: ghosts have no value to return, and a pure read never
mutates ghost state.
*/
func (c *S3FIFOCache) Get(ctx context.Context, key string) (any, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	// Write lock, not read lock: the weight bump is a mutation and bumps
	// must not be lost under concurrent readers.
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.store.Get(key); ok {
		ent.Touch(c.maxWeight)
		c.engine.Metrics.Hit()
		c.log.WithFields(logrus.Fields{"key": key, "weight": ent.Weight}).Trace("hit")
		return ent.Value, nil
	}

	c.engine.Metrics.Miss()
	c.log.WithField("key", key).Trace("miss")
	return nil, ErrNotFound
}

/*
Put stores a value in the cache.

An existing key is overwritten in place with a weight bump; its queue
position does not change and no eviction runs. A new key first makes room
(evicting one resident entry if the queues are full), then enters main
directly if the ghost registry remembers it, or small otherwise, in both
cases with weight 0.
*/
func (c *S3FIFOCache) Put(ctx context.Context, key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	if value == nil {
		return ErrNilValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Overwrite in place; queue position unchanged.
	if ent, ok := c.store.Get(key); ok {
		ent.Value = value
		ent.Touch(c.maxWeight)
		c.engine.Metrics.Hit()
		c.engine.OnWrite(ctx, key, value)
		return nil
	}

	// Make room before admitting. The loop matters: capacities may have
	// been shrunk at runtime, so one admission can owe several evictions.
	for c.small.Len()+c.main.Len() >= c.smallCap+c.mainCap {
		if err := c.evictLocked(); err != nil {
			return err
		}
	}

	ent := types.NewCacheEntry(key, value)
	if c.ghost.Remove(key) {
		// Second chance: the ghost registry remembers this key, so it
		// skips the probationary queue entirely.
		c.main.Push(ent)
		c.engine.Metrics.GhostHit()
		c.log.WithField("key", key).Trace("ghost hit, admitted to main")
	} else {
		c.small.Push(ent)
		c.log.WithField("key", key).Trace("admitted to small")
	}
	c.store.Put(key, ent)

	c.engine.OnWrite(ctx, key, value)
	return nil
}

/*
PutAll applies Put for each pair in the map. Best-effort: pairs that fail
are reported in the joined error, pairs that succeeded stay cached.
*/
func (c *S3FIFOCache) PutAll(ctx context.Context, pairs map[string]any) error {
	var errs error
	for k, v := range pairs {
		if err := c.Put(ctx, k, v); err != nil {
			errs = errors.Join(errs, fmt.Errorf("put %q: %w", k, err))
		}
	}
	return errs
}

/*
Load retrieves a value, consulting the backing store on a miss.

singleflight ensures that if 100 goroutines request the same missing key,
only ONE of them loads it from the backing store; the others wait for the
result. A loaded value is inserted through the normal Put path, so it gets
the same admission treatment as any other write.

Without a configured Loader, Load degrades to Get.
*/
func (c *S3FIFOCache) Load(ctx context.Context, key string) (any, error) {
	v, err := c.Get(ctx, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) || !c.engine.CanLoad() {
		return nil, err
	}

	v, err, _ = c.sf.Do(key, func() (any, error) {
		return c.engine.Load(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}

	if err := c.Put(ctx, key, v); err != nil {
		return nil, err
	}
	return v, nil
}

/*
Evict runs the eviction algorithm once, removing exactly one resident
entry. Promotions along the way (small entries with weight > 1 moving to
main) free nothing and do not count. Returns ErrNothingToEvict when both
queues are empty.
*/
func (c *S3FIFOCache) Evict() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictLocked()
}

// evictLocked removes one resident entry, following the S3-FIFO policy.
// Must be called with c.mu held.
//
// The loop terminates: every iteration either removes a resident entry
// (return) or shrinks small by one, and small cannot refill under the lock.
func (c *S3FIFOCache) evictLocked() error {
	for {
		if ent, ok := c.small.Pop(); ok {
			if ent.Weight > 1 {
				// Accessed enough to earn a second chance. Promotion is
				// not an eviction: the entry stays resident, so keep going.
				ent.ResetWeight()
				c.main.Push(ent)
				c.engine.Metrics.Promotion()
				c.log.WithField("key", ent.Key).Trace("promoted to main")
				continue
			}
			c.demoteLocked(ent)
			return nil
		}

		// Small exhausted: main's head goes unconditionally, weight not
		// consulted.
		ent, ok := c.main.Pop()
		if !ok {
			// Capacity pressure with nothing resident means the occupancy
			// accounting upstream is broken.
			return ErrNothingToEvict
		}
		c.demoteLocked(ent)
		return nil
	}
}

// demoteLocked drops the entry's value and moves its key into the ghost
// registry, trimming the registry back under its bound.
// Must be called with c.mu held.
func (c *S3FIFOCache) demoteLocked(ent *types.CacheEntry) {
	c.store.Delete(ent.Key)
	trimmed := c.ghost.Add(ent.Key)
	c.engine.Metrics.Eviction()
	for i := 0; i < trimmed; i++ {
		c.engine.Metrics.GhostEvict()
	}
	c.log.WithField("key", ent.Key).Trace("demoted to ghost")
}

/*
Invalidate removes a key immediately: from the entry store, from whichever
queue holds it, and from the ghost registry. Idempotent on missing keys.
Does NOT affect the backing store.
*/
func (c *S3FIFOCache) Invalidate(key string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked(key)
}

// invalidateLocked must be called with c.mu held.
func (c *S3FIFOCache) invalidateLocked(key string) {
	removed := false

	if _, ok := c.store.Get(key); ok {
		c.store.Delete(key)
		if !c.small.Remove(key) {
			c.main.Remove(key)
		}
		removed = true
	}
	if c.ghost.Remove(key) {
		removed = true
	}

	if removed {
		c.engine.Metrics.Invalidation()
		c.log.WithField("key", key).Trace("invalidated")
	}
}

// InvalidateAll clears the whole cache: store, both queues, ghost registry.
func (c *S3FIFOCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Clear()
	c.small.Clear()
	c.main.Clear()
	c.ghost.Clear()
	c.log.Trace("invalidated all")
}

/*
InvalidateKeys invalidates each key in the sequence. Each key is its own
transaction; there is no atomicity across the sequence, and concurrent
writers may interleave between keys.
*/
func (c *S3FIFOCache) InvalidateKeys(keys []string) {
	for _, key := range keys {
		c.Invalidate(key)
	}
}

// Len returns the number of resident entries (small + main).
func (c *S3FIFOCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Len()
}

// Occupancy returns resident entries plus ghost keys.
func (c *S3FIFOCache) Occupancy() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Len() + c.ghost.Len()
}

// Keys returns the resident key set. Ghost keys are excluded, order is
// unspecified.
func (c *S3FIFOCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Keys()
}

// GhostKeys returns the keys the ghost registry remembers, oldest first.
func (c *S3FIFOCache) GhostKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ghost.Keys()
}

/*
AsMap returns a snapshot of every resident entry, weights included. Go has
no live map views; this is a point-in-time copy, and mutating it does not
touch the cache.
*/
func (c *S3FIFOCache) AsMap() map[string]types.CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make(map[string]types.CacheEntry, c.store.Len())
	for _, k := range c.store.Keys() {
		if ent, ok := c.store.Get(k); ok {
			snapshot[k] = *ent
		}
	}
	return snapshot
}

// MaxWeight returns the current weight cap.
func (c *S3FIFOCache) MaxWeight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxWeight
}

/*
SetMaxWeight replaces the weight cap and returns the previous value.
Negative caps are clamped to 0. Existing weights above the new cap are
clamped lazily, on their next bump.
*/
func (c *S3FIFOCache) SetMaxWeight(maxWeight int) int {
	if maxWeight < 0 {
		maxWeight = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.maxWeight
	c.maxWeight = maxWeight
	return prev
}

// Capacities returns the configured small, main, and ghost bounds.
func (c *S3FIFOCache) Capacities() (small, main, ghost int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.smallCap, c.mainCap, c.ghost.Capacity()
}

/*
SetCapacities replaces all three bounds at once. Prospective only: nothing
resident is evicted and no ghosts are trimmed until the next admission or
ghost insert crosses the new thresholds.
*/
func (c *S3FIFOCache) SetCapacities(small, main, ghost int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smallCap = small
	c.mainCap = main
	c.ghost.SetCapacity(ghost)
}

// SetSmallCapacity replaces the small-queue bound, prospectively.
func (c *S3FIFOCache) SetSmallCapacity(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smallCap = n
}

// SetMainCapacity replaces the main-queue bound, prospectively.
func (c *S3FIFOCache) SetMainCapacity(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mainCap = n
}

// SetGhostCapacity replaces the ghost registry bound, prospectively.
func (c *S3FIFOCache) SetGhostCapacity(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ghost.SetCapacity(n)
}

/*
Close gracefully shuts down the cache. This is important for write-back
policies, so pending writes are flushed.
*/
func (c *S3FIFOCache) Close() {
	c.engine.Close()
}
