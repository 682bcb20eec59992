package main

import (
	"context"
	"fmt"
	"sync"

	cache "github.com/krisalay/s3fifo-cache"
	"github.com/krisalay/s3fifo-cache/writepolicy"
)

// ================= BACKING STORE =================

type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string]any
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string]any)}
}

func (s *InMemoryStore) Load(ctx context.Context, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fmt.Println("STORE  → load:", key)
	return s.data[key], nil
}

func (s *InMemoryStore) Put(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// ================= METRICS =================

type Metrics struct {
	mu            sync.Mutex
	hits          int
	misses        int
	evictions     int
	promotions    int
	ghostHits     int
	ghostEvicts   int
	invalidations int
}

func (m *Metrics) Hit()          { m.mu.Lock(); m.hits++; m.mu.Unlock() }
func (m *Metrics) Miss()         { m.mu.Lock(); m.misses++; m.mu.Unlock() }
func (m *Metrics) Eviction()     { m.mu.Lock(); m.evictions++; m.mu.Unlock() }
func (m *Metrics) Promotion()    { m.mu.Lock(); m.promotions++; m.mu.Unlock() }
func (m *Metrics) GhostHit()     { m.mu.Lock(); m.ghostHits++; m.mu.Unlock() }
func (m *Metrics) GhostEvict()   { m.mu.Lock(); m.ghostEvicts++; m.mu.Unlock() }
func (m *Metrics) Invalidation() { m.mu.Lock(); m.invalidations++; m.mu.Unlock() }

func (m *Metrics) Print() {
	fmt.Println("\n==================== METRICS ====================")
	fmt.Printf("HITS          : %d\n", m.hits)
	fmt.Printf("MISSES        : %d\n", m.misses)
	fmt.Printf("EVICTIONS     : %d\n", m.evictions)
	fmt.Printf("PROMOTIONS    : %d\n", m.promotions)
	fmt.Printf("GHOST HITS    : %d\n", m.ghostHits)
	fmt.Printf("GHOST EVICTS  : %d\n", m.ghostEvicts)
	fmt.Printf("INVALIDATIONS : %d\n", m.invalidations)
}

// ================= MAIN =================

func main() {
	ctx := context.Background()

	fmt.Println("\n==================== SYSTEM BOOT ====================")

	// ---------------- System Config ----------------
	fmt.Println("CACHE MODE      : WRITE-BACK")
	fmt.Println("EVICTION POLICY : S3-FIFO")
	fmt.Println("CAPACITY        : 10 keys (small=1, main=9, ghost=10)")

	// ---------------- Backing Store ----------------
	store := NewInMemoryStore()
	store.Put(ctx, "a", "alpha")
	store.Put(ctx, "b", "beta")

	// ---------------- Metrics ----------------
	metrics := &Metrics{}

	// ---------------- Cache ----------------
	c, err := cache.New(10,
		cache.WithMetrics(metrics),
		cache.WithLoader(store),
		cache.WithWritePolicy(writepolicy.NewWriteBackPolicy(store, 1024, nil)),
	)
	if err != nil {
		panic(err)
	}

	// ====================================================
	fmt.Println("\n==================== 1) CACHE MISS ====================")
	_, err = c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a =", err)

	// ====================================================
	fmt.Println("\n==================== 2) READ-THROUGH LOAD ====================")
	v, _ := c.Load(ctx, "a")
	fmt.Println("CACHE  → LOAD a =", v)
	v, _ = c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a =", v, "(resident now)")

	// ====================================================
	fmt.Println("\n==================== 3) EVICTION TO GHOST ====================")

	// a sits in the small queue with weight 1. Filling the cache with
	// fresh keys pushes it out: weight ≤ 1 lands in the ghost registry.
	for i := 0; i < 10; i++ {
		c.Put(ctx, fmt.Sprintf("k%d", i), i)
	}
	fmt.Println("CACHE  → resident keys  =", len(c.Keys()))
	fmt.Println("CACHE  → ghost keys     =", c.GhostKeys())
	_, err = c.Get(ctx, "a")
	fmt.Println("CACHE  → GET a after eviction =", err)

	// ====================================================
	fmt.Println("\n==================== 4) GHOST FAST PATH ====================")

	// Re-putting a ghosted key skips the small queue and enters main.
	c.Put(ctx, "a", "alpha-again")
	snapshot := c.AsMap()
	fmt.Printf("CACHE  → PUT a, weight=%d, ghosted=%v\n",
		snapshot["a"].Weight, len(c.GhostKeys()) > 0 && c.GhostKeys()[0] == "a")

	// ====================================================
	fmt.Println("\n==================== 5) PROMOTION ====================")

	c.Put(ctx, "hot", "stuff")
	c.Get(ctx, "hot")
	c.Get(ctx, "hot") // weight 2: clears the promotion bar
	for i := 10; i < 20; i++ {
		c.Put(ctx, fmt.Sprintf("k%d", i), i)
	}
	_, err = c.Get(ctx, "hot")
	fmt.Println("CACHE  → GET hot survived churn =", err == nil)

	// ====================================================
	fmt.Println("\n==================== 6) SINGLEFLIGHT ====================")

	c.Invalidate("b")
	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			val, _ := c.Load(ctx, "b")
			fmt.Printf("GOROUTINE-%d → LOAD b = %v\n", id, val)
		}(i)
	}
	wg.Wait()

	// ====================================================
	fmt.Println("\n==================== 7) INVALIDATION ====================")

	c.Invalidate("hot")
	_, err = c.Get(ctx, "hot")
	fmt.Println("CACHE  → GET hot after invalidate =", err)

	c.InvalidateAll()
	fmt.Println("CACHE  → occupancy after invalidateAll =", c.Occupancy())

	// ====================================================
	metrics.Print()

	// ====================================================
	fmt.Println("\n==================== SHUTDOWN ====================")
	c.Close()
	fmt.Println("SYSTEM → cache closed cleanly")
}
