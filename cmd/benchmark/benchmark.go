package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"sync"
	"time"

	arc "github.com/hashicorp/golang-lru/arc/v2"
	"github.com/scalalang2/golang-fifo/s3fifo"

	cache "github.com/krisalay/s3fifo-cache"
	"github.com/krisalay/s3fifo-cache/metrics"
)

// ================= BENCHMARK =================

func main() {
	var (
		metricsAddr = flag.String("metrics", "", "expose Prometheus metrics on this address while running (e.g. :9090)")
		capacity    = flag.Int("capacity", 200000, "combined resident capacity")
		preload     = flag.Int("preload", 100000, "keys preloaded before the run")
		goroutines  = flag.Int("goroutines", 200, "concurrent readers")
		opsPerG     = flag.Int("ops", 5000, "operations per goroutine")
	)
	flag.Parse()

	ctx := context.Background()

	fmt.Println("\n================ CACHE LOAD BENCHMARK =================")

	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Capacity     :", *capacity)
	fmt.Println("Preload Keys :", *preload)
	fmt.Println("Goroutines   :", *goroutines)
	fmt.Println("Ops/Goroutine:", *opsPerG)
	fmt.Println("---------------------------------")

	// ---------------- Cache ----------------
	opts := []cache.Option{}
	var server *metrics.Server
	if *metricsAddr != "" {
		opts = append(opts, cache.WithMetrics(metrics.NewPrometheusMetrics("s3fifo")))
		server = metrics.NewServer(*metricsAddr)
		server.StartAsync()
		fmt.Println("Prometheus metrics on", *metricsAddr)
	}

	c, err := cache.New(*capacity, opts...)
	if err != nil {
		panic(err)
	}

	// ---------------- Preload Cache ----------------
	fmt.Println("Preloading cache...")
	for i := 0; i < *preload; i++ {
		key := fmt.Sprintf("key-%d", i)
		c.Put(ctx, key, i)
	}
	fmt.Println("Preload complete.")

	// ---------------- Warmup ----------------
	fmt.Println("Warming up cache...")
	for i := 0; i < 10000; i++ {
		c.Get(ctx, fmt.Sprintf("key-%d", i%*preload))
	}
	fmt.Println("Warmup complete.")

	// ---------------- Load Test ----------------
	fmt.Println("Running concurrency benchmark...")

	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(*goroutines)

	for i := 0; i < *goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < *opsPerG; j++ {
				key := fmt.Sprintf("key-%d", j%*preload)
				c.Get(ctx, key)
			}
		}(i)
	}

	wg.Wait()

	duration := time.Since(start)
	totalOps := *goroutines * *opsPerG

	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Total Operations : %d\n", totalOps)
	fmt.Printf("Total Time       : %v\n", duration)
	fmt.Printf("Throughput       : %.2f ops/sec\n", float64(totalOps)/duration.Seconds())
	fmt.Println("=========================================")

	// ---------------- Hit-Ratio Comparison ----------------
	runHitRatioComparison()

	c.Close()
	if server != nil {
		server.Stop()
	}
}

// ================= HIT-RATIO COMPARISON =================
//
// Drives this implementation, the reference S3-FIFO, and ARC with the
// same Zipf-distributed access trace and reports the hit ratio of each.

type comparisonCache interface {
	Set(key string, value int)
	Get(key string) bool
}

type ourCache struct {
	c   *cache.S3FIFOCache
	ctx context.Context
}

func (w ourCache) Set(key string, value int) { w.c.Put(w.ctx, key, value) }
func (w ourCache) Get(key string) bool {
	_, err := w.c.Get(w.ctx, key)
	return err == nil
}

type refCache struct {
	c *s3fifo.S3FIFO[string, int]
}

func (w refCache) Set(key string, value int) { w.c.Set(key, value) }
func (w refCache) Get(key string) bool {
	_, ok := w.c.Get(key)
	return ok
}

type arcCache struct {
	c *arc.ARCCache[string, int]
}

func (w arcCache) Set(key string, value int) { w.c.Add(key, value) }
func (w arcCache) Get(key string) bool {
	_, ok := w.c.Get(key)
	return ok
}

func runHitRatioComparison() {
	const (
		capacity = 2048
		universe = 65536
		accesses = 500000
		skew     = 1.2
	)

	fmt.Println("\n================ HIT-RATIO COMPARISON =================")
	fmt.Printf("Capacity=%d Universe=%d Accesses=%d Zipf(s=%.1f)\n",
		capacity, universe, accesses, skew)

	rng := rand.New(rand.NewSource(1))
	zipf := rand.NewZipf(rng, skew, 1.0, universe-1)
	trace := make([]string, accesses)
	for i := range trace {
		trace[i] = fmt.Sprintf("key-%d", zipf.Uint64())
	}

	competitors := []struct {
		name string
		c    comparisonCache
	}{
		{"S3FIFO (this)", newOurCache(capacity)},
		{"S3FIFO (reference)", refCache{c: s3fifo.New[string, int](capacity, 0)}},
		{"ARC", newARCCache(capacity)},
	}

	for _, comp := range competitors {
		var hits int
		for i, key := range trace {
			if comp.c.Get(key) {
				hits++
			} else {
				comp.c.Set(key, i)
			}
		}
		fmt.Printf("%-20s : %.2f%% hits\n", comp.name,
			100*float64(hits)/float64(accesses))
	}
	fmt.Println("=======================================================")
}

func newOurCache(capacity int) comparisonCache {
	c, err := cache.New(capacity)
	if err != nil {
		panic(err)
	}
	return ourCache{c: c, ctx: context.Background()}
}

func newARCCache(capacity int) comparisonCache {
	c, err := arc.NewARC[string, int](capacity)
	if err != nil {
		panic(err)
	}
	return arcCache{c: c}
}
