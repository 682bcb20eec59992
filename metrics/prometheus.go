// Package metrics provides a Prometheus implementation of the cache's
// Metrics contract, plus a small HTTP server exposing /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics counts every cache event as a Prometheus counter.
// It satisfies types.Metrics; plug it in with cache.WithMetrics.
type PrometheusMetrics struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	evictions     prometheus.Counter
	promotions    prometheus.Counter
	ghostHits     prometheus.Counter
	ghostEvicts   prometheus.Counter
	invalidations prometheus.Counter
}

// NewPrometheusMetrics creates a metrics set registered on the default
// registry under the given namespace.
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	return &PrometheusMetrics{
		hits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Total number of reads that found the key resident",
		}),
		misses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Total number of reads that found nothing resident",
		}),
		evictions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Total number of resident entries evicted (value dropped)",
		}),
		promotions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotions_total",
			Help:      "Total number of entries promoted from the small to the main queue",
		}),
		ghostHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ghost_hits_total",
			Help:      "Total number of writes re-admitted straight into the main queue",
		}),
		ghostEvicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ghost_evictions_total",
			Help:      "Total number of ghost keys dropped to stay within the ghost bound",
		}),
		invalidations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalidations_total",
			Help:      "Total number of keys explicitly removed by callers",
		}),
	}
}

func (m *PrometheusMetrics) Hit()          { m.hits.Inc() }
func (m *PrometheusMetrics) Miss()         { m.misses.Inc() }
func (m *PrometheusMetrics) Eviction()     { m.evictions.Inc() }
func (m *PrometheusMetrics) Promotion()    { m.promotions.Inc() }
func (m *PrometheusMetrics) GhostHit()     { m.ghostHits.Inc() }
func (m *PrometheusMetrics) GhostEvict()   { m.ghostEvicts.Inc() }
func (m *PrometheusMetrics) Invalidation() { m.invalidations.Inc() }

// Server runs an HTTP server exposing the /metrics endpoint.
type Server struct {
	server *http.Server
}

// NewServer creates a new metrics server on the given address.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start starts the metrics server (blocking).
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// StartAsync starts the metrics server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		_ = s.server.ListenAndServe()
	}()
}

// Stop stops the metrics server.
func (s *Server) Stop() error {
	return s.server.Close()
}
