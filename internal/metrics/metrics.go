// Package metrics exposes the application's Prometheus instrumentation:
// valuation outcomes, market-data fetches and cache efficiency.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeUndefined    = "undefined"
	OutcomePrecondition = "precondition"
	OutcomeError        = "error"
	OutcomeEmpty        = "empty"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Metrics holds the application collectors on a private registry. Methods
// are safe on a nil receiver, which records nothing.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	valuations    *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	cache         *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

// New builds a Metrics with Go runtime and process collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		valuations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ddmcalc_valuations_total",
			Help: "Valuations computed, by model and outcome.",
		}, []string{"model", "outcome"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ddmcalc_marketdata_requests_total",
			Help: "Dividend history requests sent upstream, by outcome.",
		}, []string{"outcome"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ddmcalc_marketdata_cache_total",
			Help: "Dividend history cache lookups, by result.",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ddmcalc_marketdata_fetch_seconds",
			Help:    "Upstream dividend history fetch latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.valuations, m.fetches, m.cache, m.fetchDuration,
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveValuation counts one valuation.
func (m *Metrics) ObserveValuation(model, outcome string) {
	if m == nil {
		return
	}
	m.valuations.WithLabelValues(model, outcome).Inc()
}

// ObserveFetch counts one upstream fetch and records its latency.
func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(d.Seconds())
}

// ObserveCache counts one cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cache.WithLabelValues(CacheHit).Inc()
		return
	}
	m.cache.WithLabelValues(CacheMiss).Inc()
}

// WritePrometheus writes the metrics in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Handler serves GET /metrics and rejects other methods.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		m.WritePrometheus(w, r)
	})
}

// Serve exposes /metrics on addr until ctx is canceled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
