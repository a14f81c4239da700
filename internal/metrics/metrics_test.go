package metrics

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	t.Parallel()
	m := New()
	if m.Registry() == nil || m.handler == nil {
		t.Fatal("New should initialize the registry and handler")
	}
}

func TestObserve(t *testing.T) {
	t.Parallel()
	m := New()

	m.ObserveValuation("gordon", OutcomeOK)
	m.ObserveValuation("gordon", OutcomeOK)
	m.ObserveValuation("gordon", OutcomePrecondition)
	m.ObserveFetch(OutcomeOK, 120*time.Millisecond)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"gordon ok", testutil.ToFloat64(m.valuations.WithLabelValues("gordon", OutcomeOK)), 2},
		{"gordon precondition", testutil.ToFloat64(m.valuations.WithLabelValues("gordon", OutcomePrecondition)), 1},
		{"fetch ok", testutil.ToFloat64(m.fetches.WithLabelValues(OutcomeOK)), 1},
		{"cache hit", testutil.ToFloat64(m.cache.WithLabelValues(CacheHit)), 1},
		{"cache miss", testutil.ToFloat64(m.cache.WithLabelValues(CacheMiss)), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestObserve_NilReceiver(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("nil Metrics panicked: %v", r)
		}
	}()
	var m *Metrics
	m.ObserveValuation("zero", OutcomeOK)
	m.ObserveFetch(OutcomeError, time.Second)
	m.ObserveCache(true)
}

func TestMetrics_WritePrometheus(t *testing.T) {
	t.Parallel()
	m := New()
	m.ObserveValuation("multistage", OutcomeUndefined)
	m.ObserveFetch(OutcomeEmpty, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, req)
	body := rec.Body.String()

	for _, want := range []string{
		`ddmcalc_valuations_total{model="multistage",outcome="undefined"} 1`,
		`ddmcalc_marketdata_requests_total{outcome="empty"} 1`,
		"ddmcalc_marketdata_fetch_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestHandler_Methods(t *testing.T) {
	t.Parallel()
	h := New().Handler()
	tests := []struct {
		method string
		want   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodHead, http.StatusOK},
		{http.MethodPost, http.StatusMethodNotAllowed},
		{http.MethodDelete, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/metrics", http.NoBody))
		if rec.Code != tt.want {
			t.Errorf("%s /metrics = %d, want %d", tt.method, rec.Code, tt.want)
		}
	}
}

func TestServe(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- New().Serve(ctx, addr) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/metrics")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("GET /metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
