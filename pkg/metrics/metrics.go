// Package metrics provides Prometheus metrics for the price checker.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchAttemptsTotal is a counter of fetch attempts per source.
	FetchAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_attempts_total",
			Help: "Total number of fetch attempts per price source",
		},
		[]string{"source"},
	)

	// FetchFailuresTotal is a counter of failed fetch attempts per source.
	FetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_failures_total",
			Help: "Total number of failed fetch attempts per price source",
		},
		[]string{"source"},
	)

	// FetchRecordsTotal is a counter of price records produced per source.
	FetchRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_records_total",
			Help: "Total number of price records produced per source",
		},
		[]string{"source"},
	)

	// AggregationDuration is a histogram of price aggregation duration.
	AggregationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "price_aggregation_duration_seconds",
			Help:    "Duration of price aggregation fan-out",
			Buckets: prometheus.DefBuckets,
		},
	)

	// MockFallbacksTotal is a counter of aggregations that fell back to mock data.
	MockFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mock_fallbacks_total",
			Help: "Total number of aggregations resolved with mock fallback data",
		},
	)

	// CacheHitsTotal is a counter of comparison cache hits.
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of comparison cache hits",
		},
	)

	// CacheMissesTotal is a counter of comparison cache misses.
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of comparison cache misses",
		},
	)

	// CacheEntries is a gauge of live comparison cache entries.
	CacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of live entries in the comparison cache",
		},
	)

	// HTTPRequestsTotal is a counter of total HTTP requests.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "status"},
	)

	// HTTPRequestDuration is a histogram of HTTP request latencies.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
)

// Init initializes Prometheus metrics registry.
func Init() {
	// Register all metrics
	prometheus.MustRegister(
		FetchAttemptsTotal,
		FetchFailuresTotal,
		FetchRecordsTotal,
		AggregationDuration,
		MockFallbacksTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		CacheEntries,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// ServeHTTP serves Prometheus metrics on the specified address.
func ServeHTTP(addr string) error {
	http.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:         addr,
		Handler:      http.DefaultServeMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// RecordFetch records a fetch attempt and its outcome.
func RecordFetch(source string, records int, failed bool) {
	FetchAttemptsTotal.WithLabelValues(source).Inc()
	if failed {
		FetchFailuresTotal.WithLabelValues(source).Inc()
		return
	}
	FetchRecordsTotal.WithLabelValues(source).Add(float64(records))
}

// RecordAggregation records a price aggregation fan-out.
func RecordAggregation(duration time.Duration) {
	AggregationDuration.Observe(duration.Seconds())
}

// RecordMockFallback records an aggregation resolved with mock data.
func RecordMockFallback() {
	MockFallbacksTotal.Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHitsTotal.Inc()
	} else {
		CacheMissesTotal.Inc()
	}
}

// SetCacheEntries records the current number of live cache entries.
func SetCacheEntries(n int) {
	CacheEntries.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
