// Package metrics exposes Prometheus instrumentation for the HTTP API, the
// recommendation engine and the museum API client. Metrics are served at
// /metrics by the API router.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artfolio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Recommendation Metrics
	RecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artfolio_recommendation_runs_total",
			Help: "Recommendation runs by outcome",
		},
		[]string{"outcome"}, // "ok", "no_history", "empty", "history_error"
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "artfolio_recommendations_returned",
			Help:    "Number of artworks returned per recommendation run",
			Buckets: []float64{0, 1, 5, 10, 15, 19, 20},
		},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "artfolio_recommendation_duration_seconds",
			Help:    "Duration of recommendation runs in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// Museum API Metrics
	SourcePageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artfolio_source_page_fetches_total",
			Help: "Artwork page fetches issued by the recommendation engine",
		},
		[]string{"pass", "status"}, // pass: "strategy", "fallback"
	)

	BreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artfolio_circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "to"},
	)
)

// RecordHTTPRequest records one finished HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPageFetch records one engine page fetch.
func RecordPageFetch(pass string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SourcePageFetches.WithLabelValues(pass, status).Inc()
}
