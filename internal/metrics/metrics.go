// Pathwise - Pathway-Based Course Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pathwise

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// Collectors are registered on the default registry through promauto at
// package init. Callers use the Record* helpers rather than touching the
// vectors directly so label sets stay consistent.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathwise_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // ok, not_found, error
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathwise_recommendation_duration_seconds",
			Help:    "Time to build a recommendation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendationCredits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathwise_recommendation_credits",
			Help:    "Credit hours selected per recommendation",
			Buckets: []float64{0, 3, 6, 9, 12, 15, 18, 21, 24},
		},
	)

	RecommendationCourses = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathwise_recommendation_courses",
			Help:    "Courses selected per recommendation",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8},
		},
	)

	// Course Cache Metrics
	CourseCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pathwise_course_cache_hits_total",
			Help: "Total number of course lookup cache hits",
		},
	)

	CourseCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pathwise_course_cache_misses_total",
			Help: "Total number of course lookup cache misses",
		},
	)

	CourseCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathwise_course_cache_entries",
			Help: "Current number of cached course lookups",
		},
	)

	// Tag Index Metrics
	TagIndexGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathwise_tag_index_gc_runs_total",
			Help: "Badger value log GC runs by result",
		},
		[]string{"result"}, // rewritten, noop, error
	)

	TagIndexEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pathwise_tag_index_courses",
			Help: "Number of tagged courses in the skill index",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// Recommendation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// RecordRecommendation records one engine call. Credits and course counts
// are only observed for successful calls.
func RecordRecommendation(outcome string, duration time.Duration, credits, courses int) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if outcome == OutcomeOK {
		RecommendationCredits.Observe(float64(credits))
		RecommendationCourses.Observe(float64(courses))
	}
}

// RecordCourseCache records a course cache lookup.
func RecordCourseCache(hit bool) {
	if hit {
		CourseCacheHits.Inc()
	} else {
		CourseCacheMisses.Inc()
	}
}

// RecordTagIndexGC records one value log GC pass.
func RecordTagIndexGC(result string) {
	TagIndexGCRuns.WithLabelValues(result).Inc()
}
