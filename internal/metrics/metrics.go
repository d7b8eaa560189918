// Pizzarec - Pizza Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pizzarec

// Package metrics defines the Prometheus collectors exported at /metrics.
//
// Collectors are registered on the default registry at package init via
// promauto. Callers use the Record* helpers rather than touching the vectors
// directly so that label sets stay consistent.
package metrics

import (
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

	// Recommendation Engine Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation queries by operation and outcome",
		},
		[]string{"operation", "outcome"}, // outcome: "ok", "fallback", "not_found", "error"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_index_build_duration_seconds",
			Help:    "Duration of catalog index builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	IndexBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_index_builds_total",
			Help: "Total number of catalog index builds by result",
		},
		[]string{"result"}, // "success", "failure", "in_progress"
	)

	IndexCatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_index_items",
			Help: "Number of menu items in the published catalog index",
		},
	)

	IndexLastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_index_last_build_timestamp",
			Help: "Unix timestamp of the last successful catalog index build",
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
		[]string{"name", "result"}, // result: "success", "failure", "rejected", "canceled"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Order Ingestion Metrics
	OrdersPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_published_total",
			Help: "Total number of order events published",
		},
	)

	OrdersPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_persisted_total",
			Help: "Total number of order events handled by the persister by result",
		},
		[]string{"result"}, // "success", "failure", "invalid"
	)

	OrdersDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_deduplicated_total",
			Help: "Total number of order submissions answered from the idempotency store",
		},
	)

	OrderLineItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_line_items",
			Help:    "Number of line items per accepted order",
			Buckets: []float64{1, 2, 3, 5, 10, 20},
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation query.
func RecordRecommendation(operation, outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(operation, outcome).Inc()
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordIndexBuild records a catalog index build attempt. itemCount is only
// applied on success.
func RecordIndexBuild(result string, itemCount int, duration time.Duration) {
	IndexBuilds.WithLabelValues(result).Inc()
	if result != "success" {
		return
	}
	IndexBuildDuration.Observe(duration.Seconds())
	IndexCatalogSize.Set(float64(itemCount))
	IndexLastBuild.Set(float64(time.Now().Unix()))
}

// RecordOrderPublished records an accepted order.
func RecordOrderPublished(lineItems int) {
	OrdersPublished.Inc()
	OrderLineItems.Observe(float64(lineItems))
}

// RecordOrderPersisted records the persister outcome for one order event.
func RecordOrderPersisted(result string) {
	OrdersPersisted.WithLabelValues(result).Inc()
}

// RecordOrderDeduplicated records a replayed order submission.
func RecordOrderDeduplicated() {
	OrdersDeduplicated.Inc()
}
