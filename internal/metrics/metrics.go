// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Refresh pipeline runs and per-source fetches
// - Feed cache hits, misses and store operations
// - API endpoint latency and throughput
// - Circuit breakers around upstreams and the event publisher
// - feed.refreshed notifications and WebSocket connections

var (
	// Pipeline Metrics
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pipeline_runs_total",
			Help: "Total number of feed pipeline runs",
		},
		[]string{"result"}, // success, failure
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_pipeline_duration_seconds",
			Help:    "Duration of a full feed pipeline run in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	PipelineEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_pipeline_events",
			Help: "Number of events produced by the last successful pipeline run",
		},
	)

	DedupDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_dedup_dropped_total",
			Help: "Total number of records merged into an existing duplicate group",
		},
	)

	DedupReplaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_dedup_replaced_total",
			Help: "Total number of group survivors replaced by a later-dated duplicate",
		},
	)

	EventsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_rejected_total",
			Help: "Total number of normalized events that failed admission checks",
		},
		[]string{"source"},
	)

	// Source Metrics
	SourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetches_total",
			Help: "Total number of adapter fetches",
		},
		[]string{"source", "result"}, // result: success, failure, disabled
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Duration of one adapter fetch in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"source"},
	)

	SourceEvents = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "source_events",
			Help: "Number of events returned by the last successful fetch",
		},
		[]string{"source"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of HTTP requests to upstream sites",
		},
		[]string{"source", "kind", "status"}, // kind: api, listing, detail
	)

	// Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cache_hits_total",
			Help: "Total number of requests served from the stored feed",
		},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_misses_total",
			Help: "Total number of requests that triggered a refresh",
		},
		[]string{"reason"}, // empty, forced, expired
	)

	CacheSharedRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cache_shared_refreshes_total",
			Help: "Total number of callers that joined an in-flight refresh",
		},
	)

	CacheLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_cache_last_refresh_timestamp_seconds",
			Help: "Unix timestamp of the last stored feed",
		},
	)

	StoreOperations = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_store_operation_duration_seconds",
			Help:    "Duration of feed store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_store_errors_total",
			Help: "Total number of feed store errors",
		},
		[]string{"backend", "operation"},
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
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

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Notification Metrics
	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_notifications_published_total",
			Help: "Total number of feed.refreshed publish attempts",
		},
		[]string{"result"}, // success, failure, rejected
	)

	NotificationsConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_notifications_consumed_total",
			Help: "Total number of feed.refreshed messages relayed to WebSocket clients",
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
		[]string{"name", "result"}, // result: success, failure, rejected
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

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordPipelineRun records one pipeline run. eventCount is ignored on failure.
func RecordPipelineRun(duration time.Duration, eventCount int, err error) {
	PipelineDuration.Observe(duration.Seconds())
	if err != nil {
		PipelineRuns.WithLabelValues("failure").Inc()
		return
	}
	PipelineRuns.WithLabelValues("success").Inc()
	PipelineEvents.Set(float64(eventCount))
}

// RecordSourceFetch records one adapter invocation.
func RecordSourceFetch(source string, duration time.Duration, eventCount int, err error) {
	SourceFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		SourceFetches.WithLabelValues(source, "failure").Inc()
		return
	}
	SourceFetches.WithLabelValues(source, "success").Inc()
	SourceEvents.WithLabelValues(source).Set(float64(eventCount))
}

// RecordSourceDisabled records a skipped adapter.
func RecordSourceDisabled(source string) {
	SourceFetches.WithLabelValues(source, "disabled").Inc()
}

// RecordUpstreamRequest records one HTTP request to an upstream site.
// status is the HTTP status code or "error" when no response was received.
func RecordUpstreamRequest(source, kind, status string) {
	UpstreamRequests.WithLabelValues(source, kind, status).Inc()
}

// RecordDedup records the outcome of a deduplication pass.
func RecordDedup(dropped, replaced int) {
	DedupDropped.Add(float64(dropped))
	DedupReplaced.Add(float64(replaced))
}

// RecordCacheHit records a request served from the stored feed.
func RecordCacheHit() {
	CacheHits.Inc()
}

// RecordCacheMiss records a request that needs a refresh.
func RecordCacheMiss(reason string) {
	CacheMisses.WithLabelValues(reason).Inc()
}

// RecordCacheRefreshed records the timestamp of a freshly stored feed.
func RecordCacheRefreshed(fetchedAt time.Time) {
	CacheLastRefresh.Set(float64(fetchedAt.Unix()))
}

// RecordStoreOperation records a store Get or Put.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperations.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
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

// RecordNotificationPublish records a feed.refreshed publish attempt.
func RecordNotificationPublish(result string) {
	NotificationsPublished.WithLabelValues(result).Inc()
}
