// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at /metrics:

	curl http://localhost:3000/metrics

# Metric Families

Pipeline:
  - feed_pipeline_runs_total{result}
  - feed_pipeline_duration_seconds
  - feed_dedup_dropped_total, feed_dedup_replaced_total
  - feed_events_rejected_total{source}

Sources:
  - source_fetches_total{source,result}
  - source_fetch_duration_seconds{source}
  - upstream_requests_total{source,kind,status}

Cache:
  - feed_cache_hits_total, feed_cache_misses_total{reason}
  - feed_cache_shared_refreshes_total
  - feed_store_operation_duration_seconds{backend,operation}
  - feed_store_errors_total{backend,operation}

Serving:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - websocket_connections, websocket_messages_sent_total
  - feed_notifications_published_total{result}

Resilience:
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}
*/
package metrics
