// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package sync

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// CircuitBreakerSource wraps a Source with the circuit breaker pattern, so
// an upstream that keeps failing is not hammered on every refresh.
//
// The breaker uses real time for its interval and timeout. Tests drive it
// with request counts, not clocks.
type CircuitBreakerSource struct {
	source Source
	cb     *gobreaker.CircuitBreaker[[]models.Event]
	name   string
}

// NewCircuitBreakerSource wraps source in a breaker named name.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerSource(name string, source Source) *CircuitBreakerSource {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.Event](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		// A caller giving up is not an upstream failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerSource{
		source: source,
		cb:     cb,
		name:   name,
	}
}

// Name implements Source.
func (s *CircuitBreakerSource) Name() models.Source {
	return s.source.Name()
}

// Fetch implements Source. A rejected call fails like an upstream error.
func (s *CircuitBreakerSource) Fetch(ctx context.Context) ([]models.Event, error) {
	events, err := s.cb.Execute(func() ([]models.Event, error) {
		return s.source.Fetch(ctx)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			logging.Warn().Str("breaker", s.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, upstreamError(s.source.Name(), err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		counts := s.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(0)

	return events, nil
}

// State returns the current breaker state.
func (s *CircuitBreakerSource) State() gobreaker.State {
	return s.cb.State()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
