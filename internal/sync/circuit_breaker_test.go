// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// stubSource returns scripted results, one per call. The last entry repeats.
type stubSource struct {
	name  models.Source
	errs  []error
	calls int
}

func (s *stubSource) Name() models.Source { return s.name }

func (s *stubSource) Fetch(ctx context.Context) ([]models.Event, error) {
	i := s.calls
	if i >= len(s.errs) {
		i = len(s.errs) - 1
	}
	s.calls++
	if err := s.errs[i]; err != nil {
		return nil, err
	}
	return []models.Event{{Source: s.name, Artist: "Meshuggah"}}, nil
}

func failures(n int, err error) []error {
	out := make([]error, n)
	for i := range out {
		out[i] = err
	}
	return out
}

// TestCircuitBreakerSource_OpensAfterFailures verifies the circuit opens after exceeding the failure threshold
func TestCircuitBreakerSource_OpensAfterFailures(t *testing.T) {
	fail := &UpstreamError{Source: models.SourceTicketmaster, Err: errors.New("simulated API failure")}

	// 7 failures then 3 successes, then one more failure
	script := append(failures(7, fail), nil, nil, nil, fail)
	stub := &stubSource{name: models.SourceTicketmaster, errs: script}
	cbs := NewCircuitBreakerSource("test-opens", stub)

	if cbs.State() != gobreaker.StateClosed {
		t.Errorf("Expected initial state to be Closed, got %v", cbs.State())
	}

	var successCount, failureCount int
	for i := 0; i < 10; i++ {
		if _, err := cbs.Fetch(context.Background()); err != nil {
			failureCount++
		} else {
			successCount++
		}
	}
	checkIntEqual(t, "failures", failureCount, 7)
	checkIntEqual(t, "successes", successCount, 3)

	// The trip check runs on failure, so the 11th call (a failure) opens it.
	_, _ = cbs.Fetch(context.Background())
	if cbs.State() != gobreaker.StateOpen {
		t.Fatalf("Expected circuit to be Open after 72%% failure rate, got %v", cbs.State())
	}

	calls := stub.calls
	_, err := cbs.Fetch(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected ErrOpenState when circuit is open, got %v", err)
	}
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("rejection should count as an upstream failure, got %v", err)
	}
	if stub.calls != calls {
		t.Error("open circuit should not call the wrapped source")
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-opens")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-opens", "rejected")); got != 1 {
		t.Errorf("rejected requests = %v, want 1", got)
	}
}

// TestCircuitBreakerSource_DoesNotOpenBelowThreshold verifies the circuit stays closed at 50% failures
func TestCircuitBreakerSource_DoesNotOpenBelowThreshold(t *testing.T) {
	script := append(failures(5, errors.New("simulated failure")), nil)
	cbs := NewCircuitBreakerSource("test-below", &stubSource{name: models.SourceSongkick, errs: script})

	for i := 0; i < 10; i++ {
		_, _ = cbs.Fetch(context.Background())
	}

	if cbs.State() != gobreaker.StateClosed {
		t.Errorf("Expected circuit to remain Closed with 50%% failure rate, got %v", cbs.State())
	}
}

// TestCircuitBreakerSource_RequiresMinimumRequests verifies the 10 request minimum
func TestCircuitBreakerSource_RequiresMinimumRequests(t *testing.T) {
	cbs := NewCircuitBreakerSource("test-minimum", &stubSource{
		name: models.SourceSongkick,
		errs: []error{errors.New("simulated failure")},
	})

	for i := 0; i < 5; i++ {
		_, _ = cbs.Fetch(context.Background())
	}

	if cbs.State() != gobreaker.StateClosed {
		t.Errorf("Expected circuit to remain Closed with <10 requests, got %v", cbs.State())
	}
}

// TestCircuitBreakerSource_CanceledIsNotFailure verifies caller cancellation does not trip the breaker
func TestCircuitBreakerSource_CanceledIsNotFailure(t *testing.T) {
	cbs := NewCircuitBreakerSource("test-canceled", &stubSource{
		name: models.SourceSongkick,
		errs: []error{context.Canceled},
	})

	for i := 0; i < 20; i++ {
		_, err := cbs.Fetch(context.Background())
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Fetch() error = %v, want context.Canceled", err)
		}
	}

	if cbs.State() != gobreaker.StateClosed {
		t.Errorf("Expected circuit to remain Closed for canceled calls, got %v", cbs.State())
	}
}

func TestCircuitBreakerSource_PassesThrough(t *testing.T) {
	cbs := NewCircuitBreakerSource("test-pass", &stubSource{name: models.SourceSongkick, errs: []error{nil}})

	events, err := cbs.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	checkArtists(t, events, "Meshuggah")
	if cbs.Name() != models.SourceSongkick {
		t.Errorf("Name() = %q, want Songkick", cbs.Name())
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		num   float64
		str   string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
		{gobreaker.State(99), -1, "unknown"},
	}

	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.str)
		}
	}
}
