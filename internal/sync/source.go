// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package sync

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/metalfeed/internal/config"
	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// ErrUpstream marks a failed fetch from an upstream source. A run that sees
// it must fail as a whole.
var ErrUpstream = errors.New("upstream fetch failed")

// Source is one upstream adapter. Fetch returns the candidate events in
// encounter order; an error means the source could not be read at all.
type Source interface {
	Name() models.Source
	Fetch(ctx context.Context) ([]models.Event, error)
}

// UpstreamError wraps an adapter failure with the source name:
//
//	ticketmaster: request failed with status 503: Service Unavailable
//
// errors.Is(err, ErrUpstream) holds for every UpstreamError.
type UpstreamError struct {
	Source models.Source
	Err    error
}

func (e *UpstreamError) Error() string {
	return strings.ToLower(string(e.Source)) + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is reports ErrUpstream as a match.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// upstreamError wraps err for source unless it already is an UpstreamError.
func upstreamError(source models.Source, err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Source: source, Err: err}
}

// disabledSource stands in for an adapter switched off in config.
type disabledSource struct {
	name models.Source
}

// Disabled returns a Source that always yields an empty sequence.
func Disabled(name models.Source) Source {
	return disabledSource{name: name}
}

func (d disabledSource) Name() models.Source {
	return d.name
}

func (d disabledSource) Fetch(context.Context) ([]models.Event, error) {
	metrics.RecordSourceDisabled(string(d.name))
	return []models.Event{}, nil
}

// NewSources builds the adapters in feed order, Ticketmaster first. Enabled
// adapters are wrapped in a circuit breaker; disabled ones yield nothing.
func NewSources(cfg *config.Config) []Source {
	sources := make([]Source, 0, 2)

	if cfg.Ticketmaster.Enabled {
		sources = append(sources, NewCircuitBreakerSource("ticketmaster-api", NewTicketmasterClient(&cfg.Ticketmaster)))
	} else {
		sources = append(sources, Disabled(models.SourceTicketmaster))
	}

	if cfg.Songkick.Enabled {
		sources = append(sources, NewCircuitBreakerSource("songkick-scrape", NewSongkickClient(&cfg.Songkick)))
	} else {
		sources = append(sources, Disabled(models.SourceSongkick))
	}

	return sources
}
