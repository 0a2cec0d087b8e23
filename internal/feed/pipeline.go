// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
pipeline.go - Merge-sort refresh pipeline

One run:
 1. Fetch: every source concurrently, each under its own timeout
 2. Merge: concatenate in source order (Ticketmaster before Songkick)
 3. Normalize: dates to YYYY-MM-DD, trimmed display fields
 4. Admit: drop records that fail Event.Validate
 5. Deduplicate: URL first, descriptive key second, later date wins
 6. Sort: date ascending, undated last, stable

Any source failure fails the run. There is no partial result: the caller
keeps whatever it had before.
*/

//nolint:staticcheck // File documentation, not package doc
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
	"github.com/tomtom215/metalfeed/internal/sync"
)

// ErrPipeline wraps every failed run.
var ErrPipeline = errors.New("feed pipeline failed")

// DefaultSourceTimeout bounds one adapter invocation when none is configured.
const DefaultSourceTimeout = 10 * time.Minute

// Pipeline turns source output into the ordered, deduplicated feed.
type Pipeline struct {
	sources       []sync.Source
	sourceTimeout time.Duration
}

// NewPipeline creates a pipeline over sources. Their order decides which
// record is seen first when duplicates tie.
func NewPipeline(sources []sync.Source, sourceTimeout time.Duration) *Pipeline {
	if sourceTimeout <= 0 {
		sourceTimeout = DefaultSourceTimeout
	}
	return &Pipeline{
		sources:       sources,
		sourceTimeout: sourceTimeout,
	}
}

// Run executes one refresh. The returned slice is never nil on success.
func (p *Pipeline) Run(ctx context.Context) ([]models.Event, error) {
	start := time.Now()
	events, err := p.run(ctx)
	metrics.RecordPipelineRun(time.Since(start), len(events), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Dur("duration", time.Since(start)).Msg("Feed pipeline failed")
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Int("events", len(events)).
		Dur("duration", time.Since(start)).
		Msg("Feed pipeline completed")
	return events, nil
}

func (p *Pipeline) run(ctx context.Context) ([]models.Event, error) {
	results, err := p.fetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPipeline, err)
	}

	var merged []models.Event
	for _, batch := range results {
		merged = append(merged, batch...)
	}

	return Process(ctx, merged), nil
}

// fetchAll runs every source concurrently and returns their outputs in
// source order. The first failure cancels the others.
func (p *Pipeline) fetchAll(ctx context.Context) ([][]models.Event, error) {
	results := make([][]models.Event, len(p.sources))
	g, gctx := errgroup.WithContext(ctx)

	for i, src := range p.sources {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, p.sourceTimeout)
			defer cancel()

			events, err := src.Fetch(sctx)
			if err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("source", string(src.Name())).Msg("Source fetch failed")
				return err
			}
			logging.Ctx(ctx).Debug().Int("events", len(events)).Str("source", string(src.Name())).Msg("Source fetched")
			results[i] = events
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Process normalizes, admits, deduplicates and sorts merged source output.
// It is deterministic for a given input.
func Process(ctx context.Context, merged []models.Event) []models.Event {
	admitted := make([]models.Event, 0, len(merged))
	for i := range merged {
		e := Normalize(merged[i])
		if err := e.Validate(); err != nil {
			metrics.EventsRejected.WithLabelValues(string(e.Source)).Inc()
			logging.Ctx(ctx).Debug().Err(err).
				Str("source", string(e.Source)).
				Str("artist", logging.SanitizeValue(e.Artist)).
				Msg("Event rejected")
			continue
		}
		admitted = append(admitted, e)
	}

	events, stats := Deduplicate(admitted)
	SortByDate(events)

	logging.Ctx(ctx).Debug().
		Int("input", len(merged)).
		Int("admitted", len(admitted)).
		Int("duplicates", stats.Dropped).
		Int("replaced", stats.Replaced).
		Msg("Feed processed")

	return events
}
