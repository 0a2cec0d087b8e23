// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
gateway.go - Feed cache gateway

The gateway is the only entry point consumers use. It serves the stored
entry when one exists and runs the pipeline otherwise.

	Get(ctx, false): stored entry if present, else refresh
	Get(ctx, true):  always refresh

A refresh persists {fetchedAt: now, payload} and only then returns it. A
failed pipeline leaves the stored entry untouched; a failed Put fails the
call. Concurrent refreshes collapse into one pipeline run whose result every
waiting caller shares.
*/

//nolint:staticcheck // File documentation, not package doc
package cache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// refreshKey is the single-flight key. There is only one feed.
const refreshKey = "feed"

// Runner produces a fresh, ordered feed.
type Runner interface {
	Run(ctx context.Context) ([]models.Event, error)
}

// Notifier is told about every stored refresh.
type Notifier interface {
	NotifyFeedRefreshed(ctx context.Context, event models.FeedRefreshed) error
}

// Gateway mediates between consumers, the store and the pipeline.
type Gateway struct {
	store    Store
	pipeline Runner
	notifier Notifier
	maxAge   time.Duration
	now      func() time.Time
	group    singleflight.Group
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithMaxAge makes entries older than maxAge count as absent. Zero disables
// the check, so a stored entry is served regardless of age.
func WithMaxAge(maxAge time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.maxAge = maxAge
	}
}

// WithNotifier sets the refresh notifier.
func WithNotifier(n Notifier) GatewayOption {
	return func(g *Gateway) {
		g.notifier = n
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		g.now = now
	}
}

// NewGateway creates a gateway over store and pipeline.
func NewGateway(store Store, pipeline Runner, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		store:    store,
		pipeline: pipeline,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Get returns the current feed, refreshing it when forced or when nothing
// usable is stored.
func (g *Gateway) Get(ctx context.Context, forceRefresh bool) (models.CacheEntry, error) {
	reason := "forced"
	if !forceRefresh {
		entry, found, err := g.store.Get(ctx)
		if err != nil {
			return models.CacheEntry{}, fmt.Errorf("read cached feed: %w", err)
		}
		switch {
		case !found:
			reason = "empty"
		case g.expired(entry):
			reason = "expired"
		default:
			metrics.RecordCacheHit()
			return entry, nil
		}
	}

	metrics.RecordCacheMiss(reason)
	logging.Ctx(ctx).Debug().Str("reason", reason).Msg("Refreshing feed")
	return g.refresh(ctx)
}

// Ready reports whether the store is reachable.
func (g *Gateway) Ready(ctx context.Context) error {
	return g.store.Ping(ctx)
}

func (g *Gateway) expired(entry models.CacheEntry) bool {
	return g.maxAge > 0 && g.now().Sub(entry.FetchedAt) > g.maxAge
}

// refresh joins the in-flight run or starts one. The run is detached from
// the caller's cancellation so one impatient caller cannot fail the others;
// the caller itself stops waiting when its context ends.
func (g *Gateway) refresh(ctx context.Context) (models.CacheEntry, error) {
	runCtx := context.WithoutCancel(ctx)
	ch := g.group.DoChan(refreshKey, func() (interface{}, error) {
		return g.runAndStore(runCtx)
	})

	select {
	case <-ctx.Done():
		return models.CacheEntry{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.CacheSharedRefreshes.Inc()
		}
		if res.Err != nil {
			return models.CacheEntry{}, res.Err
		}
		return res.Val.(models.CacheEntry), nil
	}
}

func (g *Gateway) runAndStore(ctx context.Context) (models.CacheEntry, error) {
	events, err := g.pipeline.Run(ctx)
	if err != nil {
		return models.CacheEntry{}, err
	}

	entry := models.CacheEntry{
		FetchedAt: g.now().UTC(),
		Payload:   events,
	}
	if err := g.store.Put(ctx, entry); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("backend", g.store.Backend()).Msg("Failed to persist refreshed feed")
		return models.CacheEntry{}, fmt.Errorf("persist refreshed feed: %w", err)
	}
	metrics.RecordCacheRefreshed(entry.FetchedAt)

	logging.Ctx(ctx).Info().
		Int("events", entry.Count()).
		Time("fetched_at", entry.FetchedAt).
		Msg("Feed refreshed")

	if g.notifier != nil {
		if err := g.notifier.NotifyFeedRefreshed(ctx, models.NewFeedRefreshed(entry)); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to publish feed refreshed notification")
		}
	}

	return entry, nil
}
