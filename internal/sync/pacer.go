// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package sync

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out scrape requests: at most one request per delay, plus a
// random extra pause of up to jitter before each one.
type Pacer struct {
	limiter *rate.Limiter
	jitter  time.Duration
}

// NewPacer creates a pacer. A zero delay disables the token bucket.
func NewPacer(delay, jitter time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{
		limiter: rate.NewLimiter(limit, 1),
		jitter:  jitter,
	}
}

// Wait blocks until the next request may be sent or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	if p.jitter <= 0 {
		return nil
	}

	timer := time.NewTimer(rand.N(p.jitter)) //nolint:gosec // jitter, not security
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
