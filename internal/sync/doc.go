// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package sync holds the upstream adapters that produce candidate events.

Key Components:

  - Source: the adapter contract, Name plus Fetch
  - TicketmasterClient: Discovery API search, filtered by GenreFilter
  - SongkickClient: metro-area listing scraper with paced detail fetches
  - ParseListings / ParseEventPage: pure goquery extraction, no I/O
  - CircuitBreakerSource: gobreaker wrapper around any Source
  - Pacer: token bucket plus jitter for scrape politeness

Each adapter returns its events in encounter order with Source already set.
Normalization and deduplication happen later in package feed.

Error Handling:

An adapter that cannot read its upstream returns an *UpstreamError naming
the source. errors.Is(err, ErrUpstream) matches every such error:

	events, err := source.Fetch(ctx)
	if errors.Is(err, sync.ErrUpstream) {
	    // the whole refresh run fails, the cached feed stays untouched
	}

Partial Songkick failures (one listing page, one event page) are logged and
skipped; only a scrape where every listing page fails counts as an upstream
failure.

Usage Example:

	sources := sync.NewSources(cfg)
	for _, src := range sources {
	    events, err := src.Fetch(ctx)
	    ...
	}

Thread Safety:

TicketmasterClient is safe for concurrent use. SongkickClient fetches
sequentially within one Fetch call; concurrent Fetch calls share the pacer.
*/
package sync
