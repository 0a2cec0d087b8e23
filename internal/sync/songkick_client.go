// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
songkick_client.go - Songkick metro-area scraper

Walks the configured metro-area listing pages one after another. A listing
that lacks its venue or city triggers one paced fetch of the event page,
which fills the gaps and contributes the page's related events.

Failure Policy:
  - Listing page fails: logged, contributes nothing
  - Every listing page fails: the source is unreachable, Fetch fails
  - Event page fails: the listing is kept as is, no related events
  - Context cancelled: Fetch fails
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/metalfeed/internal/config"
	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

// SongkickClient scrapes metal listings from Songkick metro-area pages.
type SongkickClient struct {
	baseURL   string
	metroURLs []string
	userAgent string
	pacer     *Pacer
	client    *http.Client
}

// NewSongkickClient creates a scraper from config.
func NewSongkickClient(cfg *config.SongkickConfig) *SongkickClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	metroURLs := make([]string, len(cfg.MetroURLs))
	copy(metroURLs, cfg.MetroURLs)

	return &SongkickClient{
		baseURL:   cfg.BaseURL,
		metroURLs: metroURLs,
		userAgent: cfg.UserAgent,
		pacer:     NewPacer(cfg.DetailDelay, cfg.DetailJitter),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name implements Source.
func (c *SongkickClient) Name() models.Source {
	return models.SourceSongkick
}

// Fetch implements Source. Events are returned in page order, each listing
// followed by the related events of its detail page.
func (c *SongkickClient) Fetch(ctx context.Context) ([]models.Event, error) {
	start := time.Now()
	events, err := c.fetch(ctx)
	metrics.RecordSourceFetch(string(models.SourceSongkick), time.Since(start), len(events), err)
	if err != nil {
		return nil, upstreamError(models.SourceSongkick, err)
	}
	return events, nil
}

func (c *SongkickClient) fetch(ctx context.Context) ([]models.Event, error) {
	events := make([]models.Event, 0)
	var failed int
	var lastErr error

	for _, metroURL := range c.metroURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageEvents, err := c.scrapeMetroArea(ctx, metroURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			failed++
			lastErr = err
			logging.Warn().Err(err).Str("url", metroURL).Msg("Songkick listing page failed, skipping")
			continue
		}
		events = append(events, pageEvents...)
	}

	if len(c.metroURLs) > 0 && failed == len(c.metroURLs) {
		return nil, fmt.Errorf("all %d listing pages failed: %w", failed, lastErr)
	}

	logging.Debug().
		Int("pages", len(c.metroURLs)).
		Int("failed_pages", failed).
		Int("events", len(events)).
		Msg("Songkick scrape complete")

	return events, nil
}

// scrapeMetroArea fetches one listing page and completes its listings.
func (c *SongkickClient) scrapeMetroArea(ctx context.Context, metroURL string) ([]models.Event, error) {
	html, err := fetchPage(ctx, c.client, upstreamRequest{
		source:    "songkick",
		kind:      "listing",
		url:       metroURL,
		userAgent: c.userAgent,
	})
	if err != nil {
		return nil, err
	}

	listings, err := ParseListings(html, c.baseURL)
	if err != nil {
		return nil, err
	}

	results := make([]models.Event, 0, len(listings))
	for i := range listings {
		listing := listings[i]
		if listing.URL == "" || (listing.Venue != "" && listing.City != "") {
			results = append(results, listing)
			continue
		}

		page, err := c.scrapeEventPage(ctx, listing.URL)
		if err != nil {
			// Only the run's own context aborts the page. A per-request
			// client timeout is a failed detail page like any other.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logging.Debug().Err(err).Str("url", listing.URL).Msg("Songkick event page failed, keeping listing")
			results = append(results, listing)
			continue
		}

		if listing.Venue == "" {
			listing.Venue = page.Venue
		}
		if listing.City == "" {
			listing.City = page.City
		}
		results = append(results, listing)
		results = append(results, page.Related...)
	}

	return results, nil
}

// scrapeEventPage fetches and parses one event detail page after waiting
// for the pacer.
func (c *SongkickClient) scrapeEventPage(ctx context.Context, eventURL string) (EventPage, error) {
	if err := c.pacer.Wait(ctx); err != nil {
		return EventPage{}, err
	}

	html, err := fetchPage(ctx, c.client, upstreamRequest{
		source:    "songkick",
		kind:      "detail",
		url:       eventURL,
		userAgent: c.userAgent,
	})
	if err != nil {
		return EventPage{}, err
	}
	return ParseEventPage(html, c.baseURL)
}
