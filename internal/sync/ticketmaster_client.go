// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
ticketmaster_client.go - Ticketmaster Discovery API adapter

One request per run against the Discovery API event search:

	GET {base}/discovery/v2/events.json?apikey=...&countryCode=SE&segmentName=Music&size=200

Every returned event passes through the GenreFilter before it is mapped. The
mapping fills missing venue, city and date with the display placeholders and
labels each record with the most specific genre available.

Failure Modes:
  - Transport error, non-200 status, undecodable body: the whole call fails
  - Missing _embedded.events: empty result
  - Entry without a name: skipped
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/metalfeed/internal/config"
	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/metrics"
	"github.com/tomtom215/metalfeed/internal/models"
)

const ticketmasterEventsPath = "/discovery/v2/events.json"

// preferredImageRatio is the Discovery API ratio label chosen for artwork.
const preferredImageRatio = "16_9"

// TicketmasterClient fetches Swedish music events from the Discovery API.
type TicketmasterClient struct {
	baseURL     string
	apiKey      string
	countryCode string
	segment     string
	pageSize    int
	filter      *GenreFilter
	client      *http.Client
}

// NewTicketmasterClient creates a Discovery API adapter from config.
func NewTicketmasterClient(cfg *config.TicketmasterConfig) *TicketmasterClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TicketmasterClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		countryCode: cfg.CountryCode,
		segment:     cfg.Segment,
		pageSize:    cfg.PageSize,
		filter:      NewGenreFilter(cfg.AllowedGenres, cfg.BlockedGenres, cfg.TitleKeywords),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name implements Source.
func (c *TicketmasterClient) Name() models.Source {
	return models.SourceTicketmaster
}

// Fetch implements Source. The returned events keep API order.
func (c *TicketmasterClient) Fetch(ctx context.Context) ([]models.Event, error) {
	start := time.Now()
	events, err := c.fetch(ctx)
	metrics.RecordSourceFetch(string(models.SourceTicketmaster), time.Since(start), len(events), err)
	if err != nil {
		return nil, upstreamError(models.SourceTicketmaster, err)
	}
	return events, nil
}

func (c *TicketmasterClient) fetch(ctx context.Context) ([]models.Event, error) {
	body, err := executeRequest(ctx, c.client, upstreamRequest{
		source: "ticketmaster",
		kind:   "api",
		url:    c.requestURL(),
	})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp tmResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.Embedded == nil {
		logging.Debug().Msg("Ticketmaster response has no embedded events")
		return []models.Event{}, nil
	}

	events := make([]models.Event, 0, len(resp.Embedded.Events))
	var filtered, skipped int
	for i := range resp.Embedded.Events {
		e := &resp.Embedded.Events[i]
		if strings.TrimSpace(e.Name) == "" {
			skipped++
			continue
		}
		genre, subGenre := e.classification()
		if !c.filter.Accept(genre, subGenre, e.Name) {
			filtered++
			continue
		}
		events = append(events, e.toEvent())
	}

	logging.Debug().
		Int("received", len(resp.Embedded.Events)).
		Int("accepted", len(events)).
		Int("filtered", filtered).
		Int("skipped", skipped).
		Msg("Ticketmaster events mapped")

	return events, nil
}

// requestURL builds the search URL. The API key travels as a query parameter.
func (c *TicketmasterClient) requestURL() string {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("countryCode", c.countryCode)
	params.Set("segmentName", c.segment)
	params.Set("size", strconv.Itoa(c.pageSize))
	return c.baseURL + ticketmasterEventsPath + "?" + params.Encode()
}

// Discovery API response subset.
type tmResponse struct {
	Embedded *struct {
		Events []tmEvent `json:"events"`
	} `json:"_embedded"`
}

type tmEvent struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Images []struct {
		Ratio string `json:"ratio"`
		URL   string `json:"url"`
	} `json:"images"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
		} `json:"start"`
	} `json:"dates"`
	Classifications []struct {
		Genre    *tmNamed `json:"genre"`
		SubGenre *tmNamed `json:"subGenre"`
	} `json:"classifications"`
	Embedded *struct {
		Venues []struct {
			Name string   `json:"name"`
			City *tmNamed `json:"city"`
		} `json:"venues"`
	} `json:"_embedded"`
}

type tmNamed struct {
	Name string `json:"name"`
}

func (n *tmNamed) name() string {
	if n == nil {
		return ""
	}
	return n.Name
}

// classification returns the genre and sub-genre names of the first
// classification, or empty strings.
func (e *tmEvent) classification() (genre, subGenre string) {
	if len(e.Classifications) == 0 {
		return "", ""
	}
	c := e.Classifications[0]
	return c.Genre.name(), c.SubGenre.name()
}

func (e *tmEvent) toEvent() models.Event {
	event := models.Event{
		Source: models.SourceTicketmaster,
		Artist: e.Name,
		Venue:  models.UnknownVenue,
		City:   models.UnknownCity,
		Date:   models.UnknownDate,
		URL:    e.URL,
		Image:  e.image(),
		Genre:  models.UndefinedGenre,
	}

	if e.Embedded != nil && len(e.Embedded.Venues) > 0 {
		v := e.Embedded.Venues[0]
		if v.Name != "" {
			event.Venue = v.Name
		}
		if city := v.City.name(); city != "" {
			event.City = city
		}
	}
	if e.Dates.Start.LocalDate != "" {
		event.Date = e.Dates.Start.LocalDate
	}

	genre, subGenre := e.classification()
	switch {
	case subGenre != "":
		event.Genre = subGenre
	case genre != "":
		event.Genre = genre
	}

	return event
}

// image picks the 16:9 artwork, else the first image.
func (e *tmEvent) image() string {
	for _, img := range e.Images {
		if img.Ratio == preferredImageRatio && img.URL != "" {
			return img.URL
		}
	}
	if len(e.Images) > 0 {
		return e.Images[0].URL
	}
	return ""
}
