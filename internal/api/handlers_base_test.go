// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/metalfeed/internal/config"
	"github.com/tomtom215/metalfeed/internal/models"
)

// fakeGateway records calls and returns canned results.
type fakeGateway struct {
	mu       sync.Mutex
	entry    models.CacheEntry
	err      error
	readyErr error
	calls    []bool
}

func (g *fakeGateway) Get(_ context.Context, forceRefresh bool) (models.CacheEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, forceRefresh)
	if g.err != nil {
		return models.CacheEntry{}, g.err
	}
	return g.entry, nil
}

func (g *fakeGateway) Ready(context.Context) error {
	return g.readyErr
}

func (g *fakeGateway) getCalls() []bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]bool(nil), g.calls...)
}

func sampleEntry() models.CacheEntry {
	return models.CacheEntry{
		FetchedAt: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Payload: []models.Event{
			{
				Source: models.SourceTicketmaster,
				Artist: "Wintersun",
				Venue:  "Fryshuset Klubben",
				City:   "Stockholm",
				Date:   "2026-11-14",
				URL:    "https://www.ticketmaster.se/event/wintersun-stockholm",
			},
			{
				Source: models.SourceSongkick,
				Artist: "Tribulation",
				Venue:  "Pustervik",
				City:   "Göteborg",
				URL:    "https://www.songkick.com/concerts/42-tribulation-at-pustervik",
			},
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://metalfeed.example"},
			RateLimitDisabled: true,
		},
	}
}

// newTestRouter builds the full route tree around gateway with rate
// limiting disabled.
func newTestRouter(gateway FeedGateway) http.Handler {
	cfg := testConfig()
	handler := NewHandler(gateway, nil, cfg)
	return NewRouter(handler, NewChiMiddleware(NewChiMiddlewareConfig(&cfg.Security))).SetupChi()
}

func doRequest(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}
