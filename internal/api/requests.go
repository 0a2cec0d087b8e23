// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

// Package api provides HTTP request validation structs with go-playground/validator tags.
//
// Example usage:
//
//	query, apiErr := parseFeedQuery(r)
//	if apiErr != nil {
//	    respondError(w, r, http.StatusBadRequest, apiErr.Message, nil)
//	    return
//	}
package api

import (
	"net/http"

	"github.com/tomtom215/metalfeed/internal/validation"
)

// FeedQuery represents the validated query parameters of GET /events.
//
// Fields:
//   - Refresh: "1" or "true" forces a pipeline run; "", "0" and "false" serve the cache
type FeedQuery struct {
	Refresh string `validate:"omitempty,oneof=0 1 true false"`
}

// ForceRefresh reports whether the caller asked to bypass the cache.
func (q FeedQuery) ForceRefresh() bool {
	return q.Refresh == "1" || q.Refresh == "true"
}

// parseFeedQuery reads and validates the feed query. A validation failure is
// returned in API form so the handler can answer 400.
func parseFeedQuery(r *http.Request) (FeedQuery, *validation.APIError) {
	query := FeedQuery{
		Refresh: r.URL.Query().Get("refresh"),
	}
	if verr := validation.ValidateStruct(&query); verr != nil {
		return FeedQuery{}, verr.ToAPIError()
	}
	return query, nil
}
