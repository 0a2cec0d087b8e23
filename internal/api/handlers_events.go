// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package api

import (
	"net/http"

	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/models"
)

// Events serves the aggregated feed.
//
//	GET /events?refresh={0|1}
//	200 {"lastUpdated": "...", "events": [...]}
//	400 {"error": "..."} for a refresh value outside 0, 1, true, false
//	500 {"error": "..."} when the pipeline or the store fails
//
// The same handler serves /api/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	query, apiErr := parseFeedQuery(r)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Message, ErrInvalidRefresh)
		return
	}

	entry, err := h.gateway.Get(r.Context(), query.ForceRefresh())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Bool("refresh", query.ForceRefresh()).
		Int("events", entry.Count()).
		Msg("Serving feed")

	w.Header().Set("Cache-Control", "no-cache")
	respondJSON(w, http.StatusOK, models.NewFeedResponse(entry))
}
