// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/models"
)

// respondJSON writes body as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes the wire error body {"error": message}. A non-nil err
// is logged with the request's logging context.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Int("status", status).
			Str("error", logging.SanitizeValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, models.ErrorResponse{Error: message})
}
