// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package api

import (
	"context"
	"net/http"
	"time"
)

// readyTimeout bounds the store ping of a readiness probe.
const readyTimeout = 2 * time.Second

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
	Error  string  `json:"error,omitempty"`
}

// Health handles liveness probes. It answers 200 while the process serves
// HTTP, regardless of upstreams or the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthStatus{
		Status: "ok",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probes. It answers 503 while the feed store
// is unreachable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if h.gateway == nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthStatus{
			Status: "not_ready",
			Uptime: time.Since(h.startTime).Seconds(),
			Error:  "feed gateway not initialized",
		})
		return
	}

	if err := h.gateway.Ready(ctx); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, HealthStatus{
			Status: "not_ready",
			Uptime: time.Since(h.startTime).Seconds(),
			Error:  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, HealthStatus{
		Status: "ready",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}
