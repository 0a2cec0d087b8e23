// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/metalfeed/internal/config"
	"github.com/tomtom215/metalfeed/internal/logging"
	"github.com/tomtom215/metalfeed/internal/models"
	ws "github.com/tomtom215/metalfeed/internal/websocket"
)

// FeedGateway is the cache gateway as seen by the handlers.
type FeedGateway interface {
	Get(ctx context.Context, forceRefresh bool) (models.CacheEntry, error)
	Ready(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade
//   - handlers_events.go: the feed endpoint
//   - handlers_health.go: liveness and readiness
type Handler struct {
	gateway   FeedGateway
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler. wsHub may be nil, in which case /ws
// answers 503.
//
// Example:
//
//	handler := api.NewHandler(gateway, hub, cfg)
//	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security)))
//	http.ListenAndServe(cfg.Server.Address(), router.SetupChi())
func NewHandler(gateway FeedGateway, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		gateway:   gateway,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// WebSocket upgrades the connection and registers it with the hub. Clients
// receive feed_refreshed messages until they disconnect.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, r, http.StatusServiceUnavailable, "websocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// CORS allow list. Browsers always send Origin, so a missing one is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", logging.SanitizeValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
