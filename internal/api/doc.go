// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package api provides the HTTP layer of Metalfeed.

Routes:

	GET /events?refresh={0|1}   aggregated feed, {lastUpdated, events}
	GET /api/events             alias of /events
	GET /health                 liveness
	GET /health/ready           readiness, 503 while the store is unreachable
	GET /metrics                Prometheus exposition
	GET /ws                     WebSocket stream of feed_refreshed messages

Every error response carries the body {"error": "..."}. A refresh value
outside 0, 1, true and false is rejected with 400 before the gateway is
touched; a failed pipeline run or store write answers 500 and leaves the
previously cached feed in place.

Middleware:

Global: request ID, real IP, panic recovery, CORS (go-chi/cors) and
Prometheus request metrics. The feed group adds per-IP rate limiting
(go-chi/httprate), security headers and gzip compression.

Usage Example:

	chiMW := api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security))
	router := api.NewRouter(api.NewHandler(gateway, hub, cfg), chiMW)
	srv := &http.Server{Addr: cfg.Server.Address(), Handler: router.SetupChi()}
*/
package api
