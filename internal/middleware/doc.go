// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package middleware provides HTTP middleware for the feed server.

Key Components:

  - RequestID: UUID-based request tracking wired into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge per route
  - Compression: gzip for clients that accept it

All three take and return http.HandlerFunc. The router adapts them to chi:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.With(chiMiddleware(middleware.Compression)).Get("/events", h.Events)

Browser-facing protections (CORS, rate limiting) come from go-chi/cors and
go-chi/httprate and live with the router in package api.
*/
package middleware
