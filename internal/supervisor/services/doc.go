// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

// Package services adapts Metalfeed's long-running components to
// suture.Service: the HTTP server and the WebSocket hub. The feed
// notification relay implements suture.Service itself.
package services
