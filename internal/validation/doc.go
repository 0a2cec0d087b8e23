// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

// Validation is used in two places: the GET /events query string
// (api.FeedQuery) and the admission check on normalized events
// (models.Event.Validate). Both go through ValidateStruct so messages stay
// consistent.
package validation
