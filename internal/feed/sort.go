// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package feed

import (
	"slices"
	"strings"

	"github.com/tomtom215/metalfeed/internal/models"
)

// SortByDate orders events by date ascending in place. Undated events go
// last. The sort is stable, so ties keep their input order.
func SortByDate(events []models.Event) {
	slices.SortStableFunc(events, func(a, b models.Event) int {
		switch {
		case a.HasDate() && b.HasDate():
			return strings.Compare(a.Date, b.Date)
		case a.HasDate():
			return -1
		case b.HasDate():
			return 1
		default:
			return 0
		}
	})
}
