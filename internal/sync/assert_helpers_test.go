// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package sync

import (
	"testing"

	"github.com/tomtom215/metalfeed/internal/models"
)

// Test assertion helpers with "check" prefix.
// Using t.Helper() ensures error messages point to the calling line.

// checkStringEqual checks that got equals want, failing if not
func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

// checkStringEmpty checks that value is empty
func checkStringEmpty(t *testing.T, fieldName, value string) {
	t.Helper()
	if value != "" {
		t.Errorf("%s should be empty, got %q", fieldName, value)
	}
}

// checkIntEqual checks that got equals want
func checkIntEqual(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// checkArtists checks the artist sequence of events
func checkArtists(t *testing.T, events []models.Event, want ...string) {
	t.Helper()
	if len(events) != len(want) {
		got := make([]string, len(events))
		for i := range events {
			got[i] = events[i].Artist
		}
		t.Fatalf("artists: expected %v, got %v", want, got)
	}
	for i := range want {
		if events[i].Artist != want[i] {
			t.Errorf("events[%d].Artist: expected %q, got %q", i, want[i], events[i].Artist)
		}
	}
}
