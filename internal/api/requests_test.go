// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseFeedQuery(t *testing.T) {
	tests := []struct {
		target    string
		wantErr   bool
		wantForce bool
	}{
		{"/events", false, false},
		{"/events?refresh=0", false, false},
		{"/events?refresh=1", false, true},
		{"/events?refresh=true", false, true},
		{"/events?refresh=false", false, false},
		{"/events?refresh=yes", true, false},
		{"/events?refresh=10", true, false},
		{"/events?refresh=1&refresh=yes", false, true}, // first value wins
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			query, apiErr := parseFeedQuery(httptest.NewRequest(http.MethodGet, tt.target, nil))
			if (apiErr != nil) != tt.wantErr {
				t.Fatalf("parseFeedQuery() error = %v, wantErr %v", apiErr, tt.wantErr)
			}
			if apiErr != nil {
				if apiErr.Code != "VALIDATION_ERROR" {
					t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
				}
				return
			}
			if query.ForceRefresh() != tt.wantForce {
				t.Errorf("ForceRefresh() = %v, want %v", query.ForceRefresh(), tt.wantForce)
			}
		})
	}
}
