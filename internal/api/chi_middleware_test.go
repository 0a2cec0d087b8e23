// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/metalfeed/internal/config"
	"github.com/tomtom215/metalfeed/internal/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewChiMiddlewareConfig(t *testing.T) {
	tests := []struct {
		name       string
		sec        *config.SecurityConfig
		wantReqs   int
		wantWindow time.Duration
		wantOff    bool
	}{
		{"nil uses defaults", nil, 100, time.Minute, false},
		{"zero values keep defaults", &config.SecurityConfig{}, 100, time.Minute, false},
		{
			"explicit limits",
			&config.SecurityConfig{RateLimitReqs: 20, RateLimitWindow: 10 * time.Second},
			20, 10 * time.Second, false,
		},
		{"disabled", &config.SecurityConfig{RateLimitDisabled: true}, 100, time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewChiMiddlewareConfig(tt.sec)
			if cfg.RateLimitRequests != tt.wantReqs {
				t.Errorf("RateLimitRequests = %d, want %d", cfg.RateLimitRequests, tt.wantReqs)
			}
			if cfg.RateLimitWindow != tt.wantWindow {
				t.Errorf("RateLimitWindow = %v, want %v", cfg.RateLimitWindow, tt.wantWindow)
			}
			if cfg.RateLimitDisabled != tt.wantOff {
				t.Errorf("RateLimitDisabled = %v, want %v", cfg.RateLimitDisabled, tt.wantOff)
			}
		})
	}
}

func TestChiMiddleware_CORS(t *testing.T) {
	m := NewChiMiddleware(NewChiMiddlewareConfig(&config.SecurityConfig{
		CORSOrigins: []string{"https://metalfeed.example"},
	}))
	handler := m.CORS()(okHandler())

	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{"allowed origin", "https://metalfeed.example", "https://metalfeed.example"},
		{"foreign origin", "https://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/events", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestChiMiddleware_RateLimit(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})
	handler := m.RateLimit()(okHandler())
	hits := metrics.APIRateLimitHits.WithLabelValues("events")
	before := testutil.ToFloat64(hits)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.RemoteAddr = "192.0.2.10:40000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusTooManyRequests {
			if msg := decodeError(t, rec); msg != "too many requests" {
				t.Errorf("error = %q, want too many requests", msg)
			}
		}
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d status = %d, want %d", i, codes[i], want[i])
		}
	}
	if got := testutil.ToFloat64(hits) - before; got != 1 {
		t.Errorf("rate limit hits delta = %v, want 1", got)
	}

	// Another client has its own budget.
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.RemoteAddr = "192.0.2.11:40000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second client status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestChiMiddleware_RateLimitDisabled(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
	})

	for name, mw := range map[string]func(http.Handler) http.Handler{
		"events": m.RateLimit(),
		"health": m.RateLimitHealth(),
		"ws":     m.RateLimitWebSocket(),
	} {
		handler := mw(okHandler())
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("%s request %d status = %d, want %d", name, i, rec.Code, http.StatusOK)
			}
		}
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	handler := APISecurityHeaders()(okHandler())

	t.Run("plain http", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

		want := map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "DENY",
			"Referrer-Policy":        "strict-origin-when-cross-origin",
		}
		for header, value := range want {
			if got := rec.Header().Get(header); got != value {
				t.Errorf("%s = %q, want %q", header, got, value)
			}
		}
		if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
			t.Errorf("Strict-Transport-Security = %q, want none over http", got)
		}
	})

	t.Run("behind tls proxy", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Strict-Transport-Security"); got == "" {
			t.Error("expected Strict-Transport-Security behind https proxy")
		}
	})
}
