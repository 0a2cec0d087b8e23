// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Levels(t *testing.T) {
	SetLevelString("trace")
	defer Init(DefaultConfig())

	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{"debug", slog.LevelDebug, `"level":"debug"`},
		{"info", slog.LevelInfo, `"level":"info"`},
		{"warn", slog.LevelWarn, `"level":"warn"`},
		{"error", slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)))
			logger.Log(context.Background(), tt.level, "supervisor event")

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %s, want it to contain %s", buf.String(), tt.want)
			}
		})
	}
}

func TestSlogHandler_AttrsAndGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	logger.With("service", "http-server").
		WithGroup("restart").
		Info("service restarted",
			"attempt", 2,
			"backoff", 15*time.Second,
			"healthy", true,
		)

	output := buf.String()
	for _, want := range []string{
		`"service":"http-server"`,
		`"restart.attempt":2`,
		`"restart.healthy":true`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output = %s, want it to contain %s", output, want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = true for warn logger, want false")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(error) = false for warn logger, want true")
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler()
	if got := handler.WithGroup(""); got != handler {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}
