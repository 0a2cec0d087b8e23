// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{
		Level:     "debug",
		Format:    "json",
		Timestamp: true,
		Output:    &buf,
	})
	defer Init(DefaultConfig())

	Info().Str("source", "ticketmaster").Msg("fetch finished")

	output := buf.String()
	if !strings.Contains(output, "fetch finished") {
		t.Errorf("expected output to contain message, got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"source":"ticketmaster"`) {
		t.Errorf("expected output to contain source field, got: %s", output)
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: "console", Output: &buf})
	defer Init(DefaultConfig())

	Warn().Msg("console line")

	output := buf.String()
	if strings.HasPrefix(output, "{") {
		t.Errorf("console format should not emit JSON, got: %s", output)
	}
	if !strings.Contains(output, "console line") {
		t.Errorf("expected console output to contain message, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	SetLevelString("warn")
	defer Init(DefaultConfig())

	Debug().Msg("hidden debug")
	Info().Msg("hidden info")
	Warn().Msg("visible warn")
	Err(errors.New("boom")).Msg("visible error")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("messages below warn should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "visible warn") || !strings.Contains(output, "visible error") {
		t.Errorf("expected warn and error messages, got: %s", output)
	}
	if !strings.Contains(output, `"error":"boom"`) {
		t.Errorf("expected error field, got: %s", output)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	SetLevelString("info")
	defer Init(DefaultConfig())

	child := With().Str("component", "pipeline").Logger()
	child.Info().Msg("child message")

	if !strings.Contains(buf.String(), `"component":"pipeline"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
