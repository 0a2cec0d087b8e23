// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package sync

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPacer_SpacesRequests(t *testing.T) {
	t.Parallel()

	p := NewPacer(50*time.Millisecond, 0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}

	// First token is immediate, the next two wait one delay each.
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("3 waits took %v, want at least ~100ms", elapsed)
	}
}

func TestPacer_ZeroDelay(t *testing.T) {
	t.Parallel()

	p := NewPacer(0, 0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("unpaced waits took %v", elapsed)
	}
}

func TestPacer_Jitter(t *testing.T) {
	t.Parallel()

	p := NewPacer(0, 20*time.Millisecond)
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("jittered wait took %v, want under the jitter bound plus slack", elapsed)
	}
}

func TestPacer_ContextCanceled(t *testing.T) {
	t.Parallel()

	p := NewPacer(time.Hour, 0)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := p.Wait(ctx); err == nil {
		t.Error("expected error when the next token is an hour away")
	}

	jittery := NewPacer(0, time.Hour)
	canceled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	if err := jittery.Wait(canceled); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}
