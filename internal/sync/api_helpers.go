// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/tomtom215/metalfeed/internal/metrics"
)

// maxErrorBodySize limits the amount of response body read for error reporting.
const maxErrorBodySize = 64 * 1024 // 64KB

// maxPageSize caps how much of a listing or detail page is read.
const maxPageSize = 8 << 20 // 8MB

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// upstreamRequest describes one outbound GET.
type upstreamRequest struct {
	source    string // metrics label
	kind      string // api, listing, detail
	url       string
	userAgent string
}

// executeRequest executes an HTTP GET request and returns the response body.
// Any status other than 200 is an error carrying a bounded copy of the body.
// The caller must close the returned body.
func executeRequest(ctx context.Context, client *http.Client, r upstreamRequest) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(r.source, r.kind, "error")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	metrics.RecordUpstreamRequest(r.source, r.kind, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return resp.Body, nil
}

// fetchPage executes r and reads the whole body as text.
func fetchPage(ctx context.Context, client *http.Client, r upstreamRequest) (string, error) {
	body, err := executeRequest(ctx, client, r)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}
