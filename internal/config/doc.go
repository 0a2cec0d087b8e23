// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

/*
Package config provides centralized configuration management for Metalfeed.

Configuration is layered with Koanf v2: struct defaults, then an optional YAML
file, then environment variables. Environment variables are mapped explicitly
to config paths, so unrelated variables in the process environment never leak
into the configuration.

# Environment Variables

Sources:
  - TM_KEY: Ticketmaster Discovery API key (required when Ticketmaster is enabled)
  - TICKETMASTER_ENABLED, TICKETMASTER_BASE_URL, TICKETMASTER_COUNTRY_CODE
  - TICKETMASTER_SEGMENT, TICKETMASTER_PAGE_SIZE, TICKETMASTER_TIMEOUT
  - TICKETMASTER_ALLOWED_GENRES, TICKETMASTER_BLOCKED_GENRES, TICKETMASTER_TITLE_KEYWORDS (comma-separated)
  - SONGKICK_ENABLED, SONGKICK_BASE_URL, SONGKICK_METRO_URLS (comma-separated)
  - SONGKICK_USER_AGENT, SONGKICK_TIMEOUT, SONGKICK_DETAIL_DELAY, SONGKICK_DETAIL_JITTER

Feed:
  - PIPELINE_SOURCE_TIMEOUT: upper bound for one adapter run (default: 2m)
  - CACHE_BACKEND: memory, badger, fallback, duckdb, postgres (default: fallback)
  - CACHE_PATH, CACHE_DUCKDB_PATH, CACHE_POSTGRES_DSN (or DATABASE_URL)
  - CACHE_MAX_AGE: serve stored feed only while younger than this (default: 0, disabled)
  - EVENTS_ENABLED, EVENTS_NATS_URL, EVENTS_TOPIC

Serving:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT
  - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

Validation errors name the environment variable to fix, for example
"TM_KEY is required when TICKETMASTER_ENABLED=true".
*/
package config
