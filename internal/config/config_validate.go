// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateTicketmaster(); err != nil {
		return err
	}

	if err := c.validateSongkick(); err != nil {
		return err
	}

	if err := c.validatePipeline(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateTicketmaster validates Ticketmaster configuration (only if enabled)
func (c *Config) validateTicketmaster() error {
	if !c.Ticketmaster.Enabled {
		return nil
	}

	if err := c.validateTicketmasterAPIKey(); err != nil {
		return err
	}
	if err := validateHTTPURL(c.Ticketmaster.BaseURL, "TICKETMASTER_BASE_URL"); err != nil {
		return fmt.Errorf("TICKETMASTER_BASE_URL is invalid: %w", err)
	}
	if c.Ticketmaster.PageSize < 1 || c.Ticketmaster.PageSize > maxTicketmasterPageSize {
		return fmt.Errorf("TICKETMASTER_PAGE_SIZE must be between 1 and %d", maxTicketmasterPageSize)
	}
	if c.Ticketmaster.Timeout <= 0 {
		return fmt.Errorf("TICKETMASTER_TIMEOUT must be positive")
	}
	return nil
}

// maxTicketmasterPageSize is the Discovery API's hard cap on size.
const maxTicketmasterPageSize = 200

// validateTicketmasterAPIKey validates the Ticketmaster API key
func (c *Config) validateTicketmasterAPIKey() error {
	if c.Ticketmaster.APIKey == "" {
		return fmt.Errorf("TM_KEY is required when TICKETMASTER_ENABLED=true")
	}
	if containsPlaceholder(c.Ticketmaster.APIKey) {
		return fmt.Errorf("TM_KEY contains a placeholder value, set a real Discovery API key")
	}
	return nil
}

// validateSongkick validates Songkick configuration (only if enabled)
func (c *Config) validateSongkick() error {
	if !c.Songkick.Enabled {
		return nil
	}

	if len(c.Songkick.MetroURLs) == 0 {
		return fmt.Errorf("SONGKICK_METRO_URLS must list at least one page when SONGKICK_ENABLED=true")
	}
	for _, u := range c.Songkick.MetroURLs {
		if err := validatePageURL(u, "SONGKICK_METRO_URLS"); err != nil {
			return fmt.Errorf("SONGKICK_METRO_URLS is invalid: %w", err)
		}
	}
	if err := validateHTTPURL(c.Songkick.BaseURL, "SONGKICK_BASE_URL"); err != nil {
		return fmt.Errorf("SONGKICK_BASE_URL is invalid: %w", err)
	}
	if c.Songkick.Timeout <= 0 {
		return fmt.Errorf("SONGKICK_TIMEOUT must be positive")
	}
	if c.Songkick.DetailDelay < 0 || c.Songkick.DetailJitter < 0 {
		return fmt.Errorf("SONGKICK_DETAIL_DELAY and SONGKICK_DETAIL_JITTER must not be negative")
	}
	return nil
}

// validatePipeline validates the refresh run bounds
func (c *Config) validatePipeline() error {
	if c.Pipeline.SourceTimeout <= 0 {
		return fmt.Errorf("PIPELINE_SOURCE_TIMEOUT must be positive")
	}
	return nil
}

// validCacheBackends defines the allowed cache backends
var validCacheBackends = map[string]bool{
	CacheBackendMemory:   true,
	CacheBackendBadger:   true,
	CacheBackendFallback: true,
	CacheBackendDuckDB:   true,
	CacheBackendPostgres: true,
}

// validateCache validates the cache backend and its backend-specific settings
func (c *Config) validateCache() error {
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, badger, fallback, duckdb, postgres")
	}
	if c.Cache.MaxAge < 0 {
		return fmt.Errorf("CACHE_MAX_AGE must not be negative")
	}

	switch c.Cache.Backend {
	case CacheBackendBadger, CacheBackendFallback:
		if c.Cache.Path == "" {
			return fmt.Errorf("CACHE_PATH is required when CACHE_BACKEND=%s", c.Cache.Backend)
		}
	case CacheBackendDuckDB:
		if c.Cache.DuckDBPath == "" {
			return fmt.Errorf("CACHE_DUCKDB_PATH is required when CACHE_BACKEND=duckdb")
		}
	case CacheBackendPostgres:
		if c.Cache.PostgresDSN == "" {
			return fmt.Errorf("CACHE_POSTGRES_DSN (or DATABASE_URL) is required when CACHE_BACKEND=postgres")
		}
		if err := validatePostgresDSN(c.Cache.PostgresDSN); err != nil {
			return fmt.Errorf("CACHE_POSTGRES_DSN is invalid: %w", err)
		}
	}
	return nil
}

// validateEvents validates notification settings (only if enabled)
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Events.Topic) == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when EVENTS_ENABLED=true")
	}
	if c.Events.NATSURL != "" {
		if err := validateNATSURL(c.Events.NATSURL); err != nil {
			return fmt.Errorf("EVENTS_NATS_URL is invalid: %w", err)
		}
	}
	return nil
}

// validateServer validates the HTTP listener
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_KEY",
	"YOUR_API_KEY",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains common placeholder patterns.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
