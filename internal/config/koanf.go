// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/metalfeed/config.yaml",
	"/etc/metalfeed/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// databaseURLEnvVar is accepted as a fallback for CACHE_POSTGRES_DSN, matching
// what hosted Postgres providers inject.
const databaseURLEnvVar = "DATABASE_URL"

// DefaultMetroURLs are the Songkick metal listings for the 16 largest Swedish metro areas.
var DefaultMetroURLs = []string{
	"https://www.songkick.com/metro-areas/32252-sweden-stockholm/genre/metal",
	"https://www.songkick.com/metro-areas/34443-sweden-gothenburg/genre/metal",
	"https://www.songkick.com/metro-areas/32247-sweden-malmo/genre/metal",
	"https://www.songkick.com/metro-areas/32255-sweden-uppsala/genre/metal",
	"https://www.songkick.com/metro-areas/104871-sweden-orebro/genre/metal",
	"https://www.songkick.com/metro-areas/32238-sweden-eskilstuna/genre/metal",
	"https://www.songkick.com/metro-areas/105031-sweden-linkoping/genre/metal",
	"https://www.songkick.com/metro-areas/32242-sweden-helsingborg/genre/metal",
	"https://www.songkick.com/metro-areas/32248-sweden-norrkoping/genre/metal",
	"https://www.songkick.com/metro-areas/72136-sweden-jonkoping/genre/metal",
	"https://www.songkick.com/metro-areas/71911-sweden-boras/genre/metal",
	"https://www.songkick.com/metro-areas/56223-sweden-gavle/genre/metal",
	"https://www.songkick.com/metro-areas/32241-sweden-halmstad/genre/metal",
	"https://www.songkick.com/metro-areas/32257-sweden-vaxjo/genre/metal",
	"https://www.songkick.com/metro-areas/72496-sweden-trollhattan/genre/metal",
	"https://www.songkick.com/metro-areas/57020-sweden-solvesborg/genre/metal",
}

// Default Ticketmaster classification filters.
var (
	DefaultAllowedGenres = []string{
		"metal", "heavy metal", "hard rock", "rock",
		"alternative rock", "classic rock", "thrash metal", "death metal",
	}
	DefaultBlockedGenres = []string{
		"pop", "pop rock", "indie pop", "electronic", "dance",
		"hip-hop", "hip hop", "folk", "singer-songwriter",
	}
	DefaultTitleKeywords = []string{
		"metal", "rock", "hard rock", "heavy", "thrash", "death", "black metal",
	}
)

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Ticketmaster: TicketmasterConfig{
			Enabled:       true,
			APIKey:        "",
			BaseURL:       "https://app.ticketmaster.com",
			CountryCode:   "SE",
			Segment:       "Music",
			PageSize:      200,
			Timeout:       30 * time.Second,
			AllowedGenres: append([]string(nil), DefaultAllowedGenres...),
			BlockedGenres: append([]string(nil), DefaultBlockedGenres...),
			TitleKeywords: append([]string(nil), DefaultTitleKeywords...),
		},
		Songkick: SongkickConfig{
			Enabled:      true,
			BaseURL:      "https://www.songkick.com",
			MetroURLs:    append([]string(nil), DefaultMetroURLs...),
			UserAgent:    "Mozilla/5.0",
			Timeout:      30 * time.Second,
			DetailDelay:  250 * time.Millisecond,
			DetailJitter: 150 * time.Millisecond,
		},
		Pipeline: PipelineConfig{
			// Songkick walks 16 pages plus detail pages sequentially.
			SourceTimeout: 10 * time.Minute,
		},
		Cache: CacheConfig{
			Backend:     CacheBackendFallback,
			Path:        "/data/metalfeed/badger",
			DuckDBPath:  "/data/metalfeed/metalfeed.duckdb",
			PostgresDSN: "",
			MaxAge:      0,
		},
		Events: EventsConfig{
			Enabled: true,
			NATSURL: "",
			Topic:   "feed.refreshed",
		},
		Server: ServerConfig{
			Port:    3000,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TM_KEY -> ticketmaster.api_key
	// SONGKICK_DETAIL_DELAY -> songkick.detail_delay
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if k.String("cache.postgres_dsn") == "" {
		if dsn := os.Getenv(databaseURLEnvVar); dsn != "" {
			if err := k.Set("cache.postgres_dsn", dsn); err != nil {
				return nil, fmt.Errorf("failed to set cache.postgres_dsn: %w", err)
			}
		}
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"ticketmaster.allowed_genres",
	"ticketmaster.blocked_genres",
	"ticketmaster.title_keywords",
	"songkick.metro_urls",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars always arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (defaults or YAML)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Ticketmaster
	"tm_key":                      "ticketmaster.api_key",
	"ticketmaster_enabled":        "ticketmaster.enabled",
	"ticketmaster_base_url":       "ticketmaster.base_url",
	"ticketmaster_country_code":   "ticketmaster.country_code",
	"ticketmaster_segment":        "ticketmaster.segment",
	"ticketmaster_page_size":      "ticketmaster.page_size",
	"ticketmaster_timeout":        "ticketmaster.timeout",
	"ticketmaster_allowed_genres": "ticketmaster.allowed_genres",
	"ticketmaster_blocked_genres": "ticketmaster.blocked_genres",
	"ticketmaster_title_keywords": "ticketmaster.title_keywords",

	// Songkick
	"songkick_enabled":       "songkick.enabled",
	"songkick_base_url":      "songkick.base_url",
	"songkick_metro_urls":    "songkick.metro_urls",
	"songkick_user_agent":    "songkick.user_agent",
	"songkick_timeout":       "songkick.timeout",
	"songkick_detail_delay":  "songkick.detail_delay",
	"songkick_detail_jitter": "songkick.detail_jitter",

	// Pipeline
	"pipeline_source_timeout": "pipeline.source_timeout",

	// Cache
	"cache_backend":      "cache.backend",
	"cache_path":         "cache.path",
	"cache_duckdb_path":  "cache.duckdb_path",
	"cache_postgres_dsn": "cache.postgres_dsn",
	"cache_max_age":      "cache.max_age",

	// Notifications
	"events_enabled":  "events.enabled",
	"events_nats_url": "events.nats_url",
	"events_topic":    "events.topic",

	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TM_KEY -> ticketmaster.api_key
//   - SONGKICK_METRO_URLS -> songkick.metro_urls
//   - HTTP_PORT -> server.port
//   - DISABLE_RATE_LIMIT -> security.rate_limit_disabled
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so random environment variables
	// cannot pollute the config.
	return ""
}
