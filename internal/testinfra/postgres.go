// Metalfeed - Swedish Metal and Rock Concert Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/metalfeed

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultPostgresImage is the upstream Postgres image Supabase builds on
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultPostgresPort is the Postgres wire protocol port
	DefaultPostgresPort = "5432"

	// DefaultPostgresPassword is the superuser password of test instances
	DefaultPostgresPassword = "metalfeed"

	// DefaultPostgresDatabase is the database created at startup
	DefaultPostgresDatabase = "metalfeed"
)

// PostgresContainer represents a running Postgres container for testing.
type PostgresContainer struct {
	testcontainers.Container
	DSN string
}

// PostgresOption configures the Postgres container.
type PostgresOption func(*postgresConfig)

type postgresConfig struct {
	image        string
	database     string
	startTimeout time.Duration
}

// WithPostgresImage sets a custom Postgres Docker image.
func WithPostgresImage(image string) PostgresOption {
	return func(c *postgresConfig) {
		c.image = image
	}
}

// WithDatabase sets the database created at startup.
func WithDatabase(name string) PostgresOption {
	return func(c *postgresConfig) {
		c.database = name
	}
}

// WithStartTimeout sets the timeout for waiting for Postgres to accept connections.
func WithStartTimeout(timeout time.Duration) PostgresOption {
	return func(c *postgresConfig) {
		c.startTimeout = timeout
	}
}

// StartPostgres starts a container for t and terminates it when t ends.
// The test is skipped when no container runtime is reachable.
func StartPostgres(ctx context.Context, t *testing.T, opts ...PostgresOption) *PostgresContainer {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pg, err := NewPostgresContainer(ctx, opts...)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	testcontainers.CleanupContainer(t, pg.Container)
	return pg
}

// NewPostgresContainer creates and starts a Postgres container. Callers own
// its termination.
func NewPostgresContainer(ctx context.Context, opts ...PostgresOption) (*PostgresContainer, error) {
	cfg := &postgresConfig{
		image:        DefaultPostgresImage,
		database:     DefaultPostgresDatabase,
		startTimeout: 60 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultPostgresPort + "/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": DefaultPostgresPassword,
			"POSTGRES_DB":       cfg.database,
			"TZ":                "UTC",
		},
		// The entrypoint restarts the server once after init, so the
		// readiness line shows up twice.
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(DefaultPostgresPort+"/tcp"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if container != nil {
			container.Terminate(ctx) //nolint:errcheck
		}
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultPostgresPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &PostgresContainer{
		Container: container,
		DSN: fmt.Sprintf("postgres://postgres:%s@%s:%s/%s?sslmode=disable",
			DefaultPostgresPassword, host, port.Port(), cfg.database),
	}, nil
}
