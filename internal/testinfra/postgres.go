// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultPostgresImage is the PostgreSQL image used for catalog tests.
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultPostgresPort is the container port PostgreSQL listens on.
	DefaultPostgresPort = "5432"

	defaultPostgresUser     = "audiencia"
	defaultPostgresPassword = "audiencia"
	defaultPostgresDatabase = "events"
)

// PostgresContainer is a running PostgreSQL server.
type PostgresContainer struct {
	testcontainers.Container
	// DSN is a pgx connection URL for the mapped port.
	DSN string
}

type postgresConfig struct {
	image        string
	database     string
	startTimeout time.Duration
}

// PostgresOption configures NewPostgresContainer.
type PostgresOption func(*postgresConfig)

// WithPostgresImage overrides the image tag.
func WithPostgresImage(image string) PostgresOption {
	return func(c *postgresConfig) {
		c.image = image
	}
}

// WithPostgresStartTimeout sets how long to wait for the server to accept connections.
func WithPostgresStartTimeout(timeout time.Duration) PostgresOption {
	return func(c *postgresConfig) {
		c.startTimeout = timeout
	}
}

// NewPostgresContainer starts PostgreSQL and waits until it accepts connections.
func NewPostgresContainer(ctx context.Context, opts ...PostgresOption) (*PostgresContainer, error) {
	cfg := &postgresConfig{
		image:        DefaultPostgresImage,
		database:     defaultPostgresDatabase,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	port := DefaultPostgresPort + "/tcp"
	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{port},
		Env: map[string]string{
			"POSTGRES_USER":     defaultPostgresUser,
			"POSTGRES_PASSWORD": defaultPostgresPassword,
			"POSTGRES_DB":       cfg.database,
			"TZ":                "UTC",
		},
		// The entrypoint restarts the server once after init, so the
		// readiness line appears twice.
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(port),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, DefaultPostgresPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(defaultPostgresUser, defaultPostgresPassword),
		Host:     fmt.Sprintf("%s:%s", host, mapped.Port()),
		Path:     "/" + cfg.database,
		RawQuery: "sslmode=disable",
	}

	return &PostgresContainer{
		Container: container,
		DSN:       dsn.String(),
	}, nil
}
