// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

// Package pgtest starts a throwaway PostgreSQL container for integration
// tests and applies the radar migrations to it.
//
// Tests using it carry the "integration" build tag and need a Docker daemon.
package pgtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mc-aweaver/techradar-1/internal/platform/migration"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// Setup returns a pool connected to a migrated database shared by the whole
// test binary. Every table is truncated before the pool is handed out.
func Setup(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		sharedDSN, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("pgtest: failed to start database: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, sharedDSN)
	if err != nil {
		t.Fatalf("pgtest: failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, `TRUNCATE radar.blip, radar.radar, radar.slug, radar.topic, users.session, users.account CASCADE`); err != nil {
		t.Fatalf("pgtest: truncate failed: %v", err)
	}

	return pool
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "radar",
				"POSTGRES_PASSWORD": "radar",
				"POSTGRES_DB":       "radar_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://radar:radar@%s:%s/radar_test?sslmode=disable", host, port.Port())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := migration.RunUp(dsn, migrationsPath(), logger); err != nil {
		return "", err
	}

	return dsn, nil
}

// migrationsPath resolves data/migrations relative to this source file.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
