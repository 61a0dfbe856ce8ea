// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Techradar API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Domain event fan-out
	EventsChannel   string `env:"EVENTS_CHANNEL"   envDefault:"techradar:events"`
	NotifierWorkers int    `env:"NOTIFIER_WORKERS" envDefault:"2"`

	// SessionCleanupSchedule is a standard 5-field cron spec.
	SessionCleanupSchedule string `env:"SESSION_CLEANUP_SCHEDULE" envDefault:"@hourly"`

	// Cross-Origin Resource Sharing
	CORSOriginSuffix string `env:"CORS_ORIGIN_SUFFIX" envDefault:"techradar.dev"`
	ExtraOrigins     string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.NotifierWorkers < 1 {
		return nil, fmt.Errorf("config: NOTIFIER_WORKERS must be at least 1, got %d", cfg.NotifierWorkers)
	}

	return cfg, nil
}

// DatabaseConfig is the subset of [Config] needed by offline tooling such as
// radarctl, which must not require Redis or signing keys.
type DatabaseConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// LoadDatabase parses only the database settings.
func LoadDatabase() (*DatabaseConfig, error) {
	cfg := &DatabaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse database settings: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowsOrigin reports whether a browser origin may call the API.
//
// Origins ending in CORSOriginSuffix are accepted, plus any exact match from
// the comma-separated EXTRA_ORIGINS list.
func (c *Config) AllowsOrigin(origin string) bool {
	if c.CORSOriginSuffix != "" && strings.HasSuffix(origin, c.CORSOriginSuffix) {
		return true
	}
	for _, extra := range strings.Split(c.ExtraOrigins, ",") {
		if extra = strings.TrimSpace(extra); extra != "" && extra == origin {
			return true
		}
	}
	return false
}
