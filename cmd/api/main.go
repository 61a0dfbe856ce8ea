// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

// Command api is the entry point for the Techradar HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Start the event dispatcher and the job scheduler.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mc-aweaver/techradar-1/internal/api"
	"github.com/mc-aweaver/techradar-1/internal/platform/config"
	"github.com/mc-aweaver/techradar-1/internal/platform/constants"
	"github.com/mc-aweaver/techradar-1/internal/platform/events"
	"github.com/mc-aweaver/techradar-1/internal/platform/metrics"
	"github.com/mc-aweaver/techradar-1/internal/platform/migration"
	pgstore "github.com/mc-aweaver/techradar-1/internal/platform/postgres"
	redisstore "github.com/mc-aweaver/techradar-1/internal/platform/redis"
	"github.com/mc-aweaver/techradar-1/internal/platform/scheduler"
	"github.com/mc-aweaver/techradar-1/internal/platform/sec"
	"github.com/mc-aweaver/techradar-1/internal/radar/radar"
	"github.com/mc-aweaver/techradar-1/internal/radar/slugs"
	"github.com/mc-aweaver/techradar-1/internal/radar/topic"
	"github.com/mc-aweaver/techradar-1/internal/users/account"
	"github.com/mc-aweaver/techradar-1/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown; background loops stop when it is cancelled.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Events & Metrics ───────────────────────────────────────────────
	metric := metrics.New()

	dispatcher := events.NewDispatcher(log,
		events.DispatcherConfig{Workers: cfg.NotifierWorkers},
		events.NewRedisPublisher(rdb, cfg.EventsChannel),
		events.NewLogSubscriber(log),
		metric.EventCounter(),
	)
	dispatcher.Start()
	defer dispatcher.Stop()

	// ── 7. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	txManager := pgstore.NewTxManager(pool)

	authService := auth.NewService(auth.Dependencies{
		Users:         auth.NewUserRepository(pool),
		Sessions:      auth.NewSessionRepository(pool),
		ResetTokens:   auth.NewResetTokenRepository(rdb),
		ConfirmTokens: auth.NewVerificationTokenRepository(rdb),
		Tokens:        jwtSvc,
		Tx:            txManager,
		Notifier:      dispatcher,
	})

	topicRepository := topic.NewPostgresRepository(pool)
	topicService := topic.NewService(topicRepository, slugs.NewPostgresRepository(pool), txManager, log)

	accountService := account.NewService(
		account.NewAccountRepository(pool),
		account.NewSessionRepository(pool),
		topicRepository,
		log,
	)

	radarService := radar.NewService(
		radar.NewPostgresRepository(pool),
		radar.NewPostgresBlipRepository(pool),
		topicService,
		log,
	)

	// ── 10. Scheduled Jobs ────────────────────────────────────────────────
	jobs := scheduler.New(log)
	must(log, jobs.Add("purge_expired_sessions", cfg.SessionCleanupSchedule, authService.PurgeExpiredSessions), "schedule session cleanup")
	jobs.Start(appCtx)

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Admin:     auth.NewAdminHandler(authService),
		Account:   account.NewHandler(accountService),
		Topic:     topic.NewHandler(topicService),
		Radar:     radar.NewHandler(radarService),
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, metric, handlers)

	// ── 12. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	appCancel()
	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "techradar"))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
