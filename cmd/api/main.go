// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Blenda HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from the environment and dotenv files.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Load the token signing keys and the thumbnail presigner.
//  7. Wire repositories, services and handlers.
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

	"github.com/taibuivan/blenda/internal/api"
	"github.com/taibuivan/blenda/internal/core/brand"
	"github.com/taibuivan/blenda/internal/core/locale"
	"github.com/taibuivan/blenda/internal/core/team"
	"github.com/taibuivan/blenda/internal/core/template"
	"github.com/taibuivan/blenda/internal/platform/config"
	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/migration"
	"github.com/taibuivan/blenda/internal/platform/objectstore"
	pgstore "github.com/taibuivan/blenda/internal/platform/postgres"
	redisstore "github.com/taibuivan/blenda/internal/platform/redis"
	"github.com/taibuivan/blenda/internal/platform/sec"
	"github.com/taibuivan/blenda/internal/users/account"
	"github.com/taibuivan/blenda/internal/users/auth"
)

// sessionPurgeInterval is how often expired refresh sessions are deleted.
const sessionPurgeInterval = time.Hour

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
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

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

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
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Storage ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	thumbnails, err := objectstore.NewPresigner(objectstore.Options{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		TTL:             cfg.ThumbnailURLTTL,
	})
	must(log, err, "initialize thumbnail presigner")
	log.Info("thumbnail_presigning", slog.Bool("enabled", thumbnails.Enabled()))

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	teamService := team.NewService(team.NewPostgresRepository(pool), log)

	brandRepository := brand.NewCachedRepository(brand.NewPostgresRepository(pool), rdb, cfg.BrandCacheTTL, log)
	brandService := brand.NewService(brandRepository, log)

	accountService := account.NewService(
		account.NewProfileRepository(pool),
		account.NewSessionRepository(pool),
		log,
	)

	templateService := template.NewService(
		teamService,
		brandService,
		template.NewPostgresRepository(pool),
		accountService,
		thumbnails,
		log,
	)

	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewSessionRepository(pool),
		tokens,
		teamService,
		auth.NewAttemptLimiter(rdb, auth.MaxLoginAttempts, auth.LoginAttemptWindow, log),
		log,
	)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, auth.CookieOptions{Secure: cfg.CookieSecure, LoginPath: cfg.LoginPath}),
		Account:   account.NewHandler(accountService),
		Locale:    locale.NewHandler(),
		Team:      team.NewHandler(teamService),
		Template:  template.NewHandler(templateService),
		Brand:     brand.NewHandler(brandService),
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	go purgeSessions(rootCtx, authService, log)

	server := api.NewServer(rootCtx, cfg, log, tokens, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	rootCancel()

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// purgeSessions deletes expired refresh sessions until ctx is cancelled.
func purgeSessions(ctx context.Context, service *auth.Service, log *slog.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := service.PurgeExpiredSessions(ctx)
			if err != nil {
				log.Warn("session_purge_failed", slog.Any("error", err))
				continue
			}
			log.Debug("sessions_purged", slog.Int64("count", removed))
		}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
