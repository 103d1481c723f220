// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate for the studio and users schemas.
//
// The API server applies pending migrations at startup; blendactl exposes the
// same runner for manual up, down and version commands.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner applies migrations from a directory to one database.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// New opens the migration source at path and the database at dsn.
func New(dsn, path string, logger *slog.Logger) (*Runner, error) {
	migrator, err := migrate.New("file://"+path, ToPgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	return &Runner{migrator: migrator, logger: logger}, nil
}

// Close releases the source and database handles.
func (r *Runner) Close() {
	sourceErr, dbErr := r.migrator.Close()
	if sourceErr != nil {
		r.logger.Error("migration_source_close_failed", slog.Any("error", sourceErr))
	}
	if dbErr != nil {
		r.logger.Error("migration_db_close_failed", slog.Any("error", dbErr))
	}
}

// Version returns the applied version; 0 means nothing has run yet.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to read version: %w", err)
	}
	return version, dirty, nil
}

// Up applies every pending migration. A dirty database is refused.
func (r *Runner) Up() error {
	from, dirty, err := r.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d, fix it manually", from)
	}

	r.logger.Info("migration_started", slog.Uint64("current_version", uint64(from)))

	if err := r.migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := r.Version()
	r.logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// Down rolls back n migrations.
func (r *Runner) Down(n int) error {
	if n <= 0 {
		return fmt.Errorf("migration: down needs a positive step count, got %d", n)
	}
	if err := r.migrator.Steps(-n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: down failed: %w", err)
	}
	return nil
}

// RunUp is the startup shortcut: open, apply everything pending, close.
func RunUp(dsn, path string, logger *slog.Logger) error {
	runner, err := New(dsn, path, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.Up()
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// the golang-migrate pgx/v5 driver registers.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger to slog.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool {
	return false
}
