// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cli holds the blendactl command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/blenda/internal/platform/config"
	pgstore "github.com/taibuivan/blenda/internal/platform/postgres"
	redisstore "github.com/taibuivan/blenda/internal/platform/redis"
)

// runtime is what every subcommand shares once the root has loaded configuration.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
}

type runtimeKey struct{}

// NewRootCommand builds the root command. Configuration is read the same way
// the API server reads it, so the CLI targets the same database.
func NewRootCommand(version string) *cobra.Command {
	var (
		envFiles []string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:           "blendactl",
		Short:         "Blenda operator CLI",
		Long:          "Administer a Blenda deployment: run migrations and provision users, teams and brands.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFiles(envFiles...)
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if verbose || cfg.Debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
				With(slog.String("app", "blendactl"))

			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey{}, &runtime{cfg: cfg, logger: logger}))
			return nil
		},
	}

	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", config.DefaultEnvFiles, "dotenv files to load before reading the environment")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	return cmd
}

func runtimeFrom(cmd *cobra.Command) *runtime {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtime)
	if !ok {
		panic("blendactl: command run without the root pre-run")
	}
	return rt
}

// withPool opens a pool for the duration of fn.
func withPool(cmd *cobra.Command, fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	rt := runtimeFrom(cmd)
	ctx := cmd.Context()

	pool, err := pgstore.NewPool(ctx, rt.cfg.DatabaseURL, rt.logger)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	return fn(ctx, pool)
}

// withRedis opens a Redis client for the duration of fn.
func withRedis(cmd *cobra.Command, fn func(client *goredis.Client) error) error {
	rt := runtimeFrom(cmd)

	client, err := redisstore.NewClient(cmd.Context(), rt.cfg.RedisURL, rt.logger)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() { _ = client.Close() }()

	return fn(client)
}

// printJSON writes v as indented JSON, the output format of every command.
func printJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
