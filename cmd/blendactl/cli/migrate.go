// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/blenda/internal/platform/migration"
)

// NewMigrateCommand manages the schema version.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(newMigrateUpCommand(), newMigrateDownCommand(), newMigrateVersionCommand())
	return cmd
}

func openRunner(cmd *cobra.Command) (*migration.Runner, error) {
	rt := runtimeFrom(cmd)
	return migration.New(rt.cfg.DatabaseURL, rt.cfg.MigrationPath, rt.logger)
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := runner.Up(); err != nil {
				return err
			}
			return printVersion(cmd, runner)
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}

			runner, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer runner.Close()

			if err := runner.Down(steps); err != nil {
				return err
			}
			return printVersion(cmd, runner)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newMigrateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := openRunner(cmd)
			if err != nil {
				return err
			}
			defer runner.Close()

			return printVersion(cmd, runner)
		},
	}
}

func printVersion(cmd *cobra.Command, runner *migration.Runner) error {
	version, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), map[string]any{"version": version, "dirty": dirty})
}
