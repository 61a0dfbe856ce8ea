// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mc-aweaver/techradar-1/internal/platform/config"
	"github.com/mc-aweaver/techradar-1/internal/platform/migration"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	var steps int

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, steps, slog.Default())
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadDatabase()
				if err != nil {
					return err
				}
				return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, slog.Default())
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadDatabase()
				if err != nil {
					return err
				}

				status, err := migration.Version(cfg.DatabaseURL, cfg.MigrationPath, slog.Default())
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", status.Version, status.Dirty)
				return nil
			},
		},
	)

	return cmd
}
