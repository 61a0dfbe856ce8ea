// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

// Command radarctl is the operator CLI: schema migrations and bootstrapping
// the site administrator.
//
// # Usage
//
//	radarctl migrate up
//	radarctl migrate down --steps 1
//	radarctl admin show
//	radarctl admin grant --email ada@example.com
//
// It reads DATABASE_URL and MIGRATION_PATH from the environment.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mc-aweaver/techradar-1/internal/platform/constants"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "radarctl",
		Short:         "Techradar operator tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(migrateCmd(), adminCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constants.AppName, constants.AppVersion)
		},
	})

	return cmd
}
