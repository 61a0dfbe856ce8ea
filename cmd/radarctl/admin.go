// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mc-aweaver/techradar-1/internal/platform/config"
	pgstore "github.com/mc-aweaver/techradar-1/internal/platform/postgres"
	"github.com/mc-aweaver/techradar-1/internal/users/auth"
)

// withAuthService opens a pool for the duration of fn.
func withAuthService(ctx context.Context, fn func(*auth.Service) error) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, slog.Default())
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(auth.NewService(auth.Dependencies{
		Users: auth.NewUserRepository(pool),
		Tx:    pgstore.NewTxManager(pool),
	}))
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inspect or assign the site administrator",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthService(cmd.Context(), func(service *auth.Service) error {
				admin, err := service.Admin(cmd.Context())
				if errors.Is(err, auth.ErrMissingAdminAccount) {
					return fmt.Errorf("no administrator yet, run: radarctl admin grant --email <address>")
				}
				if err != nil {
					return err
				}

				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(auth.ContactOf(admin))
			})
		},
	}

	var email string
	grant := &cobra.Command{
		Use:   "grant",
		Short: "Make a user the administrator, replacing the current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthService(cmd.Context(), func(service *auth.Service) error {
				admin, err := service.GrantAdminByEmail(cmd.Context(), email)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> is now the administrator\n", admin.Name, admin.Email)
				return nil
			})
		},
	}
	grant.Flags().StringVar(&email, "email", "", "Email of the user to promote")
	_ = grant.MarkFlagRequired("email")

	cmd.AddCommand(show, grant)
	return cmd
}
