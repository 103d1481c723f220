// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/blenda/internal/platform/sec"
	"github.com/taibuivan/blenda/internal/users/auth"
)

// NewUserCommand provisions accounts. There is no self-service sign-up.
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUserCreateCommand())
	return cmd
}

// accountService is an auth service that can only provision and look up accounts.
func accountService(cmd *cobra.Command, pool *pgxpool.Pool) *auth.Service {
	return auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewSessionRepository(pool),
		nil, nil, nil,
		runtimeFrom(cmd).logger,
	)
}

func newUserCreateCommand() *cobra.Command {
	var (
		email    string
		password string
		name     string
		admin    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			role := sec.RoleMember
			if admin {
				role = sec.RoleAdmin
			}

			return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
				user, err := accountService(cmd, pool).CreateUser(ctx, auth.CreateUserInput{
					Email:       email,
					Password:    password,
					DisplayName: name,
					Role:        role,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), user)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the platform admin role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
