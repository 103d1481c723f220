// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/blenda/internal/core/team"
)

// NewTeamCommand creates teams and manages their membership rows.
func NewTeamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams and members",
	}

	cmd.AddCommand(newTeamCreateCommand(), newTeamAddMemberCommand())
	return cmd
}

func teamService(cmd *cobra.Command, pool *pgxpool.Pool) *team.Service {
	return team.NewService(team.NewPostgresRepository(pool), runtimeFrom(cmd).logger)
}

func newTeamCreateCommand() *cobra.Command {
	var name, slug string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
				created, err := teamService(cmd, pool).Create(ctx, team.CreateInput{Name: name, Slug: slug})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), created)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "team name")
	cmd.Flags().StringVar(&slug, "slug", "", "URL slug, derived from the name when empty")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTeamAddMemberCommand() *cobra.Command {
	var teamSlug, email, role string

	cmd := &cobra.Command{
		Use:   "add-member",
		Short: "Add an existing user to a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
				user, err := accountService(cmd, pool).FindByEmail(ctx, email)
				if err != nil {
					return err
				}

				member, err := teamService(cmd, pool).AddMember(ctx, teamSlug, user.ID, team.Role(role))
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), member)
			})
		},
	}

	cmd.Flags().StringVar(&teamSlug, "team", "", "team slug")
	cmd.Flags().StringVar(&email, "email", "", "email of the user to add")
	cmd.Flags().StringVar(&role, "role", string(team.RoleMember), "owner, editor or member")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
