// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/blenda/internal/core/brand"
)

// NewBrandCommand manages the brand catalog.
func NewBrandCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brand",
		Short: "Manage the brand catalog",
	}

	cmd.AddCommand(newBrandCreateCommand())
	return cmd
}

func newBrandCreateCommand() *cobra.Command {
	var name, slug, teamSlug string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a brand, global unless --team is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtimeFrom(cmd)

			return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
				var teamID string
				if teamSlug != "" {
					owner, err := teamService(cmd, pool).FindBySlug(ctx, teamSlug)
					if err != nil {
						return err
					}
					teamID = owner.ID
				}

				// The API caches the catalog, so writes go through the cached repository.
				return withRedis(cmd, func(client *goredis.Client) error {
					repo := brand.NewCachedRepository(brand.NewPostgresRepository(pool), client, rt.cfg.BrandCacheTTL, rt.logger)

					created, err := brand.NewService(repo, rt.logger).Create(ctx, brand.CreateInput{
						Name:   name,
						Slug:   slug,
						TeamID: teamID,
					})
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), created)
				})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "brand name")
	cmd.Flags().StringVar(&slug, "slug", "", "URL slug, derived from the name when empty")
	cmd.Flags().StringVar(&teamSlug, "team", "", "owning team slug; omit for a global brand")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
