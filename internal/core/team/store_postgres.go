// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package team

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/blenda/internal/platform/database/schema"
	"github.com/taibuivan/blenda/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Team, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.StudioTeam.ID,
		schema.StudioTeam.Name,
		schema.StudioTeam.Slug,
		schema.StudioTeam.CreatedAt,
		schema.StudioTeam.Table,
		schema.StudioTeam.Slug,
	)

	t := &Team{}
	err := repository.pool.QueryRow(ctx, query, slug).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Team", "find_team_by_slug")
	}
	return t, nil
}

func (repository *PostgresRepository) FindMember(ctx context.Context, teamID, userID string) (*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.StudioTeamMember.TeamID,
		schema.StudioTeamMember.UserID,
		schema.StudioTeamMember.Role,
		schema.StudioTeamMember.JoinedAt,
		schema.StudioTeamMember.Table,
		schema.StudioTeamMember.TeamID,
		schema.StudioTeamMember.UserID,
	)

	m := &Member{}
	err := repository.pool.QueryRow(ctx, query, teamID, userID).Scan(&m.TeamID, &m.UserID, &m.Role, &m.JoinedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Membership", "find_team_member")
	}
	return m, nil
}

func (repository *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*Team, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s
		FROM %s t
		JOIN %s m ON m.%s = t.%s
		WHERE m.%s = $1
		ORDER BY m.%s ASC, t.%s ASC
	`,
		schema.StudioTeam.ID,
		schema.StudioTeam.Name,
		schema.StudioTeam.Slug,
		schema.StudioTeam.CreatedAt,
		schema.StudioTeam.Table,
		schema.StudioTeamMember.Table,
		schema.StudioTeamMember.TeamID, schema.StudioTeam.ID,
		schema.StudioTeamMember.UserID,
		schema.StudioTeamMember.JoinedAt, schema.StudioTeam.Name,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "Team", "list_teams_for_user")
	}
	defer rows.Close()

	teams := make([]*Team, 0)
	for rows.Next() {
		t := &Team{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "Team", "scan_team")
		}
		teams = append(teams, t)
	}
	return teams, dberr.Wrap(rows.Err(), "Team", "iterate_teams")
}

func (repository *PostgresRepository) Create(ctx context.Context, team *Team) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		schema.StudioTeam.Table,
		schema.StudioTeam.ID,
		schema.StudioTeam.Name,
		schema.StudioTeam.Slug,
		schema.StudioTeam.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query, team.ID, team.Name, team.Slug).Scan(&team.CreatedAt)
	return dberr.Wrap(err, "Team", "create_team")
}

// AddMember inserts a membership or updates the role of an existing one.
func (repository *PostgresRepository) AddMember(ctx context.Context, member *Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.StudioTeamMember.Table,
		schema.StudioTeamMember.TeamID,
		schema.StudioTeamMember.UserID,
		schema.StudioTeamMember.Role,
		schema.StudioTeamMember.TeamID, schema.StudioTeamMember.UserID,
		schema.StudioTeamMember.Role, schema.StudioTeamMember.Role,
		schema.StudioTeamMember.JoinedAt,
	)

	err := repository.pool.QueryRow(ctx, query, member.TeamID, member.UserID, member.Role).Scan(&member.JoinedAt)
	return dberr.Wrap(err, "Membership", "add_team_member")
}
