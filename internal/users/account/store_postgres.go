// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/database/schema"
	"github.com/taibuivan/blenda/internal/platform/dberr"
)

// # Profile Repository

// PostgresProfileRepository implements [ProfileRepository] on users.profile.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository constructs a [PostgresProfileRepository].
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

// FindByID implements [ProfileRepository].
func (repository *PostgresProfileRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.UserProfile.ID,
		schema.UserProfile.Email,
		schema.UserProfile.FullName,
		schema.UserProfile.AvatarURL,
		schema.UserProfile.CreatedAt,
		schema.UserProfile.Table,
		schema.UserProfile.ID,
	)

	profile := &Profile{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Profile", "find_profile")
	}
	return profile, nil
}

/*
Ensure implements [ProfileRepository].

ON CONFLICT DO NOTHING makes concurrent first loads of the dashboard safe.
*/
func (repository *PostgresProfileRepository) Ensure(ctx context.Context, profile *Profile) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO NOTHING`,
		schema.UserProfile.Table,
		schema.UserProfile.ID,
		schema.UserProfile.Email,
		schema.UserProfile.FullName,
		schema.UserProfile.AvatarURL,
		schema.UserProfile.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, profile.ID, profile.Email, profile.FullName, profile.AvatarURL)
	if err != nil {
		return false, dberr.Wrap(err, "Profile", "ensure_profile")
	}
	return tag.RowsAffected() == 1, nil
}

// Update implements [ProfileRepository].
func (repository *PostgresProfileRepository) Update(ctx context.Context, profile *Profile) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserProfile.Table,
		schema.UserProfile.FullName,
		schema.UserProfile.AvatarURL,
		schema.UserProfile.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, profile.ID, profile.FullName, profile.AvatarURL)
	if err != nil {
		return dberr.Wrap(err, "Profile", "update_profile")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Profile")
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository] on users.session.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository constructs a [PostgresSessionRepository].
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// ListActive implements [SessionRepository].
func (repository *PostgresSessionRepository) ListActive(ctx context.Context, userID string) ([]SessionInfo, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1 AND NOT %s AND %s > now()
		ORDER BY %s DESC`,
		schema.UserSession.ID,
		schema.UserSession.UserAgent,
		schema.UserSession.IPAddress,
		schema.UserSession.CreatedAt,
		schema.UserSession.ExpiresAt,
		schema.UserSession.Table,
		schema.UserSession.UserID,
		schema.UserSession.IsRevoked,
		schema.UserSession.ExpiresAt,
		schema.UserSession.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "Session", "list_sessions")
	}
	defer rows.Close()

	sessions := make([]SessionInfo, 0)
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.UserAgent, &info.IPAddress, &info.CreatedAt, &info.ExpiresAt); err != nil {
			return nil, dberr.Wrap(err, "Session", "scan_session")
		}
		sessions = append(sessions, info)
	}

	return sessions, dberr.Wrap(rows.Err(), "Session", "iterate_sessions")
}

// Revoke implements [SessionRepository].
func (repository *PostgresSessionRepository) Revoke(ctx context.Context, userID, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = now() WHERE %s = $1 AND %s = $2 AND NOT %s`,
		schema.UserSession.Table,
		schema.UserSession.IsRevoked,
		schema.UserSession.RevokedAt,
		schema.UserSession.ID,
		schema.UserSession.UserID,
		schema.UserSession.IsRevoked,
	)

	tag, err := repository.pool.Exec(ctx, query, sessionID, userID)
	if err != nil {
		return dberr.Wrap(err, "Session", "revoke_session")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

// RevokeAll implements [SessionRepository].
func (repository *PostgresSessionRepository) RevokeAll(ctx context.Context, userID string) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = now() WHERE %s = $1 AND NOT %s`,
		schema.UserSession.Table,
		schema.UserSession.IsRevoked,
		schema.UserSession.RevokedAt,
		schema.UserSession.UserID,
		schema.UserSession.IsRevoked,
	)

	tag, err := repository.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "Session", "revoke_all_sessions")
	}
	return tag.RowsAffected(), nil
}
