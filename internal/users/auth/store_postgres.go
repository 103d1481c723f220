// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/database/schema"
	"github.com/taibuivan/blenda/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on users.account.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a [PostgresUserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var selectUser = fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s IS NULL`,
	schema.UserAccount.ID,
	schema.UserAccount.Email,
	schema.UserAccount.Password,
	schema.UserAccount.Role,
	schema.UserAccount.DisplayName,
	schema.UserAccount.AvatarURL,
	schema.UserAccount.LastLoginAt,
	schema.UserAccount.CreatedAt,
	schema.UserAccount.UpdatedAt,
	schema.UserAccount.Table,
	schema.UserAccount.DeletedAt,
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.DisplayName,
		&user.AvatarURL,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := selectUser + fmt.Sprintf(" AND %s = $1", schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find_user_by_id")
	}
	return user, nil
}

// FindByEmail implements [UserRepository].
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := selectUser + fmt.Sprintf(" AND lower(%s) = lower($1)", schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find_user_by_email")
	}
	return user, nil
}

/*
Create persists a new account.

Returns:
  - error: CONFLICT when the email is already registered
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
		schema.UserAccount.Email,
		schema.UserAccount.Password,
		schema.UserAccount.Role,
		schema.UserAccount.DisplayName,
		schema.UserAccount.AvatarURL,
		schema.UserAccount.CreatedAt,
		schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.DisplayName,
		user.AvatarURL,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "User", "create_user")
}

// TouchLastLogin implements [UserRepository].
func (repository *PostgresUserRepository) TouchLastLogin(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.LastLoginAt,
		schema.UserAccount.ID,
	)

	_, err := repository.pool.Exec(ctx, query, userID)
	return dberr.Wrap(err, "User", "touch_last_login")
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

// Create implements [SessionRepository].
func (repository *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.UserSession.Table,
		schema.UserSession.ID,
		schema.UserSession.UserID,
		schema.UserSession.TokenHash,
		schema.UserSession.UserAgent,
		schema.UserSession.IPAddress,
		schema.UserSession.ExpiresAt,
		schema.UserSession.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)

	return dberr.Wrap(err, "Session", "create_session")
}

// FindByTokenHash implements [SessionRepository].
func (repository *PostgresSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s, %s
		FROM %s
		WHERE %s = $1 AND NOT %s AND %s > $2`,
		schema.UserSession.ID,
		schema.UserSession.UserID,
		schema.UserSession.TokenHash,
		schema.UserSession.UserAgent,
		schema.UserSession.IPAddress,
		schema.UserSession.ExpiresAt,
		schema.UserSession.IsRevoked,
		schema.UserSession.CreatedAt,
		schema.UserSession.Table,
		schema.UserSession.TokenHash,
		schema.UserSession.IsRevoked,
		schema.UserSession.ExpiresAt,
	)

	session := &Session{}
	err := repository.pool.QueryRow(ctx, query, tokenHash, time.Now()).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Session", "find_session")
	}
	return session, nil
}

// Revoke implements [SessionRepository].
func (repository *PostgresSessionRepository) Revoke(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = now() WHERE %s = $1 AND NOT %s`,
		schema.UserSession.Table,
		schema.UserSession.IsRevoked,
		schema.UserSession.RevokedAt,
		schema.UserSession.ID,
		schema.UserSession.IsRevoked,
	)

	tag, err := repository.pool.Exec(ctx, query, sessionID)
	if err != nil {
		return dberr.Wrap(err, "Session", "revoke_session")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}
	return nil
}

// DeleteExpired implements [SessionRepository].
func (repository *PostgresSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < now()`,
		schema.UserSession.Table,
		schema.UserSession.ExpiresAt,
	)

	tag, err := repository.pool.Exec(ctx, query)
	if err != nil {
		return 0, dberr.Wrap(err, "Session", "delete_expired_sessions")
	}
	return tag.RowsAffected(), nil
}
