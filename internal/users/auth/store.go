// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository reads and creates accounts.
type UserRepository interface {
	// FindByID returns a live account or NotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail matches case-insensitively and skips deleted accounts.
	FindByEmail(ctx context.Context, email string) (*User, error)

	Create(ctx context.Context, user *User) error

	// TouchLastLogin stamps a successful sign-in.
	TouchLastLogin(ctx context.Context, userID string) error
}

// # Session Data Access

// SessionRepository persists refresh-token sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash returns an unrevoked, unexpired session or NotFound.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// Revoke marks a live session revoked. A session that is missing or
	// already revoked is NotFound, so only one caller can win a rotation.
	Revoke(ctx context.Context, sessionID string) error

	// DeleteExpired removes sessions past their expiry and reports how many.
	DeleteExpired(ctx context.Context) (int64, error)
}

// # Sign-in Throttling

// AttemptLimiter counts failed sign-ins per key.
type AttemptLimiter interface {
	// Allow reports whether key may try again.
	Allow(ctx context.Context, key string) bool

	// Fail records one failed attempt.
	Fail(ctx context.Context, key string)

	// Reset forgets the failures of key.
	Reset(ctx context.Context, key string)
}
