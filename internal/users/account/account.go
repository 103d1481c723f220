// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages what a signed-in user owns about themselves: the
dashboard profile row and their refresh sessions.

The profile row is created lazily. Every dashboard load calls
[Service.EnsureProfile], and a failure there never blocks the page.
*/
package account

import (
	"context"
	"time"
)

// # Domain Entities

// Profile is the dashboard-facing identity of an account.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionInfo is a refresh session as shown to its owner. Token hashes never leave storage.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// # Repository Contracts

// ProfileRepository persists users.profile.
type ProfileRepository interface {
	// FindByID returns the profile or NotFound.
	FindByID(ctx context.Context, id string) (*Profile, error)

	// Ensure inserts profile unless a row with its ID exists.
	// It reports whether a row was created.
	Ensure(ctx context.Context, profile *Profile) (bool, error)

	// Update writes the mutable fields.
	Update(ctx context.Context, profile *Profile) error
}

// SessionRepository lists and revokes a user's own sessions.
type SessionRepository interface {
	ListActive(ctx context.Context, userID string) ([]SessionInfo, error)

	// Revoke is scoped to userID; another user's session is NotFound.
	Revoke(ctx context.Context, userID, sessionID string) error

	// RevokeAll reports how many sessions were revoked.
	RevokeAll(ctx context.Context, userID string) (int64, error)
}

// # Field Identifiers

const (
	FieldFullName  = "full_name"
	FieldAvatarURL = "avatar_url"
	FieldSessionID = "sessionID"
)

const maxFullNameLength = 120
