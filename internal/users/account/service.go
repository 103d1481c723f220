// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/validate"
	"github.com/taibuivan/blenda/pkg/pointer"
	"github.com/taibuivan/blenda/pkg/uuid"
)

// # Service Layer

// Service orchestrates profile and session management.
type Service struct {
	profiles ProfileRepository
	sessions SessionRepository
	logger   *slog.Logger
}

// NewService constructs a [Service].
func NewService(profiles ProfileRepository, sessions SessionRepository, logger *slog.Logger) *Service {
	return &Service{profiles: profiles, sessions: sessions, logger: logger}
}

// # Profile Management

/*
EnsureProfile creates the profile row for userID if it does not exist yet.

Description: Callers on the dashboard path log the returned error and carry
on; a missing profile only degrades the page.

Parameters:
  - ctx: context.Context
  - userID: string
  - email: string (copied into the profile on first creation)

Returns:
  - error: storage failures
*/
func (service *Service) EnsureProfile(ctx context.Context, userID, email string) error {
	if strings.TrimSpace(userID) == "" {
		return apperr.ValidationError("Profile requires a user")
	}

	created, err := service.profiles.Ensure(ctx, &Profile{ID: userID, Email: email})
	if err != nil {
		return err
	}
	if created {
		service.logger.InfoContext(ctx, "profile_created", slog.String("user_id", userID))
	}
	return nil
}

// GetProfile returns the caller's profile, creating it on first access.
func (service *Service) GetProfile(ctx context.Context, userID, email string) (*Profile, error) {
	profile, err := service.profiles.FindByID(ctx, userID)
	if !apperr.IsNotFound(err) {
		return profile, err
	}

	if err := service.EnsureProfile(ctx, userID, email); err != nil {
		return nil, err
	}
	return service.profiles.FindByID(ctx, userID)
}

// UpdateProfileInput is a partial profile update. Nil fields are left
// unchanged and empty strings clear the field.
type UpdateProfileInput struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

/*
UpdateProfile applies a partial update to the caller's profile.

Returns:
  - *Profile: the updated profile
  - error: VALIDATION_ERROR for bad fields, NOT_FOUND without a profile
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*Profile, error) {
	validator := &validate.Validator{}
	if input.FullName != nil {
		*input.FullName = strings.TrimSpace(*input.FullName)
		validator.MaxLen(FieldFullName, *input.FullName, maxFullNameLength)
	}
	if input.AvatarURL != nil {
		*input.AvatarURL = strings.TrimSpace(*input.AvatarURL)
		validator.URL(FieldAvatarURL, *input.AvatarURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	profile, err := service.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		profile.FullName = pointer.NilIfZero(*input.FullName)
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = pointer.NilIfZero(*input.AvatarURL)
	}

	if err := service.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "profile_updated", slog.String("user_id", userID))
	return profile, nil
}

// # Session Security

// ListSessions returns the caller's active sessions, newest first.
func (service *Service) ListSessions(ctx context.Context, userID string) ([]SessionInfo, error) {
	return service.sessions.ListActive(ctx, userID)
}

// RevokeSession signs one of the caller's devices out.
func (service *Service) RevokeSession(ctx context.Context, userID, sessionID string) error {
	if !uuid.Valid(sessionID) {
		return apperr.NotFound("Session")
	}
	if err := service.sessions.Revoke(ctx, userID, sessionID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "session_revoked",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)
	return nil
}

// RevokeAllSessions signs the caller out everywhere.
func (service *Service) RevokeAllSessions(ctx context.Context, userID string) (int64, error) {
	revoked, err := service.sessions.RevokeAll(ctx, userID)
	if err != nil {
		return 0, err
	}

	service.logger.WarnContext(ctx, "sessions_revoked_all",
		slog.String("user_id", userID),
		slog.Int64("count", revoked),
	)
	return revoked, nil
}
