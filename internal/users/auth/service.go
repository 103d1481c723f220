// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/sec"
	"github.com/taibuivan/blenda/internal/platform/validate"
	"github.com/taibuivan/blenda/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email, role string, ttl time.Duration) (string, error)
}

// HomeResolver picks where a user lands after signing in.
type HomeResolver interface {
	HomePath(ctx context.Context, userID string) (string, error)
}

// Service implements sign-in use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	homes    HomeResolver
	attempts AttemptLimiter
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a [Service]. homes and attempts may be nil.
func NewService(
	users UserRepository,
	sessions SessionRepository,
	tokens TokenProvider,
	homes HomeResolver,
	attempts AttemptLimiter,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		homes:    homes,
		attempts: attempts,
		logger:   logger,
		now:      time.Now,
	}
}

// # Authentication Flow

// LoginInput holds one sign-in attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is an established session ready for transport.
type LoginSession struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User

	// Redirect is the dashboard path the client should open next.
	Redirect string
}

/*
Login verifies credentials and opens a session.

Description: An unknown email and a wrong password fail the same way. After
[MaxLoginAttempts] failures the email is locked out for the rest of the
attempt window, even for the right password.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: tokens, user and landing path
  - error: UNAUTHORIZED, RATE_LIMITED or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	email := strings.TrimSpace(input.Email)

	if service.attempts != nil && !service.attempts.Allow(ctx, email) {
		service.logger.WarnContext(ctx, "login_locked_out", slog.String("ip", input.IPAddress))
		return nil, apperr.RateLimited(int(LoginAttemptWindow / time.Second))
	}

	user, err := service.users.FindByEmail(ctx, email)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	if user == nil || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		if service.attempts != nil {
			service.attempts.Fail(ctx, email)
		}
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	if service.attempts != nil {
		service.attempts.Reset(ctx, email)
	}

	session, err := service.openSession(ctx, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	if err := service.users.TouchLastLogin(ctx, user.ID); err != nil {
		service.logger.WarnContext(ctx, "last_login_update_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	session.Redirect = service.homePath(ctx, user.ID)

	service.logger.InfoContext(ctx, "user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
RefreshSession rotates a refresh token.

Description: The presented session is revoked before a new one is issued, so
each refresh token works exactly once.

Returns:
  - *LoginSession: new tokens
  - error: UNAUTHORIZED for unknown, revoked or expired tokens
*/
func (service *Service) RefreshSession(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	current, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized(MsgInvalidRefresh)
	}
	if err != nil {
		return nil, err
	}

	// A concurrent rotation may have revoked the session after it was read.
	err = service.sessions.Revoke(ctx, current.ID)
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized(MsgInvalidRefresh)
	}
	if err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, current.UserID)
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized(MsgInvalidRefresh)
	}
	if err != nil {
		return nil, err
	}

	return service.openSession(ctx, user, userAgent, ipAddress)
}

// Logout revokes the session of refreshToken. Unknown tokens are ignored.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	current, err := service.sessions.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if apperr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := service.sessions.Revoke(ctx, current.ID); err != nil && !apperr.IsNotFound(err) {
		return err
	}
	return nil
}

// Me returns the signed-in account.
func (service *Service) Me(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// FindByEmail looks an account up for operator tooling.
func (service *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return service.users.FindByEmail(ctx, strings.TrimSpace(email))
}

// PurgeExpiredSessions deletes sessions past their expiry.
func (service *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return service.sessions.DeleteExpired(ctx)
}

// # Account Provisioning

// CreateUserInput is an account created by an operator.
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        sec.UserRole
}

/*
CreateUser provisions an account. There is no self-service sign-up.

Returns:
  - *User: the created account
  - error: VALIDATION_ERROR for bad input, CONFLICT for a taken email
*/
func (service *Service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.Role == "" {
		input.Role = sec.RoleMember
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldDisplayName, input.DisplayName, 120).
		Custom(FieldRole, !input.Role.Valid(), "must be admin or member")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		DisplayName:  input.DisplayName,
	}
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// # Internals

func (service *Service) openSession(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	now := service.now()

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("sign access token: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("generate refresh token: %w", err))
	}

	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(constants.RefreshTokenTTL),
	}
	if err := service.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  now.Add(constants.AccessTokenTTL),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		User:                  user,
	}, nil
}

// homePath falls back to the site root when the landing page cannot be resolved.
func (service *Service) homePath(ctx context.Context, userID string) string {
	if service.homes == nil {
		return "/"
	}
	path, err := service.homes.HomePath(ctx, userID)
	if err != nil {
		service.logger.WarnContext(ctx, "home_path_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return "/"
	}
	return path
}
