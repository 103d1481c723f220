// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/sec"
	"github.com/taibuivan/blenda/internal/users/auth"
)

const (
	anaID       = "0190d6c4-2f1e-7b3a-9c1d-5e6f7a8b9c01"
	anaEmail    = "ana@blenda.test"
	anaPassword = "correct horse battery"
)

// # Fakes

type memoryUsers struct {
	mu      sync.Mutex
	users   map[string]*auth.User
	touched []string
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("User already exists")
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) TouchLastLogin(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = append(m.touched, userID)
	return nil
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session

	// stale makes lookups ignore revocation, like a read that raced a rotation.
	stale bool
}

func (m *memorySessions) Create(_ context.Context, session *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *memorySessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, session := range m.sessions {
		if session.TokenHash == tokenHash && (m.stale || !session.IsRevoked) && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (m *memorySessions) Revoke(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok || session.IsRevoked {
		return apperr.NotFound("Session")
	}
	session.IsRevoked = true
	return nil
}

func (m *memorySessions) DeleteExpired(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, session := range m.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *memorySessions) active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, session := range m.sessions {
		if !session.IsRevoked {
			count++
		}
	}
	return count
}

// countingLimiter mirrors the Redis limiter in memory.
type countingLimiter struct {
	max      int
	failures map[string]int
}

func (c *countingLimiter) Allow(_ context.Context, key string) bool {
	return c.failures[strings.ToLower(key)] < c.max
}

func (c *countingLimiter) Fail(_ context.Context, key string) {
	c.failures[strings.ToLower(key)]++
}

func (c *countingLimiter) Reset(_ context.Context, key string) {
	delete(c.failures, strings.ToLower(key))
}

type stubHomes struct {
	path string
	err  error
}

func (s stubHomes) HomePath(context.Context, string) (string, error) {
	return s.path, s.err
}

// # Fixtures

type fixture struct {
	service  *auth.Service
	users    *memoryUsers
	sessions *memorySessions
	tokens   *sec.TokenService
	limiter  *countingLimiter
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T, homes auth.HomeResolver) *fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, constants.AuthIssuer)

	hash, err := sec.HashPassword(anaPassword)
	require.NoError(t, err)

	users := &memoryUsers{users: map[string]*auth.User{
		anaID: {ID: anaID, Email: anaEmail, PasswordHash: hash, Role: sec.RoleMember, DisplayName: "Ana"},
	}}
	sessions := &memorySessions{sessions: map[string]*auth.Session{}}
	limiter := &countingLimiter{max: auth.MaxLoginAttempts, failures: map[string]int{}}

	return &fixture{
		service:  auth.NewService(users, sessions, tokens, homes, limiter, discardLogger()),
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		limiter:  limiter,
	}
}

func (f *fixture) login(t *testing.T) *auth.LoginSession {
	t.Helper()
	session, err := f.service.Login(context.Background(), auth.LoginInput{
		Email: anaEmail, Password: anaPassword, UserAgent: "test", IPAddress: "203.0.113.7",
	})
	require.NoError(t, err)
	return session
}

// # Tests

func TestLogin_Success(t *testing.T) {
	f := newFixture(t, stubHomes{path: "/acme-studio/templates"})

	session := f.login(t)

	assert.Equal(t, anaID, session.User.ID)
	assert.Equal(t, "/acme-studio/templates", session.Redirect)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, 1, f.sessions.active())
	assert.Equal(t, []string{anaID}, f.users.touched)

	claims, err := f.tokens.VerifyToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, anaID, claims.UserID)
	assert.Equal(t, anaEmail, claims.Email)
	assert.Equal(t, string(sec.RoleMember), claims.Role)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t, nil)

	session, err := f.service.Login(context.Background(), auth.LoginInput{Email: "  ANA@blenda.test ", Password: anaPassword})

	require.NoError(t, err)
	assert.Equal(t, "/", session.Redirect)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name  string
		input auth.LoginInput
	}{
		{"wrong password", auth.LoginInput{Email: anaEmail, Password: "nope"}},
		{"unknown email", auth.LoginInput{Email: "ghost@blenda.test", Password: anaPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(context.Background(), tt.input)

			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
			assert.Equal(t, auth.MsgInvalidCredentials, err.Error())
		})
	}
	assert.Zero(t, f.sessions.active())
}

func TestLogin_LocksOutAfterRepeatedFailures(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for range auth.MaxLoginAttempts {
		_, err := f.service.Login(ctx, auth.LoginInput{Email: anaEmail, Password: "wrong"})
		require.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
	}

	_, err := f.service.Login(ctx, auth.LoginInput{Email: anaEmail, Password: anaPassword})
	assert.True(t, apperr.IsCode(err, apperr.CodeRateLimited))
}

func TestLogin_SuccessResetsFailures(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, _ = f.service.Login(ctx, auth.LoginInput{Email: anaEmail, Password: "wrong"})
	f.login(t)

	assert.Empty(t, f.limiter.failures)
}

func TestLogin_HomePathFailureFallsBackToRoot(t *testing.T) {
	f := newFixture(t, stubHomes{err: errors.New("db down")})

	assert.Equal(t, "/", f.login(t).Redirect)
}

func TestRefreshSession_Rotates(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	first := f.login(t)

	second, err := f.service.RefreshSession(ctx, first.RefreshToken, "test", "203.0.113.7")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, 1, f.sessions.active())

	_, err = f.service.RefreshSession(ctx, first.RefreshToken, "test", "203.0.113.7")
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized), "a rotated token must not work twice")
}

/*
TestRefreshSession_ConcurrentRotation covers two refreshes that both read the
session before either revoked it. Only the first may issue new tokens.
*/
func TestRefreshSession_ConcurrentRotation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	first := f.login(t)
	f.sessions.stale = true

	_, err := f.service.RefreshSession(ctx, first.RefreshToken, "test", "203.0.113.7")
	require.NoError(t, err)

	_, err = f.service.RefreshSession(ctx, first.RefreshToken, "test", "203.0.113.7")
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
	assert.Equal(t, 1, f.sessions.active(), "the losing rotation must not open a session")
}

func TestLogout(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	session := f.login(t)

	require.NoError(t, f.service.Logout(ctx, session.RefreshToken))
	assert.Zero(t, f.sessions.active())

	require.NoError(t, f.service.Logout(ctx, session.RefreshToken))
	require.NoError(t, f.service.Logout(ctx, "never-issued"))
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user, err := f.service.CreateUser(ctx, auth.CreateUserInput{
		Email: " Bo@Blenda.test ", Password: "long enough", DisplayName: "Bo",
	})
	require.NoError(t, err)
	assert.Equal(t, "bo@blenda.test", user.Email)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.True(t, sec.CheckPasswordHash("long enough", user.PasswordHash))

	_, err = f.service.CreateUser(ctx, auth.CreateUserInput{Email: "bo@blenda.test", Password: "long enough"})
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))

	_, err = f.service.CreateUser(ctx, auth.CreateUserInput{Email: "not-an-email", Password: "short", Role: "owner"})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Details, 3)
}

func TestPurgeExpiredSessions(t *testing.T) {
	f := newFixture(t, nil)
	f.sessions.sessions["old"] = &auth.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Hour)}
	f.login(t)

	removed, err := f.service.PurgeExpiredSessions(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Equal(t, 1, f.sessions.active())
}
