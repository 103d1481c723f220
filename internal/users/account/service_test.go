// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/users/account"
	"github.com/taibuivan/blenda/pkg/pointer"
)

const (
	ana = "0190d6c4-2f1e-7b3a-9c1d-5e6f7a8b9c01"
	bo  = "0190d6c4-2f1e-7b3a-9c1d-5e6f7a8b9c02"

	anaLaptop = "0190d6c4-2f1e-7b3a-9c1d-00000000a001"
	anaPhone  = "0190d6c4-2f1e-7b3a-9c1d-00000000a002"
	boLaptop  = "0190d6c4-2f1e-7b3a-9c1d-00000000b001"
)

type memoryProfiles struct {
	profiles map[string]*account.Profile
	failWith error
}

func (m *memoryProfiles) FindByID(_ context.Context, id string) (*account.Profile, error) {
	if profile, ok := m.profiles[id]; ok {
		clone := *profile
		return &clone, nil
	}
	return nil, apperr.NotFound("Profile")
}

func (m *memoryProfiles) Ensure(_ context.Context, profile *account.Profile) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	if _, ok := m.profiles[profile.ID]; ok {
		return false, nil
	}
	clone := *profile
	clone.CreatedAt = time.Now()
	m.profiles[profile.ID] = &clone
	return true, nil
}

func (m *memoryProfiles) Update(_ context.Context, profile *account.Profile) error {
	if _, ok := m.profiles[profile.ID]; !ok {
		return apperr.NotFound("Profile")
	}
	clone := *profile
	m.profiles[profile.ID] = &clone
	return nil
}

type ownedSession struct {
	userID  string
	info    account.SessionInfo
	revoked bool
}

type memorySessions struct {
	sessions []*ownedSession
}

func (m *memorySessions) ListActive(_ context.Context, userID string) ([]account.SessionInfo, error) {
	out := make([]account.SessionInfo, 0)
	for _, s := range m.sessions {
		if s.userID == userID && !s.revoked {
			out = append(out, s.info)
		}
	}
	return out, nil
}

func (m *memorySessions) Revoke(_ context.Context, userID, sessionID string) error {
	for _, s := range m.sessions {
		if s.userID == userID && s.info.ID == sessionID && !s.revoked {
			s.revoked = true
			return nil
		}
	}
	return apperr.NotFound("Session")
}

func (m *memorySessions) RevokeAll(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, s := range m.sessions {
		if s.userID == userID && !s.revoked {
			s.revoked = true
			count++
		}
	}
	return count, nil
}

func newService() (*account.Service, *memoryProfiles, *memorySessions) {
	profiles := &memoryProfiles{profiles: map[string]*account.Profile{}}
	sessions := &memorySessions{sessions: []*ownedSession{
		{userID: ana, info: account.SessionInfo{ID: anaLaptop, UserAgent: "Firefox"}},
		{userID: ana, info: account.SessionInfo{ID: anaPhone, UserAgent: "Safari"}},
		{userID: bo, info: account.SessionInfo{ID: boLaptop, UserAgent: "Chrome"}},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(profiles, sessions, logger), profiles, sessions
}

func TestEnsureProfile_IsIdempotent(t *testing.T) {
	service, profiles, _ := newService()
	ctx := context.Background()

	require.NoError(t, service.EnsureProfile(ctx, ana, "ana@blenda.test"))
	require.NoError(t, service.EnsureProfile(ctx, ana, "changed@blenda.test"))

	require.Len(t, profiles.profiles, 1)
	assert.Equal(t, "ana@blenda.test", profiles.profiles[ana].Email)
}

func TestEnsureProfile_Errors(t *testing.T) {
	service, profiles, _ := newService()

	assert.True(t, apperr.IsCode(service.EnsureProfile(context.Background(), " ", "x@y.z"), apperr.CodeValidation))

	profiles.failWith = errors.New("connection refused")
	assert.EqualError(t, service.EnsureProfile(context.Background(), ana, "ana@blenda.test"), "connection refused")
}

func TestGetProfile_CreatesOnFirstAccess(t *testing.T) {
	service, _, _ := newService()

	profile, err := service.GetProfile(context.Background(), ana, "ana@blenda.test")

	require.NoError(t, err)
	assert.Equal(t, ana, profile.ID)
	assert.Equal(t, "ana@blenda.test", profile.Email)
	assert.Nil(t, profile.FullName)
}

func TestUpdateProfile(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()
	require.NoError(t, service.EnsureProfile(ctx, ana, "ana@blenda.test"))

	profile, err := service.UpdateProfile(ctx, ana, account.UpdateProfileInput{
		FullName:  pointer.To("  Ana Lima "),
		AvatarURL: pointer.To("https://cdn.blenda.test/ana.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", *profile.FullName)
	assert.Equal(t, "https://cdn.blenda.test/ana.png", *profile.AvatarURL)

	profile, err = service.UpdateProfile(ctx, ana, account.UpdateProfileInput{AvatarURL: pointer.To("")})
	require.NoError(t, err)
	assert.Nil(t, profile.AvatarURL, "empty string clears the field")
	assert.Equal(t, "Ana Lima", *profile.FullName, "nil leaves the field alone")

	_, err = service.UpdateProfile(ctx, ana, account.UpdateProfileInput{AvatarURL: pointer.To("ftp://nope")})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = service.UpdateProfile(ctx, bo, account.UpdateProfileInput{FullName: pointer.To("Bo")})
	assert.True(t, apperr.IsNotFound(err))
}

func TestSessions(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	sessions, err := service.ListSessions(ctx, ana)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	assert.True(t, apperr.IsNotFound(service.RevokeSession(ctx, ana, boLaptop)), "cannot revoke another user's session")
	assert.True(t, apperr.IsNotFound(service.RevokeSession(ctx, ana, "not-a-uuid")))

	require.NoError(t, service.RevokeSession(ctx, ana, anaPhone))
	sessions, err = service.ListSessions(ctx, ana)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, anaLaptop, sessions[0].ID)

	revoked, err := service.RevokeAllSessions(ctx, ana)
	require.NoError(t, err)
	assert.EqualValues(t, 1, revoked)

	bosSessions, err := service.ListSessions(ctx, bo)
	require.NoError(t, err)
	assert.Len(t, bosSessions, 1)
}
