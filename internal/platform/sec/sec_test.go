// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blenda/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

/*
TestTokenService_RoundTrip verifies that a signed token verifies back to its claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "blenda.test")

	token, err := service.GenerateAccessToken("user-1", "ana@blenda.test", "member", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@blenda.test", claims.Email)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

/*
TestTokenService_Rejects covers expired, foreign and malformed tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	service := newTokenService(t, "blenda.test")

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken("user-1", "a@b.c", "member", -time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("other key", func(t *testing.T) {
		other := newTokenService(t, "blenda.test")
		token, err := other.GenerateAccessToken("user-1", "a@b.c", "member", time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other := newTokenService(t, "elsewhere")
		token, err := other.GenerateAccessToken("user-1", "a@b.c", "member", time.Minute)
		require.NoError(t, err)
		_, err = service.VerifyToken(token)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyToken("not-a-jwt")
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("battery staple", hash))
}

func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken()
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, sec.HashToken(first), 64)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
}

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("ghost").Valid())
}
