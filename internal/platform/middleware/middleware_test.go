// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/ctxutil"
	"github.com/taibuivan/blenda/internal/platform/middleware"
	"github.com/taibuivan/blenda/internal/platform/sec"
)

type stubVerifier map[string]*sec.AuthClaims

func (v stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := v[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

var verifier = stubVerifier{
	"good":  {UserID: "user-1", Role: string(sec.RoleMember)},
	"admin": {UserID: "user-9", Role: string(sec.RoleAdmin)},
}

// whoami echoes the authenticated user id, or "anonymous".
var whoami = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		_, _ = writer.Write([]byte(claims.UserID))
		return
	}
	_, _ = writer.Write([]byte("anonymous"))
})

func gate(next http.Handler) http.Handler {
	authenticate := middleware.Authenticate(verifier, constants.AccessTokenCookieName)
	return authenticate(middleware.RequireUser("/login")(next))
}

/*
TestAuthenticate_Sources covers the bearer header, the cookie and their failure modes.
*/
func TestAuthenticate_Sources(t *testing.T) {
	handler := middleware.Authenticate(verifier, constants.AccessTokenCookieName)(whoami)

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{name: "anonymous", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "bearer", header: "Bearer good", wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "bearer lowercase scheme", header: "bearer good", wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "cookie", cookie: "good", wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "bad cookie stays anonymous", cookie: "stale", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "bad bearer", header: "Bearer stale", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token good", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: tt.cookie})
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

/*
TestRequireUser_Gate verifies browsers are redirected and API clients get 401.
*/
func TestRequireUser_Gate(t *testing.T) {
	handler := gate(whoami)

	t.Run("browser redirected to login", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/acme/templates", nil)
		request.Header.Set("Accept", "text/html,application/xhtml+xml")
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/login", recorder.Header().Get("Location"))
	})

	t.Run("api client gets 401", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
		request.Header.Set("Accept", "application/json")
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")
	})

	t.Run("authenticated passes", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
		request.Header.Set("Authorization", "Bearer good")
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "user-1", recorder.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	handler := middleware.Authenticate(verifier, constants.AccessTokenCookieName)(
		middleware.RequireRole(sec.RoleAdmin)(whoami),
	)

	for token, want := range map[string]int{"": http.StatusUnauthorized, "good": http.StatusForbidden, "admin": http.StatusOK} {
		request := httptest.NewRequest(http.MethodPost, "/api/v1/brands", nil)
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, want, recorder.Code, "token %q", token)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 2)(whoami)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "203.0.113.7:5555"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "198.51.100.2, 10.0.0.1")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", middleware.RealIP(request))
}
