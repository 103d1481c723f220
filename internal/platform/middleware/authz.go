// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/ctxutil"
	"github.com/taibuivan/blenda/internal/platform/respond"
	"github.com/taibuivan/blenda/internal/platform/sec"
)

// TokenVerifier verifies an access token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// Authenticate resolves the caller identity.
//
// # Flow
//  1. An 'Authorization: Bearer <token>' header is verified; a bad header is a 401.
//  2. Otherwise the access cookie is verified; a bad cookie is ignored so the
//     request continues anonymously and the gate can send the browser to login.
//  3. Verified claims go into the context, and the request logger gains user_id.
func Authenticate(verifier TokenVerifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var claims *sec.AuthClaims

			if header := request.Header.Get(constants.HeaderAuthorization); header != "" {
				scheme, token, found := strings.Cut(header, " ")
				if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
					respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
					return
				}

				verified, err := verifier.VerifyToken(strings.TrimSpace(token))
				if err != nil {
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
					return
				}
				claims = verified
			} else if cookie, err := request.Cookie(cookieName); err == nil && cookie.Value != "" {
				if verified, err := verifier.VerifyToken(cookie.Value); err == nil {
					claims = verified
				}
			}

			if claims == nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireUser is the dashboard auth gate.
//
// Anonymous browser navigations (Accept: text/html) are redirected to
// loginPath with 303 See Other; every other client receives a 401 envelope.
// Must be mounted after [Authenticate].
func RequireUser(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if ctxutil.GetAuthUser(request.Context()) != nil {
				next.ServeHTTP(writer, request)
				return
			}

			if WantsHTML(request) {
				http.Redirect(writer, request, loginPath, http.StatusSeeOther)
				return
			}
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		})
	}
}

// RequireRole blocks callers whose platform role is below role.
// It implies [RequireUser] semantics for API clients.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// WantsHTML reports whether the request is a browser navigation.
func WantsHTML(request *http.Request) bool {
	return strings.Contains(request.Header.Get(constants.HeaderAccept), "text/html")
}
