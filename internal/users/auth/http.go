// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/middleware"
	requestutil "github.com/taibuivan/blenda/internal/platform/request"
	"github.com/taibuivan/blenda/internal/platform/respond"
	"github.com/taibuivan/blenda/internal/platform/validate"
)

// # Definitions & Constructors

// CookieOptions controls the session cookies.
type CookieOptions struct {
	// Secure marks cookies HTTPS-only. Disable only for local development.
	Secure bool

	// LoginPath is where the gate sends browsers without a session.
	LoginPath string
}

// Handler implements the sign-in endpoints.
type Handler struct {
	service *Service
	cookies CookieOptions
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service, cookies CookieOptions) *Handler {
	if cookies.LoginPath == "" {
		cookies.LoginPath = constants.LoginPath
	}
	return &Handler{service: service, cookies: cookies}
}

// Routes returns the auth routes.
//
//   - POST /login   : email and password sign-in
//   - POST /refresh : rotates the refresh cookie
//   - POST /logout  : revokes the refresh cookie and clears both cookies
//   - GET  /me      : the signed-in account
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(handler.cookies.LoginPath))
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login authenticates a user and opens a session.

POST /api/v1/auth/login

Response:
  - 200: access token, user and the landing path
  - 400: malformed body
  - 401: invalid credentials
  - 429: too many failed attempts for this email
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int(constants.AccessTokenTTL / time.Second),
		FieldUser:        session.User,
		FieldRedirect:    session.Redirect,
	})
}

/*
Refresh rotates the refresh cookie and issues a new access token.

POST /api/v1/auth/refresh
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	session, err := handler.service.RefreshSession(
		request.Context(),
		cookie.Value,
		request.UserAgent(),
		middleware.RealIP(request),
	)
	if err != nil {
		handler.clearSessionCookies(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int(constants.AccessTokenTTL / time.Second),
	})
}

// logout is idempotent and works without a valid access token.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		if err := handler.service.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.clearSessionCookies(writer)
	respond.NoContent(writer)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

// # Cookies

// The access cookie is Lax so top-level dashboard navigations carry it.
// The refresh cookie is Strict and only sent to the auth routes.
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  session.AccessTokenExpiresAt,
		Secure:   handler.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   handler.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Path:     "/",
		MaxAge:   -1,
		Secure:   handler.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   handler.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
