// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/blenda/internal/platform/request"
	"github.com/taibuivan/blenda/internal/platform/respond"
)

// Handler serves the caller's own account. Mount behind the auth gate.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the account routes.
//
//   - GET    /profile
//   - PATCH  /profile
//   - GET    /sessions
//   - DELETE /sessions
//   - DELETE /sessions/{sessionID}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/profile", handler.getProfile)
	router.Patch("/profile", handler.updateProfile)

	router.Get("/sessions", handler.listSessions)
	router.Delete("/sessions", handler.revokeAllSessions)
	router.Delete("/sessions/{sessionID}", handler.revokeSession)

	return router
}

func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.GetProfile(request.Context(), claims.UserID, claims.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateProfileInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.EnsureProfile(request.Context(), claims.UserID, claims.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.UpdateProfile(request.Context(), claims.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.service.ListSessions(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sessions)
}

func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RevokeSession(request.Context(), userID, requestutil.Param(request, FieldSessionID)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) revokeAllSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	revoked, err := handler.service.RevokeAllSessions(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int64{"revoked": revoked})
}
