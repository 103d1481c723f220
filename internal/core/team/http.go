// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package team

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/blenda/internal/platform/request"
	"github.com/taibuivan/blenda/internal/platform/respond"
)

// Handler serves team listing and the signed-in landing redirect.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves the caller's own teams. Mount behind the auth gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listTeams)
	return router
}

// Home redirects GET / to the caller's first team.
func (handler *Handler) Home(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	path, err := handler.service.HomePath(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	http.Redirect(writer, request, path, http.StatusFound)
}

func (handler *Handler) listTeams(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	teams, err := handler.service.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, teams)
}
