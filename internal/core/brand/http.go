// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/blenda/internal/platform/middleware"
	requestutil "github.com/taibuivan/blenda/internal/platform/request"
	"github.com/taibuivan/blenda/internal/platform/respond"
	"github.com/taibuivan/blenda/internal/platform/sec"
)

// Handler exposes catalog administration. Team members read their brands
// through the team-scoped dashboard routes instead.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the admin-only catalog routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listBrands)
	router.Post("/", handler.createBrand)
	return router
}

func (handler *Handler) listBrands(writer http.ResponseWriter, request *http.Request) {
	brands, err := handler.service.ListBrands(request.Context(), request.URL.Query().Get(FieldTeamID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, brands)
}

func (handler *Handler) createBrand(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}
