// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/blenda/internal/platform/request"
	"github.com/taibuivan/blenda/internal/platform/respond"
)

// Handler serves the team-scoped dashboard routes.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts under /teams/{teamSlug}. Mount behind the auth gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/templates", handler.listTemplates)
	router.Get("/templates/{templateID}/{locale}", handler.getTemplate)
	router.Put("/templates/{templateID}/thumbnail", handler.setThumbnail)
	router.Delete("/templates/{templateID}/thumbnail", handler.clearThumbnail)
	router.Get("/brands", handler.listBrands)

	return router
}

func (handler *Handler) listTemplates(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dashboard, err := handler.service.Dashboard(request.Context(),
		requestutil.Param(request, ParamTeamSlug), claims, request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dashboard)
}

func (handler *Handler) getTemplate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Detail(request.Context(),
		requestutil.Param(request, ParamTeamSlug),
		userID,
		requestutil.Param(request, ParamTemplateID),
		requestutil.Param(request, ParamLocale),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) listBrands(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	brands, err := handler.service.Brands(request.Context(), requestutil.Param(request, ParamTeamSlug), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, brands)
}

func (handler *Handler) setThumbnail(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ThumbnailInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	card, err := handler.service.SetThumbnail(request.Context(),
		requestutil.Param(request, ParamTeamSlug),
		userID,
		requestutil.Param(request, ParamTemplateID),
		input.ThumbnailURL,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, card)
}

func (handler *Handler) clearThumbnail(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	card, err := handler.service.ClearThumbnail(request.Context(),
		requestutil.Param(request, ParamTeamSlug),
		userID,
		requestutil.Param(request, ParamTemplateID),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, card)
}
