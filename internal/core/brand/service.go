// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/validate"
	"github.com/taibuivan/blenda/pkg/pointer"
	"github.com/taibuivan/blenda/pkg/slug"
	"github.com/taibuivan/blenda/pkg/uuid"
)

// # Service Layer

// Service is the brand catalog accessor.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
ListBrands returns the brands a team can filter by, ordered by name.

Parameters:
  - ctx: context.Context
  - teamID: string (empty lists the whole catalog)

Returns:
  - []*Brand: never nil
  - error: storage errors
*/
func (service *Service) ListBrands(ctx context.Context, teamID string) ([]*Brand, error) {
	return service.repo.ListBrands(ctx, teamID)
}

/*
FindBySlug resolves a brand slug across the whole catalog.

The slug is canonicalised before lookup. A blank slug is reported as not
found rather than matching anything.

Returns:
  - *Brand: the matching brand
  - error: apperr NOT_FOUND when no brand has the slug
*/
func (service *Service) FindBySlug(ctx context.Context, rawSlug string) (*Brand, error) {
	canonical := Canonicalize(rawSlug)
	if canonical == "" {
		return nil, apperr.NotFound("Brand")
	}
	return service.repo.FindBySlug(ctx, canonical)
}

/*
Create adds a brand to the catalog.

Description: The slug defaults to one derived from the name. The reserved
filter word cannot be used as a slug because the dashboard URL could no
longer address that brand.

Returns:
  - *Brand: the created brand
  - error: VALIDATION_ERROR for bad input, CONFLICT for a taken slug
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*Brand, error) {
	name := strings.TrimSpace(input.Name)
	brandSlug := Canonicalize(input.Slug)
	if brandSlug == "" {
		brandSlug = slug.From(name)
	}
	teamID := strings.TrimSpace(input.TeamID)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, maxNameLength).
		Slug(FieldSlug, brandSlug).
		Custom(FieldSlug, brandSlug == UnassignedValue, "This slug is reserved")
	if teamID != "" {
		validator.UUID(FieldTeamID, teamID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &Brand{
		ID:     uuid.New(),
		Name:   name,
		Slug:   brandSlug,
		TeamID: pointer.NilIfZero(teamID),
	}
	if err := service.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "brand_created",
		slog.String("brand_id", created.ID),
		slog.String("slug", created.Slug),
		slog.Bool("shared", created.IsShared()),
	)
	return created, nil
}
