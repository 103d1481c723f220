// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blenda/internal/core/brand"
	"github.com/taibuivan/blenda/internal/platform/apperr"
)

// memoryRepository is an in-memory [brand.Repository].
type memoryRepository struct {
	brands    []*brand.Brand
	listCalls int
}

func (m *memoryRepository) ListBrands(_ context.Context, teamID string) ([]*brand.Brand, error) {
	m.listCalls++
	out := make([]*brand.Brand, 0)
	for _, b := range m.brands {
		if teamID == "" || b.TeamID == nil || *b.TeamID == teamID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryRepository) FindBySlug(_ context.Context, slug string) (*brand.Brand, error) {
	for _, b := range m.brands {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, apperr.NotFound("Brand")
}

func (m *memoryRepository) Create(_ context.Context, b *brand.Brand) error {
	for _, existing := range m.brands {
		if existing.Slug == b.Slug {
			return apperr.Conflict("Brand already exists")
		}
	}
	m.brands = append(m.brands, b)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func teamID(id string) *string { return &id }

func seededRepository() *memoryRepository {
	return &memoryRepository{brands: []*brand.Brand{
		{ID: "b1", Name: "Zephyr", Slug: "zephyr", TeamID: teamID("team-a")},
		{ID: "b2", Name: "Acme", Slug: "acme"},
		{ID: "b3", Name: "Bolt", Slug: "bolt", TeamID: teamID("team-b")},
	}}
}

func TestService_ListBrands(t *testing.T) {
	service := brand.NewService(seededRepository(), discardLogger())

	brands, err := service.ListBrands(context.Background(), "team-a")
	require.NoError(t, err)

	names := make([]string, 0, len(brands))
	for _, b := range brands {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Acme", "Zephyr"}, names)
}

func TestService_FindBySlug(t *testing.T) {
	service := brand.NewService(seededRepository(), discardLogger())
	ctx := context.Background()

	found, err := service.FindBySlug(ctx, "  BOLT ")
	require.NoError(t, err)
	assert.Equal(t, "b3", found.ID, "slug resolution is not team scoped")

	_, err = service.FindBySlug(ctx, "ghost")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.FindBySlug(ctx, "   ")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_Create covers slug derivation, validation and the reserved word.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug from name", func(t *testing.T) {
		service := brand.NewService(&memoryRepository{}, discardLogger())
		created, err := service.Create(ctx, brand.CreateInput{Name: "  Café Nova "})
		require.NoError(t, err)
		assert.Equal(t, "Café Nova", created.Name)
		assert.Equal(t, "cafe-nova", created.Slug)
		assert.True(t, created.IsShared())
		assert.NotEmpty(t, created.ID)
	})

	t.Run("team scoped", func(t *testing.T) {
		service := brand.NewService(&memoryRepository{}, discardLogger())
		created, err := service.Create(ctx, brand.CreateInput{
			Name:   "Acme",
			TeamID: "0190d6c4-2f1e-7b3a-9c1d-5e6f7a8b9c0d",
		})
		require.NoError(t, err)
		require.NotNil(t, created.TeamID)
		assert.False(t, created.IsShared())
	})

	invalid := []brand.CreateInput{
		{Name: ""},
		{Name: "Unassigned"},
		{Name: "Acme", Slug: "bad slug!"},
		{Name: "Acme", TeamID: "not-a-uuid"},
	}
	for _, input := range invalid {
		service := brand.NewService(&memoryRepository{}, discardLogger())
		_, err := service.Create(ctx, input)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation), "%+v", input)
	}

	t.Run("duplicate slug", func(t *testing.T) {
		service := brand.NewService(seededRepository(), discardLogger())
		_, err := service.Create(ctx, brand.CreateInput{Name: "ACME"})
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	})
}
