// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package team_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/blenda/internal/core/team"
	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/ctxutil"
	"github.com/taibuivan/blenda/internal/platform/sec"
)

const (
	alice = "0190d6c4-2f1e-7b3a-9c1d-5e6f7a8b9c01"
	bob   = "0190d6c4-2f1e-7b3a-9c1d-5e6f7a8b9c02"
	carol = "0190d6c4-2f1e-7b3a-9c1d-5e6f7a8b9c03"
)

// memoryRepository is an in-memory [team.Repository]; membership order is
// insertion order.
type memoryRepository struct {
	teams   []*team.Team
	members []*team.Member
	failAll error
}

func (m *memoryRepository) FindBySlug(_ context.Context, slug string) (*team.Team, error) {
	for _, t := range m.teams {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Team")
}

func (m *memoryRepository) FindMember(_ context.Context, teamID, userID string) (*team.Member, error) {
	for _, member := range m.members {
		if member.TeamID == teamID && member.UserID == userID {
			return member, nil
		}
	}
	return nil, apperr.NotFound("Membership")
}

func (m *memoryRepository) ListForUser(_ context.Context, userID string) ([]*team.Team, error) {
	if m.failAll != nil {
		return nil, m.failAll
	}
	out := make([]*team.Team, 0)
	for _, member := range m.members {
		if member.UserID != userID {
			continue
		}
		for _, t := range m.teams {
			if t.ID == member.TeamID {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (m *memoryRepository) Create(_ context.Context, t *team.Team) error {
	m.teams = append(m.teams, t)
	return nil
}

func (m *memoryRepository) AddMember(_ context.Context, member *team.Member) error {
	m.members = append(m.members, member)
	return nil
}

func newService() (*team.Service, *memoryRepository) {
	repo := &memoryRepository{
		teams: []*team.Team{
			{ID: "t-acme", Name: "Acme", Slug: "acme"},
			{ID: "t-bolt", Name: "Bolt", Slug: "bolt"},
		},
		members: []*team.Member{
			{TeamID: "t-bolt", UserID: alice, Role: team.RoleOwner},
			{TeamID: "t-acme", UserID: alice, Role: team.RoleMember},
			{TeamID: "t-acme", UserID: bob, Role: team.RoleEditor},
		},
	}
	return team.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

/*
TestService_Authorize covers the three outcomes of the membership check.
*/
func TestService_Authorize(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	membership, err := service.Authorize(ctx, "acme", bob)
	require.NoError(t, err)
	assert.Equal(t, "t-acme", membership.Team.ID)
	assert.Equal(t, team.RoleEditor, membership.Member.Role)

	_, err = service.Authorize(ctx, "ghost", bob)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	assert.Equal(t, "Team not found", ae.Message)

	_, err = service.Authorize(ctx, "bolt", bob)
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	assert.Equal(t, team.MsgAccessDenied, ae.Message)
}

func TestService_HomePath(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	path, err := service.HomePath(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "/bolt/templates", path, "first membership wins")

	path, err = service.HomePath(ctx, carol)
	require.NoError(t, err)
	assert.Equal(t, "/login", path)

	repo.failAll = errors.New("db down")
	_, err = service.HomePath(ctx, alice)
	assert.Error(t, err)
}

func TestService_CreateAndAddMember(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, team.CreateInput{Name: "Nova Studio"})
	require.NoError(t, err)
	assert.Equal(t, "nova-studio", created.Slug)

	member, err := service.AddMember(ctx, "nova-studio", carol, "")
	require.NoError(t, err)
	assert.Equal(t, team.RoleMember, member.Role)

	membership, err := service.Authorize(ctx, "Nova-Studio", carol)
	require.NoError(t, err)
	assert.Equal(t, created.ID, membership.Team.ID)

	_, err = service.AddMember(ctx, "nova-studio", carol, "superuser")
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = service.Create(ctx, team.CreateInput{Name: "  "})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestHandler_Home(t *testing.T) {
	service, _ := newService()
	handler := team.NewHandler(service)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: alice}))
	recorder := httptest.NewRecorder()

	handler.Home(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/bolt/templates", recorder.Header().Get("Location"))
}
