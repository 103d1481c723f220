// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package team

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/validate"
	"github.com/taibuivan/blenda/pkg/slug"
	"github.com/taibuivan/blenda/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Authorize resolves teamSlug and checks that userID is a member.

Returns:
  - *Membership: the team and the caller's membership row
  - error: NOT_FOUND "Team not found" or FORBIDDEN for non-members
*/
func (service *Service) Authorize(ctx context.Context, teamSlug, userID string) (*Membership, error) {
	t, err := service.repo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(teamSlug)))
	if err != nil {
		return nil, err
	}

	member, err := service.repo.FindMember(ctx, t.ID, userID)
	if apperr.IsNotFound(err) {
		service.logger.WarnContext(ctx, "team_access_denied",
			slog.String("team_id", t.ID),
			slog.String("user_id", userID),
		)
		return nil, apperr.Forbidden(MsgAccessDenied)
	}
	if err != nil {
		return nil, err
	}

	return &Membership{Team: t, Member: member}, nil
}

// FindBySlug resolves a team without any membership check. Operator tooling only.
func (service *Service) FindBySlug(ctx context.Context, teamSlug string) (*Team, error) {
	return service.repo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(teamSlug)))
}

func (service *Service) ListForUser(ctx context.Context, userID string) ([]*Team, error) {
	return service.repo.ListForUser(ctx, userID)
}

// HomePath is where a signed-in user lands: the template list of their
// first team, or the login page when they belong to no team yet.
func (service *Service) HomePath(ctx context.Context, userID string) (string, error) {
	teams, err := service.repo.ListForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(teams) == 0 {
		return constants.LoginPath, nil
	}
	return TemplatesPath(teams[0].Slug), nil
}

// TemplatesPath is the dashboard path of a team's template list.
func TemplatesPath(teamSlug string) string {
	return fmt.Sprintf("/%s/templates", teamSlug)
}

func (service *Service) Create(ctx context.Context, input CreateInput) (*Team, error) {
	name := strings.TrimSpace(input.Name)
	teamSlug := strings.ToLower(strings.TrimSpace(input.Slug))
	if teamSlug == "" {
		teamSlug = slug.From(name)
	}

	if err := (&validate.Validator{}).
		Required(FieldName, name).
		MaxLen(FieldName, name, 120).
		Slug(FieldSlug, teamSlug).
		Err(); err != nil {
		return nil, err
	}

	t := &Team{ID: uuid.New(), Name: name, Slug: teamSlug}
	if err := service.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "team_created", slog.String("team_id", t.ID), slog.String("slug", t.Slug))
	return t, nil
}

func (service *Service) AddMember(ctx context.Context, teamSlug, userID string, role Role) (*Member, error) {
	if role == "" {
		role = RoleMember
	}

	if err := (&validate.Validator{}).
		UUID(FieldUserID, userID).
		OneOf(FieldRole, string(role), string(RoleOwner), string(RoleEditor), string(RoleMember)).
		Err(); err != nil {
		return nil, err
	}

	t, err := service.repo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(teamSlug)))
	if err != nil {
		return nil, err
	}

	member := &Member{TeamID: t.ID, UserID: userID, Role: role}
	if err := service.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "team_member_added",
		slog.String("team_id", t.ID),
		slog.String("user_id", userID),
		slog.String("role", string(role)),
	)
	return member, nil
}
