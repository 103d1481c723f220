// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/taibuivan/blenda/internal/core/brand"
	"github.com/taibuivan/blenda/internal/core/locale"
	"github.com/taibuivan/blenda/internal/core/team"
	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/objectstore"
	"github.com/taibuivan/blenda/internal/platform/sec"
	"github.com/taibuivan/blenda/internal/platform/validate"
	"github.com/taibuivan/blenda/pkg/pointer"
	"github.com/taibuivan/blenda/pkg/slice"
	"github.com/taibuivan/blenda/pkg/uuid"
)

// # Collaborators

// Authorizer performs the team membership check.
type Authorizer interface {
	Authorize(ctx context.Context, teamSlug, userID string) (*team.Membership, error)
}

// BrandCatalog lists the brands a team can filter by and resolves slugs.
type BrandCatalog interface {
	BrandResolver
	ListBrands(ctx context.Context, teamID string) ([]*brand.Brand, error)
}

// ThumbnailStorage resolves stored thumbnail references and vets new ones.
type ThumbnailStorage interface {
	ThumbnailResolver
	Check(ref string) error
}

// ProfileEnsurer makes sure the viewer has a profile row.
type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, userID, email string) error
}

// # Results

// Dashboard is the payload of the team template list.
type Dashboard struct {
	Team        *team.Team     `json:"team"`
	Brands      []*brand.Brand `json:"brands"`
	ActiveBrand *string        `json:"active_brand"`
	Count       int            `json:"count"`
	Templates   []Card         `json:"templates"`
}

// Detail is the payload of the template editor for one locale.
type Detail struct {
	Team     *team.Team                       `json:"team"`
	Template *Template                        `json:"template"`
	Card     Card                             `json:"card"`
	Locale   locale.Badge                     `json:"locale"`
	Voice    locale.VoiceSelection            `json:"voice"`
	Voices   map[string]locale.VoiceSelection `json:"voices"`
}

// # Service Layer

// Service assembles dashboard pages from the team, brand and template stores.
type Service struct {
	teams    Authorizer
	brands   BrandCatalog
	repo     Repository
	profiles ProfileEnsurer
	thumbs   ThumbnailStorage
	logger   *slog.Logger
}

// NewService constructs a [Service]. profiles and thumbs may be nil.
func NewService(
	teams Authorizer,
	brands BrandCatalog,
	repo Repository,
	profiles ProfileEnsurer,
	thumbs ThumbnailStorage,
	logger *slog.Logger,
) *Service {
	return &Service{
		teams:    teams,
		brands:   brands,
		repo:     repo,
		profiles: profiles,
		thumbs:   thumbs,
		logger:   logger,
	}
}

/*
Dashboard loads the template list of a team for one viewer.

Description: The steps run in a fixed order. The viewer's profile is ensured
first and any failure there is only logged. The team is resolved and
membership checked before any filter is looked at, and the team ID used in
the query comes from that check.

Parameters:
  - ctx: context.Context
  - teamSlug: string from the URL path
  - viewer: *sec.AuthClaims of the signed-in user
  - params: url.Values carrying "brand" and "q"

Returns:
  - *Dashboard: the page payload
  - error: NOT_FOUND for an unknown team, FORBIDDEN for non-members
*/
func (service *Service) Dashboard(ctx context.Context, teamSlug string, viewer *sec.AuthClaims, params url.Values) (*Dashboard, error) {
	if viewer == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	service.ensureProfile(ctx, viewer)

	membership, err := service.teams.Authorize(ctx, teamSlug, viewer.UserID)
	if err != nil {
		return nil, err
	}

	brands, err := service.brands.ListBrands(ctx, membership.Team.ID)
	if err != nil {
		return nil, err
	}

	selection := brand.Decode(params)
	query, err := BuildQuery(ctx, service.brands, membership.Team.ID, selection)
	if err != nil {
		return nil, err
	}
	query = query.WithTitle(params.Get(QueryTitle))

	templates, err := service.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	presenter := NewPresenter(membership.Team.Slug, viewer.UserID, service.thumbs)
	cards := presenter.PresentAll(ctx, templates)

	var active *string
	if value := selection.QueryValue(); value != "" {
		active = pointer.To(value)
	}

	return &Dashboard{
		Team:        membership.Team,
		Brands:      brands,
		ActiveBrand: active,
		Count:       len(cards),
		Templates:   cards,
	}, nil
}

/*
Detail loads one template of a team opened on localeCode.

Returns:
  - *Detail: the template with its current locale and voice choices
  - error: NOT_FOUND for an unknown team, template or locale; FORBIDDEN for non-members
*/
func (service *Service) Detail(ctx context.Context, teamSlug, userID, templateID, localeCode string) (*Detail, error) {
	membership, err := service.teams.Authorize(ctx, teamSlug, userID)
	if err != nil {
		return nil, err
	}

	if !uuid.Valid(templateID) {
		return nil, apperr.NotFound("Template")
	}

	t, err := service.repo.FindByID(ctx, membership.Team.ID, templateID)
	if err != nil {
		return nil, err
	}

	current := t.FindLocale(localeCode)
	if current == nil {
		return nil, apperr.NotFound("Template locale")
	}

	codes := slice.Map(t.Locales, func(l Locale) string { return l.Locale })

	presenter := NewPresenter(membership.Team.Slug, userID, service.thumbs)
	return &Detail{
		Team:     membership.Team,
		Template: t,
		Card:     presenter.Present(ctx, t),
		Locale:   locale.BadgeFor(current.Locale),
		Voice:    locale.SelectVoice(current.Locale),
		Voices:   locale.SelectVoices(codes),
	}, nil
}

// Brands lists the brands a member can filter the team's templates by.
func (service *Service) Brands(ctx context.Context, teamSlug, userID string) ([]*brand.Brand, error) {
	membership, err := service.teams.Authorize(ctx, teamSlug, userID)
	if err != nil {
		return nil, err
	}
	return service.brands.ListBrands(ctx, membership.Team.ID)
}

/*
SetThumbnail points a template of the team at a new thumbnail.

Description: ref is an http(s) URL, an asset path of the web app, or an
object in the thumbnail bucket (s3://bucket/key or a bare key). Uploading
the image happens elsewhere; only the reference is stored.

Returns:
  - *Card: the updated template card
  - error: NOT_FOUND for an unknown team or template, FORBIDDEN for non-members,
    VALIDATION_ERROR for a bad reference, SERVICE_UNAVAILABLE for object keys
    when no bucket is configured
*/
func (service *Service) SetThumbnail(ctx context.Context, teamSlug, userID, templateID, ref string) (*Card, error) {
	ref = strings.TrimSpace(ref)

	membership, err := service.teams.Authorize(ctx, teamSlug, userID)
	if err != nil {
		return nil, err
	}
	if !uuid.Valid(templateID) {
		return nil, apperr.NotFound("Template")
	}
	if err := service.checkThumbnail(ref); err != nil {
		return nil, err
	}

	return service.updateThumbnail(ctx, membership, userID, templateID, ref)
}

// ClearThumbnail resets a template to [DefaultThumbnail].
func (service *Service) ClearThumbnail(ctx context.Context, teamSlug, userID, templateID string) (*Card, error) {
	membership, err := service.teams.Authorize(ctx, teamSlug, userID)
	if err != nil {
		return nil, err
	}
	if !uuid.Valid(templateID) {
		return nil, apperr.NotFound("Template")
	}

	return service.updateThumbnail(ctx, membership, userID, templateID, DefaultThumbnail)
}

func (service *Service) checkThumbnail(ref string) error {
	validator := &validate.Validator{}
	validator.Required(FieldThumbnailURL, ref).
		MaxLen(FieldThumbnailURL, ref, maxThumbnailLength)
	if err := validator.Err(); err != nil {
		return err
	}

	// Without storage only URLs and asset paths are acceptable.
	var storage ThumbnailStorage = &objectstore.Presigner{}
	if service.thumbs != nil {
		storage = service.thumbs
	}

	err := storage.Check(ref)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, objectstore.ErrDisabled):
		return apperr.ServiceUnavailable(MsgThumbnailDisabled)
	default:
		return validator.Custom(FieldThumbnailURL, true, MsgInvalidThumbnail).Err()
	}
}

func (service *Service) updateThumbnail(ctx context.Context, membership *team.Membership, userID, templateID, ref string) (*Card, error) {
	if err := service.repo.UpdateThumbnail(ctx, membership.Team.ID, templateID, ref); err != nil {
		return nil, err
	}

	t, err := service.repo.FindByID(ctx, membership.Team.ID, templateID)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "template_thumbnail_updated",
		slog.String("template_id", templateID),
		slog.String("user_id", userID),
	)

	card := NewPresenter(membership.Team.Slug, userID, service.thumbs).Present(ctx, t)
	return &card, nil
}

func (service *Service) ensureProfile(ctx context.Context, viewer *sec.AuthClaims) {
	if service.profiles == nil {
		return
	}
	if err := service.profiles.EnsureProfile(ctx, viewer.UserID, viewer.Email); err != nil {
		service.logger.WarnContext(ctx, "profile_ensure_failed",
			slog.String("user_id", viewer.UserID),
			slog.Any("error", err),
		)
	}
}
