// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/taibuivan/blenda/internal/core/locale"
	"github.com/taibuivan/blenda/internal/platform/constants"
	"github.com/taibuivan/blenda/internal/platform/ctxutil"
	"github.com/taibuivan/blenda/pkg/pointer"
	"github.com/taibuivan/blenda/pkg/slice"
)

// # Status

// Status is the production state shown on a template card.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

/*
StatusOf derives the card status from a template's localisations.

Precedence:
  - no locales: draft
  - any locale with a non-empty last render URL: completed
  - otherwise: in-progress
*/
func StatusOf(locales []Locale) Status {
	if len(locales) == 0 {
		return StatusDraft
	}
	for _, l := range locales {
		if l.LastRenderURL != nil && *l.LastRenderURL != "" {
			return StatusCompleted
		}
	}
	return StatusInProgress
}

// # Duration

// UnknownDuration is shown when a template has no usable duration.
const UnknownDuration = "--:--"

// FormatDuration renders milliseconds as M:SS, or H:MM:SS from one hour up.
// Sub-second remainders are floored. Nil, zero and negative values render
// [UnknownDuration].
func FormatDuration(durationMS *int64) string {
	ms := pointer.Val(durationMS)
	if ms <= 0 {
		return UnknownDuration
	}

	total := ms / int64(time.Second/time.Millisecond)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// # Card

// ThumbnailResolver turns a stored thumbnail reference into a URL a browser can fetch.
type ThumbnailResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Card is the dashboard projection of a [Template].
type Card struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Status       Status         `json:"status"`
	Duration     string         `json:"duration"`
	ThumbnailURL string         `json:"thumbnail_url"`
	CreatedAt    time.Time      `json:"created_at"`
	IsShared     bool           `json:"is_shared"`
	BrandID      *string        `json:"brand_id"`
	Locales      []locale.Badge `json:"locales"`
	EditPath     string         `json:"edit_path"`
}

// Presenter builds cards for one viewer inside one team.
type Presenter struct {
	teamSlug string
	viewerID string
	thumbs   ThumbnailResolver
}

// NewPresenter constructs a [Presenter]. thumbs may be nil, in which case
// stored references are used as they are.
func NewPresenter(teamSlug, viewerID string, thumbs ThumbnailResolver) *Presenter {
	return &Presenter{teamSlug: teamSlug, viewerID: viewerID, thumbs: thumbs}
}

// Present renders one card.
func (p *Presenter) Present(ctx context.Context, t *Template) Card {
	badges := make([]locale.Badge, 0, len(t.Locales))
	for _, l := range t.Locales {
		badges = append(badges, locale.BadgeFor(l.Locale))
	}

	return Card{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       StatusOf(t.Locales),
		Duration:     FormatDuration(t.DurationMS),
		ThumbnailURL: p.thumbnail(ctx, t.ThumbnailURL),
		CreatedAt:    t.CreatedAt,
		IsShared:     t.CreatorUserID != p.viewerID,
		BrandID:      t.BrandID,
		Locales:      badges,
		EditPath:     EditPath(p.teamSlug, t),
	}
}

// PresentAll renders cards in input order.
func (p *Presenter) PresentAll(ctx context.Context, templates []*Template) []Card {
	cards := slice.Map(templates, func(t *Template) Card { return p.Present(ctx, t) })
	if cards == nil {
		return []Card{}
	}
	return cards
}

// thumbnail falls back to the placeholder whenever the reference is missing
// or cannot be resolved. A failed resolution is logged, never returned.
func (p *Presenter) thumbnail(ctx context.Context, ref *string) string {
	if ref == nil || *ref == "" {
		return constants.TemplatePlaceholder
	}
	if p.thumbs == nil {
		return *ref
	}

	resolved, err := p.thumbs.Resolve(ctx, *ref)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "thumbnail_resolve_failed",
			slog.String("ref", *ref),
			slog.Any("error", err),
		)
		return constants.TemplatePlaceholder
	}
	if resolved == "" {
		return constants.TemplatePlaceholder
	}
	return resolved
}

// EditPath is the editor link of a template, opened on its first locale.
func EditPath(teamSlug string, t *Template) string {
	code := DefaultEditLocale
	if len(t.Locales) > 0 {
		code = t.Locales[0].Locale
	}
	return fmt.Sprintf("/%s/templates/%s/%s/edit",
		url.PathEscape(teamSlug), url.PathEscape(t.ID), url.PathEscape(code))
}
