// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package template serves the team dashboard: the brand-filtered template list
and the per-locale template detail.

# Pipeline

A dashboard request flows through three pure stages around one database read:

 1. [brand.Decode] turns "?brand=" into a [brand.Selection].
 2. [BuildQuery] turns the trusted team ID and the selection into a [Query].
 3. The store lists matching templates and [Presenter] renders them as cards.

The team predicate is part of every [Query], so no filter can widen a list
beyond the team resolved from the URL.
*/
package template

import "time"

// # Domain Entities

// Template is a video template owned by a team.
type Template struct {
	ID            string    `json:"id"`
	TeamID        string    `json:"team_id"`
	BrandID       *string   `json:"brand_id,omitempty"`
	CreatorUserID string    `json:"creator_user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DurationMS    *int64    `json:"duration_ms,omitempty"`
	ThumbnailURL  *string   `json:"thumbnail_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Locales       []Locale  `json:"locales"`
}

// Locale is one localisation of a template.
// A non-empty LastRenderURL means the locale has been rendered at least once.
type Locale struct {
	ID            string    `json:"id"`
	Locale        string    `json:"locale"`
	LastRenderURL *string   `json:"last_render_url"`
	ThumbnailURL  *string   `json:"thumbnail_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FindLocale returns the template's localisation for code, compared
// case-insensitively, or nil.
func (t *Template) FindLocale(code string) *Locale {
	for i := range t.Locales {
		if equalFoldTrim(t.Locales[i].Locale, code) {
			return &t.Locales[i]
		}
	}
	return nil
}

// # Field Identifiers

const (
	ParamTeamSlug   = "teamSlug"
	ParamTemplateID = "templateID"
	ParamLocale     = "locale"

	// QueryTitle is the optional case-insensitive title search parameter.
	QueryTitle = "q"
)

// DefaultEditLocale is used for the edit link of a template without locales.
const DefaultEditLocale = "en"

// DefaultThumbnail is the web app asset written when a thumbnail is removed.
const DefaultThumbnail = "/default-thumbnail.svg"

const (
	FieldThumbnailURL  = "thumbnail_url"
	maxThumbnailLength = 2048
)

// Messages surfaced to clients by the thumbnail endpoints.
const (
	MsgInvalidThumbnail  = "Must be an http(s) URL, an asset path or a key in the thumbnail bucket"
	MsgThumbnailDisabled = "Thumbnail storage is not configured"
)

// ThumbnailInput is the payload of a thumbnail update.
type ThumbnailInput struct {
	ThumbnailURL string `json:"thumbnail_url"`
}
