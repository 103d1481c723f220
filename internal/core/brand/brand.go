// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package brand owns the brand catalog and the brand filter carried in
dashboard URLs.

A brand groups templates for one customer identity. Brands either belong to
one team or, with no team, are shared by all of them. Slug lookups are
global because slugs are unique across the whole catalog.

# Components

  - [Brand]: the catalog entry.
  - [Selection]: the filter state decoded from and encoded into "?brand=".
  - [Service]: catalog reads and admin writes, optionally behind [CachedRepository].
*/
package brand

import "time"

// # Domain Entity

// Brand is one entry of the brand catalog.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	TeamID    *string   `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsShared reports whether every team may filter by this brand.
func (b *Brand) IsShared() bool {
	return b.TeamID == nil
}

// # Inputs

// CreateInput is the payload accepted by [Service.Create].
type CreateInput struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	TeamID string `json:"team_id"`
}

// # Field Identifiers

const (
	FieldName   = "name"
	FieldSlug   = "slug"
	FieldTeamID = "team_id"
)

const maxNameLength = 120
