// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taibuivan/blenda/internal/core/brand"
	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/database/schema"
)

// # Brand Constraint

// BrandConstraint is the brand predicate of a [Query].
type BrandConstraint uint8

const (
	// BrandAny applies no brand predicate.
	BrandAny BrandConstraint = iota
	// BrandUnassigned keeps templates whose brand is NULL.
	BrandUnassigned
	// BrandEquals keeps templates of [Query.BrandID].
	BrandEquals
	// BrandNoMatch matches nothing. It is what an unknown slug resolves to.
	BrandNoMatch
)

// BrandResolver resolves a brand slug across the catalog.
type BrandResolver interface {
	FindBySlug(ctx context.Context, slug string) (*brand.Brand, error)
}

// ErrMissingTeam guards the team predicate; it signals a programming error.
var ErrMissingTeam = errors.New("template: query built without a team")

/*
Query is the full predicate of a template list.

Invariants:
  - TeamID is never empty, and its clause is always the first one rendered.
  - BrandID is set only for [BrandEquals].
*/
type Query struct {
	TeamID  string
	Brand   BrandConstraint
	BrandID string

	// Title is an optional case-insensitive substring of the title.
	Title string
}

/*
BuildQuery turns a trusted team ID and a decoded brand selection into a [Query].

Description: teamID must come from the server-side membership check, never
from client input. A specific slug is resolved through resolver; when no
brand has that slug the query matches nothing, so a stale or mistyped link
shows an empty list instead of every template of the team.

Parameters:
  - ctx: context.Context
  - resolver: BrandResolver (only consulted for specific selections)
  - teamID: string
  - selection: brand.Selection

Returns:
  - Query: ready to execute
  - error: ErrMissingTeam, or a non-NOT_FOUND resolver failure
*/
func BuildQuery(ctx context.Context, resolver BrandResolver, teamID string, selection brand.Selection) (Query, error) {
	if strings.TrimSpace(teamID) == "" {
		return Query{}, apperr.Internal(ErrMissingTeam)
	}

	query := Query{TeamID: teamID}

	switch selection.Kind() {
	case brand.KindUnassigned:
		query.Brand = BrandUnassigned

	case brand.KindSpecific:
		resolved, err := resolver.FindBySlug(ctx, selection.Slug())
		switch {
		case apperr.IsNotFound(err):
			query.Brand = BrandNoMatch
		case err != nil:
			return Query{}, err
		default:
			query.Brand = BrandEquals
			query.BrandID = resolved.ID
		}

	default:
		query.Brand = BrandAny
	}

	return query, nil
}

// WithTitle returns a copy of q filtered by a title substring.
func (q Query) WithTitle(title string) Query {
	q.Title = strings.TrimSpace(title)
	return q
}

// IsEmpty reports whether q can be answered without touching storage.
func (q Query) IsEmpty() bool {
	return q.Brand == BrandNoMatch
}

/*
Where renders the SQL predicate for the template table aliased as alias.

The team clause is always first and bound to $1. Clauses are joined with
AND. [BrandNoMatch] renders a literal FALSE.
*/
func (q Query) Where(alias string) (string, []any) {
	column := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}

	clauses := []string{fmt.Sprintf("%s = $1", column(schema.StudioTemplate.TeamID))}
	args := []any{q.TeamID}

	switch q.Brand {
	case BrandUnassigned:
		clauses = append(clauses, fmt.Sprintf("%s IS NULL", column(schema.StudioTemplate.BrandID)))
	case BrandEquals:
		args = append(args, q.BrandID)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column(schema.StudioTemplate.BrandID), len(args)))
	case BrandNoMatch:
		clauses = append(clauses, "FALSE")
	}

	if q.Title != "" {
		args = append(args, "%"+escapeLike(q.Title)+"%")
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", column(schema.StudioTemplate.Title), len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

// Matches evaluates q against a template in memory, with the same meaning as [Query.Where].
func (q Query) Matches(t *Template) bool {
	if t == nil || t.TeamID != q.TeamID {
		return false
	}

	switch q.Brand {
	case BrandUnassigned:
		if t.BrandID != nil {
			return false
		}
	case BrandEquals:
		if t.BrandID == nil || *t.BrandID != q.BrandID {
			return false
		}
	case BrandNoMatch:
		return false
	}

	if q.Title != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(q.Title)) {
		return false
	}
	return true
}

// escapeLike escapes the ILIKE metacharacters of a user-supplied term.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
