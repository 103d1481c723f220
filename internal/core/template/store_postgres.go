// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/blenda/internal/platform/apperr"
	"github.com/taibuivan/blenda/internal/platform/database/schema"
	"github.com/taibuivan/blenda/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on studio.template.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectTemplate reads template rows aliased as "t" with their locales
// aggregated into one JSON array per row.
var selectTemplate = fmt.Sprintf(`
	SELECT
		t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', l.%s,
				'locale', l.%s,
				'last_render_url', l.%s,
				'thumbnail_url', l.%s,
				'created_at', l.%s,
				'updated_at', l.%s
			) ORDER BY l.%s ASC, l.%s ASC)
			FROM %s l
			WHERE l.%s = t.%s
		), '[]') AS locales
	FROM %s t
	WHERE `,
	schema.StudioTemplate.ID,
	schema.StudioTemplate.TeamID,
	schema.StudioTemplate.BrandID,
	schema.StudioTemplate.CreatorUserID,
	schema.StudioTemplate.Title,
	schema.StudioTemplate.Description,
	schema.StudioTemplate.DurationMS,
	schema.StudioTemplate.ThumbnailURL,
	schema.StudioTemplate.CreatedAt,
	schema.StudioTemplate.UpdatedAt,
	schema.StudioTemplateLocale.ID,
	schema.StudioTemplateLocale.Locale,
	schema.StudioTemplateLocale.LastRenderURL,
	schema.StudioTemplateLocale.ThumbnailURL,
	schema.StudioTemplateLocale.CreatedAt,
	schema.StudioTemplateLocale.UpdatedAt,
	schema.StudioTemplateLocale.CreatedAt,
	schema.StudioTemplateLocale.Locale,
	schema.StudioTemplateLocale.Table,
	schema.StudioTemplateLocale.TemplateID,
	schema.StudioTemplate.ID,
	schema.StudioTemplate.Table,
)

func scanTemplate(row pgx.Row) (*Template, error) {
	t := &Template{}
	var locales []byte

	err := row.Scan(
		&t.ID, &t.TeamID, &t.BrandID, &t.CreatorUserID, &t.Title, &t.Description,
		&t.DurationMS, &t.ThumbnailURL, &t.CreatedAt, &t.UpdatedAt,
		&locales,
	)
	if err != nil {
		return nil, err
	}

	t.Locales = make([]Locale, 0)
	if len(locales) > 0 {
		if err := json.Unmarshal(locales, &t.Locales); err != nil {
			return nil, fmt.Errorf("decode locales of template %s: %w", t.ID, err)
		}
	}
	return t, nil
}

/*
List implements [Repository].

A [BrandNoMatch] query returns an empty slice without a round trip.
*/
func (repository *PostgresRepository) List(ctx context.Context, query Query) ([]*Template, error) {
	if query.IsEmpty() {
		return []*Template{}, nil
	}

	where, args := query.Where("t")
	sql := selectTemplate + where + fmt.Sprintf(" ORDER BY t.%s DESC, t.%s DESC",
		schema.StudioTemplate.CreatedAt, schema.StudioTemplate.ID)

	rows, err := repository.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Template", "list_templates")
	}
	defer rows.Close()

	templates := make([]*Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Template", "scan_template")
		}
		templates = append(templates, t)
	}

	return templates, dberr.Wrap(rows.Err(), "Template", "iterate_templates")
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, teamID, id string) (*Template, error) {
	if teamID == "" {
		return nil, apperr.Internal(ErrMissingTeam)
	}

	sql := selectTemplate + fmt.Sprintf("t.%s = $1 AND t.%s = $2",
		schema.StudioTemplate.TeamID, schema.StudioTemplate.ID)

	t, err := scanTemplate(repository.pool.QueryRow(ctx, sql, teamID, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Template", "find_template")
	}
	return t, nil
}

// UpdateThumbnail implements [Repository]. The team predicate keeps a member
// from touching templates of other teams.
func (repository *PostgresRepository) UpdateThumbnail(ctx context.Context, teamID, id, ref string) error {
	if teamID == "" {
		return apperr.Internal(ErrMissingTeam)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = now() WHERE %s = $1 AND %s = $2`,
		schema.StudioTemplate.Table,
		schema.StudioTemplate.ThumbnailURL,
		schema.StudioTemplate.UpdatedAt,
		schema.StudioTemplate.TeamID,
		schema.StudioTemplate.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, teamID, id, ref)
	if err != nil {
		return dberr.Wrap(err, "Template", "update_thumbnail")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Template")
	}
	return nil
}
