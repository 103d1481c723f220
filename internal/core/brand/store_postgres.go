// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/blenda/internal/platform/database/schema"
	"github.com/taibuivan/blenda/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on studio.brand.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectBrand = fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s`,
	schema.StudioBrand.ID,
	schema.StudioBrand.Name,
	schema.StudioBrand.Slug,
	schema.StudioBrand.TeamID,
	schema.StudioBrand.CreatedAt,
	schema.StudioBrand.Table,
)

func scanBrand(row pgx.Row) (*Brand, error) {
	b := &Brand{}
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.TeamID, &b.CreatedAt)
	return b, err
}

// ListBrands implements [Repository].
func (repository *PostgresRepository) ListBrands(ctx context.Context, teamID string) ([]*Brand, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(selectBrand)
	if teamID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE %s IS NULL OR %s = $1",
			schema.StudioBrand.TeamID, schema.StudioBrand.TeamID))
		args = append(args, teamID)
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC, %s ASC", schema.StudioBrand.Name, schema.StudioBrand.Slug))

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Brand", "list_brands")
	}
	defer rows.Close()

	brands := make([]*Brand, 0)
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Brand", "scan_brand")
		}
		brands = append(brands, b)
	}

	return brands, dberr.Wrap(rows.Err(), "Brand", "iterate_brands")
}

// FindBySlug implements [Repository].
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Brand, error) {
	query := fmt.Sprintf("%s WHERE %s = $1", selectBrand, schema.StudioBrand.Slug)

	b, err := scanBrand(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "Brand", "find_brand_by_slug")
	}
	return b, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(ctx context.Context, brand *Brand) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`,
		schema.StudioBrand.Table,
		schema.StudioBrand.ID,
		schema.StudioBrand.Name,
		schema.StudioBrand.Slug,
		schema.StudioBrand.TeamID,
		schema.StudioBrand.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query, brand.ID, brand.Name, brand.Slug, brand.TeamID).Scan(&brand.CreatedAt)
	return dberr.Wrap(err, "Brand", "create_brand")
}
