// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import "context"

// Repository is the persistence contract for the brand catalog.
type Repository interface {
	// ListBrands returns brands ordered by name. An empty teamID lists the
	// whole catalog; otherwise shared brands plus that team's own.
	ListBrands(ctx context.Context, teamID string) ([]*Brand, error)

	// FindBySlug resolves an exact, canonical slug across the whole catalog.
	FindBySlug(ctx context.Context, slug string) (*Brand, error)

	Create(ctx context.Context, brand *Brand) error
}
