// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package template

import "context"

// Repository reads templates together with their localisations and updates
// their thumbnail reference.
type Repository interface {
	// List returns every template matching query, newest first.
	List(ctx context.Context, query Query) ([]*Template, error)

	// FindByID returns one template of teamID, or NotFound.
	FindByID(ctx context.Context, teamID, id string) (*Template, error)

	// UpdateThumbnail stores ref on one template of teamID, or returns NotFound.
	UpdateThumbnail(ctx context.Context, teamID, id, ref string) error
}
