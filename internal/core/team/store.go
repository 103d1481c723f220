// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package team

import "context"

// Repository is the persistence contract for teams and memberships.
type Repository interface {
	FindBySlug(ctx context.Context, slug string) (*Team, error)
	FindMember(ctx context.Context, teamID, userID string) (*Member, error)

	// ListForUser returns the user's teams, oldest membership first.
	ListForUser(ctx context.Context, userID string) ([]*Team, error)

	Create(ctx context.Context, team *Team) error
	AddMember(ctx context.Context, member *Member) error
}
