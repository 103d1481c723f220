// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package team resolves dashboard tenants and checks membership.

Every team-scoped request goes through [Service.Authorize]: the team is
looked up by the slug in the URL and the caller must hold a membership row.
There is no finer-grained policy; the member role is informational.
*/
package team

import "time"

// Team is a dashboard tenant.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Role is the member's role inside one team.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleMember Role = "member"
)

// Member is one membership row.
type Member struct {
	TeamID   string    `json:"team_id"`
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Membership is the outcome of a successful [Service.Authorize].
type Membership struct {
	Team   *Team
	Member *Member
}

// CreateInput is the payload accepted by [Service.Create].
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Error messages surfaced to clients.
const (
	MsgAccessDenied = "Access denied: You are not a member of this team"
)

const (
	FieldName   = "name"
	FieldSlug   = "slug"
	FieldUserID = "user_id"
	FieldRole   = "role"
)
