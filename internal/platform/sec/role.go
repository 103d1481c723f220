// Copyright (c) 2026 Blenda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the platform-wide authorization level of an account.
//
// Team access is decided by membership rows, not by this role. The role only
// gates platform administration such as managing the brand catalog.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// AtLeast reports whether r meets or exceeds target.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
