// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// Techradar has a single designated administrator; every other account is a
// member. The role is derived from the account's admin flag when a token is issued.
type UserRole string

const (
	// The one account allowed to manage other users' content
	RoleAdmin UserRole = "admin"

	// Default role for standard registered users
	RoleMember UserRole = "member"
)

// RoleFor maps the persisted admin flag to a token role.
func RoleFor(admin bool) UserRole {
	if admin {
		return RoleAdmin
	}
	return RoleMember
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleMember:
		return 10
	default:
		return 0
	}
}
