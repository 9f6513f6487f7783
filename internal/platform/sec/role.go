// Copyright (c) 2026 Ratebase. All rights reserved.
// Author: dev@ratebase.dev

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can manage community content and moderate reviews/comments
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Roles lists every assignable role value, in descending privilege order.
func Roles() []string {
	return []string{string(RoleAdmin), string(RoleModerator), string(RoleUser)}
}

// Valid reports whether r is one of the known role values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// # Derived Flags

// AuthClaims carries the authenticated identity through the request lifecycle.
// It is embedded in JWTs so permission predicates never need a DB round trip.
type AuthClaims struct {
	UserID      int64
	Username    string
	Role        UserRole
	IsSuperuser bool
}

// IsAdmin reports whether the user has administrative privileges.
// Superusers are admins regardless of their stored role.
func (c *AuthClaims) IsAdmin() bool {
	return c.IsSuperuser || c.Role == RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func (c *AuthClaims) IsModerator() bool {
	return c.Role == RoleModerator
}
