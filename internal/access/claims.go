package access

import "time"

// Claims is the authenticated-principal snapshot carried inside a
// token. It is rebuilt from the presented token on every request and
// never outlives it.
type Claims struct {
	// Subject is the user ID the token was issued for.
	Subject string
	// Role is the principal's privilege level.
	Role Role
	// Permissions is the explicit capability set attached at issuance.
	// A nil set is not the same as an empty set: it means the token
	// carries no permissions at all and can never pass a permission
	// check, regardless of role.
	Permissions Set
	// ExpiresAt is the absolute expiry of the token.
	ExpiresAt time.Time
}

// HasAnyRole reports whether the claims' role is one of the allowed
// roles.
func (c Claims) HasAnyRole(allowed []Role) bool {
	for _, r := range allowed {
		if c.Role == r {
			return true
		}
	}
	return false
}

// PermissionsSatisfy reports whether the claims carry every required
// permission. Claims without a permission set always fail; callers must
// attach permissions at issuance for any token that will flow through a
// gated route.
func (c Claims) PermissionsSatisfy(required Set) bool {
	if c.Permissions == nil {
		return false
	}
	return c.Permissions.IsSupersetOf(required)
}
