package access

import "errors"

// ErrPermissionDenied signals a failed role or permission check. The
// boundary renders it as a generic 401 without saying which of the two
// checks failed.
var ErrPermissionDenied = errors.New("access: permission denied")

// Gate decides whether a set of claims may enter a role-gated route.
// It is stateless; every check is evaluated fresh and has no side
// effects.
type Gate struct{}

// NewGate constructs a Gate.
func NewGate() Gate { return Gate{} }

// Check allows the claims through only when both conditions hold: the
// claims' role is among the allowed roles, and the claims carry every
// permission granted to the lowest allowed role. The second check is
// independent of the first; a token whose permission set was never
// populated is denied even when its role qualifies.
func (Gate) Check(claims Claims, allowed []Role) error {
	if !claims.HasAnyRole(allowed) {
		return ErrPermissionDenied
	}
	if !claims.PermissionsSatisfy(PermissionsFor(lowestRole(allowed))) {
		return ErrPermissionDenied
	}
	return nil
}

// RequireAtLeast checks the claims against every role at or above the
// given level.
func (g Gate) RequireAtLeast(claims Claims, level Role) error {
	return g.Check(claims, rolesAtLeast(level))
}

// RequireAtLeastUser admits any authenticated role.
func (g Gate) RequireAtLeastUser(claims Claims) error {
	return g.RequireAtLeast(claims, RoleUser)
}

// RequireAtLeastAuthor admits authors, admins and super admins.
func (g Gate) RequireAtLeastAuthor(claims Claims) error {
	return g.RequireAtLeast(claims, RoleAuthor)
}

// RequireAtLeastAdmin admits admins and super admins.
func (g Gate) RequireAtLeastAdmin(claims Claims) error {
	return g.RequireAtLeast(claims, RoleAdmin)
}

// RequireAtLeastSuperAdmin admits super admins only.
func (g Gate) RequireAtLeastSuperAdmin(claims Claims) error {
	return g.RequireAtLeast(claims, RoleSuperAdmin)
}

func rolesAtLeast(level Role) []Role {
	roles := make([]Role, 0, len(Roles()))
	for _, r := range Roles() {
		if r.AtLeast(level) {
			roles = append(roles, r)
		}
	}
	return roles
}

func lowestRole(roles []Role) Role {
	lowest := RoleSuperAdmin
	for _, r := range roles {
		if r < lowest {
			lowest = r
		}
	}
	return lowest
}
