// Package access implements the role, permission and token model that
// guards every authenticated route.
package access

import (
	"errors"
	"fmt"
)

// ErrRoleUnknown indicates a role string outside the fixed vocabulary.
// Unknown roles are never coerced to a default; a tampered or garbled
// role must fail loudly at the parse boundary.
var ErrRoleUnknown = errors.New("access: unknown role")

// Role is a privilege level. Roles are totally ordered:
// RoleUser < RoleAuthor < RoleAdmin < RoleSuperAdmin.
type Role int

const (
	RoleUser Role = iota
	RoleAuthor
	RoleAdmin
	RoleSuperAdmin
)

// Roles lists every role from lowest to highest privilege.
func Roles() []Role {
	return []Role{RoleUser, RoleAuthor, RoleAdmin, RoleSuperAdmin}
}

// String returns the wire/storage form of the role.
func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super_admin"
	case RoleAdmin:
		return "admin"
	case RoleAuthor:
		return "author"
	case RoleUser:
		return "user"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole converts a stored or transmitted role string back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "super_admin":
		return RoleSuperAdmin, nil
	case "admin":
		return RoleAdmin, nil
	case "author":
		return RoleAuthor, nil
	case "user":
		return RoleUser, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrRoleUnknown, s)
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r >= other
}

// MarshalText implements encoding.TextMarshaler so roles serialize to
// their fixed snake_case strings in JSON payloads and tokens.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with strict parsing.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// scopeTag returns the task scope tag tied to the role. The super_admin
// tag intentionally has no underscore.
func (r Role) scopeTag() string {
	if r == RoleSuperAdmin {
		return "superadmin-tasks"
	}
	return r.String() + "-tasks"
}
