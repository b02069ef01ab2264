package access

import (
	"errors"
	"fmt"
)

// ErrRoleChangeUnknown indicates a direction string outside the fixed
// promote/demote vocabulary.
var ErrRoleChangeUnknown = errors.New("access: unknown role change")

// RoleChange is the requested direction of a role transition.
type RoleChange int

const (
	RoleChangeNone RoleChange = iota
	RoleChangePromote
	RoleChangeDemote
)

// ParseRoleChange converts the wire form of a direction. The empty
// string maps to RoleChangeNone.
func ParseRoleChange(s string) (RoleChange, error) {
	switch s {
	case "":
		return RoleChangeNone, nil
	case "promote":
		return RoleChangePromote, nil
	case "demote":
		return RoleChangeDemote, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrRoleChangeUnknown, s)
}

// ApplyRoleChange computes the target's new role after a promotion or
// demotion requested by a principal with actingRole. Transitions are
// single steps on the User < Author < Admin < SuperAdmin ladder:
//
//   - a super admin moves the target one step in either direction,
//     clamped at the ladder ends;
//   - an admin may only promote User to Author and demote Admin to
//     Author or Author to User;
//   - every other acting role, and RoleChangeNone, leaves the target
//     unchanged.
//
// The self-promotion guard is the caller's responsibility: this
// function never sees principal identities, only roles.
func ApplyRoleChange(change RoleChange, actingRole, currentTargetRole Role) Role {
	switch change {
	case RoleChangePromote:
		switch actingRole {
		case RoleSuperAdmin:
			if currentTargetRole == RoleSuperAdmin {
				return currentTargetRole
			}
			return currentTargetRole + 1
		case RoleAdmin:
			if currentTargetRole == RoleUser {
				return RoleAuthor
			}
		}
	case RoleChangeDemote:
		switch actingRole {
		case RoleSuperAdmin:
			if currentTargetRole == RoleUser {
				return currentTargetRole
			}
			return currentTargetRole - 1
		case RoleAdmin:
			if currentTargetRole == RoleAdmin || currentTargetRole == RoleAuthor {
				return currentTargetRole - 1
			}
		}
	}
	return currentTargetRole
}
