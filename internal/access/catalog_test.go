package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive/internal/access"
	_ "github.com/taskhive/taskhive/testing"
)

func TestPermissionsForLadder(t *testing.T) {
	cases := []struct {
		role access.Role
		want []string
	}{
		{access.RoleUser, []string{"read:user-tasks"}},
		{access.RoleAuthor, []string{"read:author-tasks", "read:user-tasks"}},
		{access.RoleAdmin, []string{"read:admin-tasks", "read:author-tasks", "read:user-tasks"}},
		{access.RoleSuperAdmin, []string{"read:admin-tasks", "read:author-tasks", "read:superadmin-tasks", "read:user-tasks"}},
	}
	for _, tc := range cases {
		got := access.PermissionsFor(tc.role)
		assert.Equal(t, tc.want, got.Strings(), "role %s", tc.role)
	}
}

// Each role's grant must contain every grant below it, so a single
// superset check against the lowest allowed role suffices at the gate.
func TestPermissionsForMonotonic(t *testing.T) {
	roles := access.Roles()
	for i := 1; i < len(roles); i++ {
		higher := access.PermissionsFor(roles[i])
		lower := access.PermissionsFor(roles[i-1])
		assert.True(t, higher.IsSupersetOf(lower), "%s should cover %s", roles[i], roles[i-1])
		assert.False(t, lower.IsSupersetOf(higher), "%s should not cover %s", roles[i-1], roles[i])
	}
}

func TestSuperAdminScopeHasNoUnderscore(t *testing.T) {
	set := access.PermissionsFor(access.RoleSuperAdmin)
	assert.True(t, set.Contains(access.Read("superadmin-tasks")))
	assert.False(t, set.Contains(access.Read("super_admin-tasks")))
}
