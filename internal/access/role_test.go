package access_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/access"
	_ "github.com/taskhive/taskhive/testing"
)

func TestRoleStringRoundTrip(t *testing.T) {
	for _, role := range access.Roles() {
		parsed, err := access.ParseRole(role.String())
		require.NoError(t, err, "role %s", role)
		assert.Equal(t, role, parsed)
	}
}

func TestRoleWireForms(t *testing.T) {
	assert.Equal(t, "user", access.RoleUser.String())
	assert.Equal(t, "author", access.RoleAuthor.String())
	assert.Equal(t, "admin", access.RoleAdmin.String())
	assert.Equal(t, "super_admin", access.RoleSuperAdmin.String())
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "superadmin", "SuperAdmin", "root", "Admin", "user "} {
		_, err := access.ParseRole(raw)
		assert.ErrorIs(t, err, access.ErrRoleUnknown, "input %q", raw)
	}
}

func TestRoleOrdering(t *testing.T) {
	assert.True(t, access.RoleSuperAdmin.AtLeast(access.RoleAdmin))
	assert.True(t, access.RoleAdmin.AtLeast(access.RoleAdmin))
	assert.False(t, access.RoleAuthor.AtLeast(access.RoleAdmin))
	assert.False(t, access.RoleUser.AtLeast(access.RoleAuthor))
}

func TestRoleJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(access.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, `"super_admin"`, string(data))

	var role access.Role
	require.NoError(t, json.Unmarshal([]byte(`"author"`), &role))
	assert.Equal(t, access.RoleAuthor, role)

	err = json.Unmarshal([]byte(`"wizard"`), &role)
	assert.ErrorIs(t, err, access.ErrRoleUnknown)
}

func TestParseRoleChange(t *testing.T) {
	change, err := access.ParseRoleChange("")
	require.NoError(t, err)
	assert.Equal(t, access.RoleChangeNone, change)

	change, err = access.ParseRoleChange("promote")
	require.NoError(t, err)
	assert.Equal(t, access.RoleChangePromote, change)

	change, err = access.ParseRoleChange("demote")
	require.NoError(t, err)
	assert.Equal(t, access.RoleChangeDemote, change)

	_, err = access.ParseRoleChange("sideways")
	assert.ErrorIs(t, err, access.ErrRoleChangeUnknown)
}
