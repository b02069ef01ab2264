package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/access"
	_ "github.com/taskhive/taskhive/testing"
)

func TestPermissionWireForm(t *testing.T) {
	p := access.Read("user-tasks")
	assert.Equal(t, "read:user-tasks", p.String())

	parsed, err := access.ParsePermission("read:user-tasks")
	require.NoError(t, err)
	assert.Equal(t, p, parsed)

	parsed, err = access.ParsePermission("delete:admin-tasks")
	require.NoError(t, err)
	assert.Equal(t, access.Delete("admin-tasks"), parsed)
}

func TestParsePermissionRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "read", "read:", ":user-tasks", "own:user-tasks"} {
		_, err := access.ParsePermission(raw)
		assert.ErrorIs(t, err, access.ErrPermissionFormat, "input %q", raw)
	}
}

func TestSetOperations(t *testing.T) {
	a := access.NewSet(access.Read("user-tasks"), access.Read("author-tasks"))
	b := access.NewSet(access.Read("user-tasks"))

	assert.True(t, a.Contains(access.Read("author-tasks")))
	assert.False(t, b.Contains(access.Read("author-tasks")))

	assert.True(t, a.IsSupersetOf(b))
	assert.False(t, b.IsSupersetOf(a))
	assert.True(t, b.IsSupersetOf(access.NewSet()))

	union := b.Union(access.NewSet(access.Write("user-tasks")))
	assert.True(t, union.Contains(access.Read("user-tasks")))
	assert.True(t, union.Contains(access.Write("user-tasks")))
	assert.Len(t, union, 2)
}

func TestSetStringsSorted(t *testing.T) {
	s := access.NewSet(
		access.Read("user-tasks"),
		access.Read("admin-tasks"),
		access.Read("author-tasks"),
	)
	assert.Equal(t, []string{"read:admin-tasks", "read:author-tasks", "read:user-tasks"}, s.Strings())
}

func TestParseSetRejectsBadEntry(t *testing.T) {
	s, err := access.ParseSet([]string{"read:user-tasks", "write:author-tasks"})
	require.NoError(t, err)
	assert.Len(t, s, 2)

	_, err = access.ParseSet([]string{"read:user-tasks", "bogus"})
	assert.ErrorIs(t, err, access.ErrPermissionFormat)
}
