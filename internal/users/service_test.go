package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/access"
	"github.com/taskhive/taskhive/internal/platform/httpx"
	"github.com/taskhive/taskhive/internal/users"
	_ "github.com/taskhive/taskhive/testing"
)

type stubRepo struct {
	users map[int64]users.User
}

func newStubRepo(accounts ...users.User) *stubRepo {
	m := make(map[int64]users.User, len(accounts))
	for _, u := range accounts {
		m[u.ID] = u
	}
	return &stubRepo{users: m}
}

func (s *stubRepo) ListUsers(ctx context.Context) ([]users.User, error) {
	out := make([]users.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubRepo) GetUser(ctx context.Context, id int64) (users.User, error) {
	u, ok := s.users[id]
	if !ok {
		return users.User{}, httpx.ErrNotFound
	}
	return u, nil
}

func (s *stubRepo) UpdateUser(ctx context.Context, id int64, username, email *string) (users.User, error) {
	u, ok := s.users[id]
	if !ok {
		return users.User{}, httpx.ErrNotFound
	}
	if username != nil {
		u.Username = *username
	}
	if email != nil {
		u.Email = *email
	}
	s.users[id] = u
	return u, nil
}

func (s *stubRepo) UpdateRole(ctx context.Context, id int64, role access.Role) (users.User, error) {
	u, ok := s.users[id]
	if !ok {
		return users.User{}, httpx.ErrNotFound
	}
	u.Role = role
	s.users[id] = u
	return u, nil
}

func (s *stubRepo) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type stubAuditor struct {
	details []string
}

func (a *stubAuditor) Record(ctx context.Context, actorID int64, action, detail string) {
	a.details = append(a.details, detail)
}

func account(id int64, role access.Role) users.User {
	return users.User{
		ID:        id,
		Username:  "user",
		Email:     "user@test.local",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func actorClaims(id string, role access.Role) access.Claims {
	return access.Claims{Subject: id, Role: role, Permissions: access.PermissionsFor(role)}
}

func TestChangeRoleRejectsSelf(t *testing.T) {
	repo := newStubRepo(account(1, access.RoleSuperAdmin))
	svc := users.NewService(repo, &stubAuditor{})

	role := access.RoleUser
	_, err := svc.ChangeRole(context.Background(), actorClaims("1", access.RoleSuperAdmin), users.RoleChangeRequest{
		TargetID: 1,
		NewRole:  &role,
	})
	require.ErrorIs(t, err, users.ErrSelfPromotion)
	assert.Equal(t, "Can't self promote!!!", err.Error())
}

// The self guard fires before the target lookup, so targeting yourself
// with an ID that is also missing still reports self promotion.
func TestChangeRoleSelfGuardBeforeLookup(t *testing.T) {
	svc := users.NewService(newStubRepo(), &stubAuditor{})
	_, err := svc.ChangeRole(context.Background(), actorClaims("9", access.RoleSuperAdmin), users.RoleChangeRequest{
		TargetID: 9,
		Change:   access.RoleChangePromote,
	})
	assert.ErrorIs(t, err, users.ErrSelfPromotion)
}

func TestChangeRoleExplicitRequiresSuperAdmin(t *testing.T) {
	repo := newStubRepo(account(2, access.RoleUser))
	svc := users.NewService(repo, &stubAuditor{})

	role := access.RoleAdmin
	_, err := svc.ChangeRole(context.Background(), actorClaims("1", access.RoleAdmin), users.RoleChangeRequest{
		TargetID: 2,
		NewRole:  &role,
	})
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)

	updated, err := svc.ChangeRole(context.Background(), actorClaims("1", access.RoleSuperAdmin), users.RoleChangeRequest{
		TargetID: 2,
		NewRole:  &role,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleAdmin, updated.Role)
}

func TestChangeRolePromoteLadder(t *testing.T) {
	repo := newStubRepo(account(2, access.RoleUser))
	auditor := &stubAuditor{}
	svc := users.NewService(repo, auditor)

	updated, err := svc.ChangeRole(context.Background(), actorClaims("1", access.RoleAdmin), users.RoleChangeRequest{
		TargetID: 2,
		Change:   access.RoleChangePromote,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleAuthor, updated.Role)
	require.Len(t, auditor.details, 1)
	assert.Equal(t, "user 2: user -> author", auditor.details[0])

	// An admin cannot promote past author; the request is a no-op.
	updated, err = svc.ChangeRole(context.Background(), actorClaims("1", access.RoleAdmin), users.RoleChangeRequest{
		TargetID: 2,
		Change:   access.RoleChangePromote,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleAuthor, updated.Role)
	assert.Len(t, auditor.details, 1)

	// A super admin can continue up the ladder.
	updated, err = svc.ChangeRole(context.Background(), actorClaims("1", access.RoleSuperAdmin), users.RoleChangeRequest{
		TargetID: 2,
		Change:   access.RoleChangePromote,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleAdmin, updated.Role)
}

func TestChangeRoleDemote(t *testing.T) {
	repo := newStubRepo(account(2, access.RoleAdmin))
	svc := users.NewService(repo, &stubAuditor{})

	updated, err := svc.ChangeRole(context.Background(), actorClaims("1", access.RoleAdmin), users.RoleChangeRequest{
		TargetID: 2,
		Change:   access.RoleChangeDemote,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleAuthor, updated.Role)

	updated, err = svc.ChangeRole(context.Background(), actorClaims("1", access.RoleAdmin), users.RoleChangeRequest{
		TargetID: 2,
		Change:   access.RoleChangeDemote,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, updated.Role)

	// The floor of the ladder.
	updated, err = svc.ChangeRole(context.Background(), actorClaims("1", access.RoleSuperAdmin), users.RoleChangeRequest{
		TargetID: 2,
		Change:   access.RoleChangeDemote,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, updated.Role)
}

func TestChangeRoleUnknownTarget(t *testing.T) {
	svc := users.NewService(newStubRepo(), &stubAuditor{})
	_, err := svc.ChangeRole(context.Background(), actorClaims("1", access.RoleSuperAdmin), users.RoleChangeRequest{
		TargetID: 42,
		Change:   access.RoleChangePromote,
	})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestChangeRoleNoOpSkipsAudit(t *testing.T) {
	repo := newStubRepo(account(2, access.RoleAuthor))
	auditor := &stubAuditor{}
	svc := users.NewService(repo, auditor)

	updated, err := svc.ChangeRole(context.Background(), actorClaims("1", access.RoleSuperAdmin), users.RoleChangeRequest{
		TargetID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, access.RoleAuthor, updated.Role)
	assert.Empty(t, auditor.details)
}
