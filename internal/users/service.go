package users

import (
	"context"
	"fmt"
	"strconv"

	"github.com/taskhive/taskhive/internal/access"
	"github.com/taskhive/taskhive/internal/audit"
	"github.com/taskhive/taskhive/internal/platform/httpx"
)

// Auditor records security events. Satisfied by *audit.Recorder.
type Auditor interface {
	Record(ctx context.Context, actorID int64, action, detail string)
}

// Service handles user management business logic.
type Service struct {
	repo    RepositoryPort
	auditor Auditor
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, auditor Auditor) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser returns one user by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// UpdateUser patches profile fields.
func (s *Service) UpdateUser(ctx context.Context, id int64, username, email *string) (User, error) {
	return s.repo.UpdateUser(ctx, id, username, email)
}

// DeleteUser removes an account.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// ChangeRole applies a role change to the target user on behalf of the
// acting principal. Ordering is load-bearing: the self-promotion guard
// runs before the target is even loaded, and an explicit new role is
// reserved to super admins while promote/demote directions go through
// the ladder transition gated by the actor's own role.
func (s *Service) ChangeRole(ctx context.Context, actor access.Claims, req RoleChangeRequest) (User, error) {
	actorID, err := strconv.ParseInt(actor.Subject, 10, 64)
	if err != nil {
		return User{}, fmt.Errorf("%w: bad subject", httpx.ErrUnauthorized)
	}
	if actorID == req.TargetID {
		return User{}, ErrSelfPromotion
	}

	target, err := s.repo.GetUser(ctx, req.TargetID)
	if err != nil {
		return User{}, err
	}

	newRole := target.Role
	switch {
	case req.NewRole != nil:
		if actor.Role != access.RoleSuperAdmin {
			return User{}, httpx.ErrUnauthorized
		}
		newRole = *req.NewRole
	case req.Change != access.RoleChangeNone:
		newRole = access.ApplyRoleChange(req.Change, actor.Role, target.Role)
	}

	if newRole == target.Role {
		return target, nil
	}

	updated, err := s.repo.UpdateRole(ctx, req.TargetID, newRole)
	if err != nil {
		return User{}, err
	}
	s.auditor.Record(ctx, actorID, audit.ActionRoleChange,
		fmt.Sprintf("user %d: %s -> %s", req.TargetID, target.Role, newRole))
	return updated, nil
}
