package tasks

import (
	"context"
	"strconv"

	"github.com/taskhive/taskhive/internal/access"
	"github.com/taskhive/taskhive/internal/platform/httpx"
)

// Service handles task business logic. Ownership checks live here so
// every transport shares them: a user touches only their own tasks,
// admins and super admins may touch any.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create opens a new task. Without an explicit owner the task belongs
// to the calling principal; assigning it to someone else is a publish
// and needs at least the author role.
func (s *Service) Create(ctx context.Context, actor access.Claims, title, description string, ownerID *int64) (Task, error) {
	actorID, err := subjectID(actor)
	if err != nil {
		return Task{}, err
	}
	owner := actorID
	if ownerID != nil && *ownerID != actorID {
		if !actor.Role.AtLeast(access.RoleAuthor) {
			return Task{}, httpx.ErrUnauthorized
		}
		owner = *ownerID
	}
	return s.repo.CreateTask(ctx, owner, title, description)
}

// ListOwn returns the actor's tasks.
func (s *Service) ListOwn(ctx context.Context, actor access.Claims) ([]Task, error) {
	ownerID, err := subjectID(actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// ListAll returns every task. The handler gates this behind the admin
// role; the service does not re-check.
func (s *Service) ListAll(ctx context.Context) ([]Task, error) {
	return s.repo.ListAll(ctx)
}

// Get fetches one task if the actor may see it.
func (s *Service) Get(ctx context.Context, actor access.Claims, id int64) (Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err := s.authorize(actor, task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Update patches one task if the actor may touch it.
func (s *Service) Update(ctx context.Context, actor access.Claims, id int64, patch TaskPatch) (Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err := s.authorize(actor, task); err != nil {
		return Task{}, err
	}
	return s.repo.UpdateTask(ctx, id, patch)
}

// Delete removes one task if the actor may touch it.
func (s *Service) Delete(ctx context.Context, actor access.Claims, id int64) error {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, task); err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, id)
}

// authorize hides other users' tasks as not-found rather than
// forbidden, so task IDs cannot be probed.
func (s *Service) authorize(actor access.Claims, task Task) error {
	if actor.Role.AtLeast(access.RoleAdmin) {
		return nil
	}
	ownerID, err := subjectID(actor)
	if err != nil {
		return err
	}
	if task.OwnerID != ownerID {
		return httpx.ErrNotFound
	}
	return nil
}

func subjectID(actor access.Claims) (int64, error) {
	id, err := strconv.ParseInt(actor.Subject, 10, 64)
	if err != nil {
		return 0, httpx.ErrUnauthorized
	}
	return id, nil
}
