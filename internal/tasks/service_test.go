package tasks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/access"
	"github.com/taskhive/taskhive/internal/platform/httpx"
	"github.com/taskhive/taskhive/internal/tasks"
	_ "github.com/taskhive/taskhive/testing"
)

type stubRepo struct {
	tasks  map[int64]tasks.Task
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{tasks: make(map[int64]tasks.Task), nextID: 1}
}

func (s *stubRepo) CreateTask(ctx context.Context, ownerID int64, title, description string) (tasks.Task, error) {
	task := tasks.Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		Status:      tasks.StatusOpen,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.nextID++
	s.tasks[task.ID] = task
	return task, nil
}

func (s *stubRepo) GetTask(ctx context.Context, id int64) (tasks.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return tasks.Task{}, httpx.ErrNotFound
	}
	return task, nil
}

func (s *stubRepo) ListByOwner(ctx context.Context, ownerID int64) ([]tasks.Task, error) {
	var out []tasks.Task
	for _, task := range s.tasks {
		if task.OwnerID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *stubRepo) ListAll(ctx context.Context) ([]tasks.Task, error) {
	out := make([]tasks.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, task)
	}
	return out, nil
}

func (s *stubRepo) UpdateTask(ctx context.Context, id int64, patch tasks.TaskPatch) (tasks.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return tasks.Task{}, httpx.ErrNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	s.tasks[id] = task
	return task, nil
}

func (s *stubRepo) DeleteTask(ctx context.Context, id int64) error {
	if _, ok := s.tasks[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func claimsFor(subject string, role access.Role) access.Claims {
	return access.Claims{Subject: subject, Role: role, Permissions: access.PermissionsFor(role)}
}

func TestCreateAssignsOwner(t *testing.T) {
	svc := tasks.NewService(newStubRepo())
	task, err := svc.Create(context.Background(), claimsFor("5", access.RoleUser), "write tests", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), task.OwnerID)
	assert.Equal(t, tasks.StatusOpen, task.Status)
}

func TestCreatePublishRequiresAuthor(t *testing.T) {
	svc := tasks.NewService(newStubRepo())
	target := int64(9)

	_, err := svc.Create(context.Background(), claimsFor("5", access.RoleUser), "assigned", "", &target)
	assert.ErrorIs(t, err, httpx.ErrUnauthorized)

	task, err := svc.Create(context.Background(), claimsFor("5", access.RoleAuthor), "assigned", "", &target)
	require.NoError(t, err)
	assert.Equal(t, target, task.OwnerID)

	// An explicit owner matching the caller is not a publish.
	self := int64(5)
	task, err = svc.Create(context.Background(), claimsFor("5", access.RoleUser), "mine", "", &self)
	require.NoError(t, err)
	assert.Equal(t, self, task.OwnerID)
}

func TestListOwnFiltersByOwner(t *testing.T) {
	repo := newStubRepo()
	svc := tasks.NewService(repo)
	_, err := svc.Create(context.Background(), claimsFor("1", access.RoleUser), "mine", "", nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), claimsFor("2", access.RoleUser), "theirs", "", nil)
	require.NoError(t, err)

	own, err := svc.ListOwn(context.Background(), claimsFor("1", access.RoleUser))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "mine", own[0].Title)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// Foreign tasks surface as not-found for plain users, so existing task
// IDs cannot be distinguished from unused ones.
func TestGetHidesForeignTasks(t *testing.T) {
	repo := newStubRepo()
	svc := tasks.NewService(repo)
	created, err := svc.Create(context.Background(), claimsFor("2", access.RoleUser), "theirs", "", nil)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), claimsFor("1", access.RoleUser), created.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	_, err = svc.Get(context.Background(), claimsFor("1", access.RoleAuthor), created.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	// Admins and super admins see everything.
	got, err := svc.Get(context.Background(), claimsFor("1", access.RoleAdmin), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	got, err = svc.Get(context.Background(), claimsFor("1", access.RoleSuperAdmin), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateOwnership(t *testing.T) {
	repo := newStubRepo()
	svc := tasks.NewService(repo)
	created, err := svc.Create(context.Background(), claimsFor("2", access.RoleUser), "theirs", "", nil)
	require.NoError(t, err)

	title := "renamed"
	_, err = svc.Update(context.Background(), claimsFor("1", access.RoleUser), created.ID, tasks.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	status := tasks.StatusDone
	updated, err := svc.Update(context.Background(), claimsFor("2", access.RoleUser), created.ID, tasks.TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, tasks.StatusDone, updated.Status)
}

func TestDeleteOwnership(t *testing.T) {
	repo := newStubRepo()
	svc := tasks.NewService(repo)
	created, err := svc.Create(context.Background(), claimsFor("2", access.RoleUser), "theirs", "", nil)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), claimsFor("1", access.RoleUser), created.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), claimsFor("1", access.RoleAdmin), created.ID))
	err = svc.Delete(context.Background(), claimsFor("2", access.RoleUser), created.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"open", "in_progress", "done"} {
		status, err := tasks.ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, tasks.Status(raw), status)
	}
	_, err := tasks.ParseStatus("cancelled")
	assert.ErrorIs(t, err, tasks.ErrStatusUnknown)
}
