package tasks

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive/internal/platform/httpx"
)

// RepositoryPort defines data access methods for tasks.
type RepositoryPort interface {
	CreateTask(ctx context.Context, ownerID int64, title, description string) (Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Task, error)
	ListAll(ctx context.Context) ([]Task, error)
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const taskColumns = `id, title, description, status, owner_id, created_at, updated_at`

// CreateTask inserts a new open task.
func (r *Repository) CreateTask(ctx context.Context, ownerID int64, title, description string) (Task, error) {
	const query = `
		INSERT INTO tasks (title, description, status, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING ` + taskColumns
	row := r.pool.QueryRow(ctx, query, title, description, string(StatusOpen), ownerID)
	return scanTask(row)
}

// GetTask fetches a task by ID.
func (r *Repository) GetTask(ctx context.Context, id int64) (Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, httpx.ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

// ListByOwner returns the tasks owned by one user, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryTasks(ctx, query, ownerID)
}

// ListAll returns every task, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, id DESC`
	return r.queryTasks(ctx, query)
}

// UpdateTask patches a task. Nil fields are unchanged.
func (r *Repository) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error) {
	const query = `
		UPDATE tasks
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    status = COALESCE($4, status),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + taskColumns
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	row := r.pool.QueryRow(ctx, query, id, patch.Title, patch.Description, status)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, httpx.ErrNotFound
		}
		return Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task by ID.
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *Repository) queryTasks(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var (
		t         Task
		statusRaw string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &statusRaw, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Task{}, err
	}
	status, err := ParseStatus(statusRaw)
	if err != nil {
		return Task{}, err
	}
	t.Status = status
	return t, nil
}
