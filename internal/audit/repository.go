package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for audit events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert appends one event.
func (r *Repository) Insert(ctx context.Context, actorID int64, action, detail string) error {
	const query = `
		INSERT INTO audit_events (actor_id, action, detail, created_at)
		VALUES ($1, $2, $3, now())`
	_, err := r.pool.Exec(ctx, query, actorID, action, detail)
	return err
}

// ListRecent returns the newest events, capped at limit.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	const query = `
		SELECT id, actor_id, action, detail, created_at
		FROM audit_events
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.ActorID, &ev.Action, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// DeleteOlderThan removes events created before the cutoff and returns
// the number of rows removed. Used by the retention job.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM audit_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
