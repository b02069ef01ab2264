package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// SessionStore is the slice of the auth repository the purge job needs.
type SessionStore interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// SessionPurgeJob deletes auth sessions past their expiry. The Redis
// copies of refresh tokens expire on their own; this keeps the
// PostgreSQL session table from growing without bound.
type SessionPurgeJob struct {
	Store  SessionStore
	Logger *slog.Logger
}

// NewSessionPurgeJob initialises the purge handler.
func NewSessionPurgeJob(store SessionStore, logger *slog.Logger) *SessionPurgeJob {
	return &SessionPurgeJob{Store: store, Logger: logger}
}

// Handle executes the purge.
func (j *SessionPurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Store == nil {
		return errors.New("session purge: handler not configured")
	}
	start := time.Now()
	logger := j.logger()
	logger.Info("starting session purge")

	removed, err := j.Store.DeleteExpiredSessions(ctx)
	if err != nil {
		logger.Error("session purge failed", slog.Any("error", err))
		return err
	}

	logger.Info("completed session purge",
		slog.Int64("removed", removed),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *SessionPurgeJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskSessionPurge))
	}
	return slog.Default().With(slog.String("job", TaskSessionPurge))
}
