package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// defaultAuditRetentionHours covers 90 days when a payload leaves the
// window unset.
const defaultAuditRetentionHours = 2160

// AuditStore is the slice of the audit repository the retention job needs.
type AuditStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditRetentionJob trims audit events older than the retention window.
type AuditRetentionJob struct {
	Store  AuditStore
	Logger *slog.Logger
	clock  func() time.Time
}

// NewAuditRetentionJob initialises the retention handler.
func NewAuditRetentionJob(store AuditStore, logger *slog.Logger) *AuditRetentionJob {
	return &AuditRetentionJob{
		Store:  store,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the retention sweep.
func (j *AuditRetentionJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Store == nil {
		return errors.New("audit retention: handler not configured")
	}
	var payload AuditRetentionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.RetentionHours <= 0 {
		payload.RetentionHours = defaultAuditRetentionHours
	}

	start := j.now()
	cutoff := start.Add(-time.Duration(payload.RetentionHours) * time.Hour)
	logger := j.logger().With(slog.Int("retention_hours", payload.RetentionHours))
	logger.Info("starting audit retention sweep")

	removed, err := j.Store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("retention sweep failed", slog.Any("error", err))
		return err
	}

	logger.Info("completed audit retention sweep",
		slog.Int64("removed", removed),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *AuditRetentionJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskAuditRetention))
	}
	return slog.Default().With(slog.String("job", TaskAuditRetention))
}

func (j *AuditRetentionJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
