// Package jobs contains the Asynq worker, the housekeeping job
// handlers, and the task constructors shared with the API process.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionPurge removes expired auth sessions.
	TaskSessionPurge = "auth:session_purge"
	// TaskAuditRetention trims old audit events.
	TaskAuditRetention = "audit:retention"
)

// SessionPurgePayload configures a session purge run. Empty today;
// kept as a struct so the payload can grow without a task rename.
type SessionPurgePayload struct{}

// NewSessionPurgeTask constructs an Asynq task.
func NewSessionPurgeTask() (*asynq.Task, error) {
	data, err := json.Marshal(SessionPurgePayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionPurge, data), nil
}

// AuditRetentionPayload configures a retention run.
type AuditRetentionPayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewAuditRetentionTask constructs an Asynq task.
func NewAuditRetentionTask(payload AuditRetentionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditRetention, data), nil
}
