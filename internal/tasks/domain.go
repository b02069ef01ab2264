package tasks

import (
	"errors"
	"fmt"
	"time"
)

// ErrStatusUnknown indicates a task status outside the fixed vocabulary.
var ErrStatusUnknown = errors.New("tasks: unknown status")

// Status is the lifecycle state of a task.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrStatusUnknown, s)
}

// Task is a tracked unit of work owned by a user.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries optional updates; nil fields are unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
}
