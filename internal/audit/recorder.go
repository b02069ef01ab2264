package audit

import (
	"context"
	"log/slog"
)

// Sink is where recorded events land.
type Sink interface {
	Insert(ctx context.Context, actorID int64, action, detail string) error
}

// Recorder writes events without ever failing the calling request: a
// broken audit store is logged, not propagated.
type Recorder struct {
	sink   Sink
	logger *slog.Logger
}

// NewRecorder constructs a Recorder.
func NewRecorder(sink Sink, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{sink: sink, logger: logger}
}

// Record appends one event.
func (r *Recorder) Record(ctx context.Context, actorID int64, action, detail string) {
	if r == nil || r.sink == nil {
		return
	}
	if err := r.sink.Insert(ctx, actorID, action, detail); err != nil {
		r.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}
