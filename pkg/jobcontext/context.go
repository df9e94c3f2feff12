package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	keyRunID        contextKey = "run_id"
	keyTranscriptID contextKey = "transcript_id"
	keyStartTime    contextKey = "run_start_time"
)

// Begin derives a detached context for one background pipeline run.
// The returned context deliberately carries no deadline: stage durations
// are unbounded model calls and the run's terminal status is always
// written, so a timeout would only truncate work without a consumer.
func Begin(transcriptID uuid.UUID) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, keyRunID, uuid.New())
	ctx = context.WithValue(ctx, keyTranscriptID, transcriptID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// RunID returns the unique id of this run, or uuid.Nil outside a run.
func RunID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(keyRunID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// TranscriptID returns the transcript owned by this run, or uuid.Nil.
func TranscriptID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(keyTranscriptID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// Elapsed returns the time since the run began, or zero outside a run.
func Elapsed(ctx context.Context) time.Duration {
	if start, ok := ctx.Value(keyStartTime).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}

// Fields returns zap fields identifying this run for structured logs.
func Fields(ctx context.Context) []zap.Field {
	return []zap.Field{
		zap.String("run_id", RunID(ctx).String()),
		zap.String("transcript_id", TranscriptID(ctx).String()),
	}
}
