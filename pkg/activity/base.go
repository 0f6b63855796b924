// Package activity provides common infrastructure for Temporal activity
// implementations: base types, workflow-context extraction, safe logging
// and best-effort event emission. Everything here also works outside a
// Temporal activity context, so the same activities can be driven by a
// plain in-process runner.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/enneabench/enneabench/pkg/events"
)

// WorkflowContext contains metadata extracted from the Temporal activity
// context, with generated fallbacks for non-workflow execution.
type WorkflowContext struct {
	WorkflowID string
	RunID      string
	ActivityID string
}

// BaseActivities provides common infrastructure shared by all activity
// types: event emission and context-safe logging.
type BaseActivities struct {
	eventSink events.EventSink
}

// NewBaseActivities creates a BaseActivities instance with the provided
// event sink. A nil sink disables event emission.
func NewBaseActivities(sink events.EventSink) BaseActivities {
	return BaseActivities{eventSink: sink}
}

// GetWorkflowContext safely extracts workflow metadata from the activity
// context. Outside a Temporal activity (direct runs, tests) it generates
// local identifiers instead of panicking.
func (b *BaseActivities) GetWorkflowContext(ctx context.Context) WorkflowContext {
	var wfCtx WorkflowContext

	func() {
		defer func() {
			if r := recover(); r != nil {
				wfCtx.WorkflowID = "local-" + uuid.New().String()[:8]
				wfCtx.RunID = wfCtx.WorkflowID
				wfCtx.ActivityID = "local-activity"
			}
		}()

		info := activity.GetInfo(ctx)
		wfCtx.WorkflowID = info.WorkflowExecution.ID
		wfCtx.RunID = info.WorkflowExecution.RunID
		wfCtx.ActivityID = info.ActivityID
	}()

	return wfCtx
}

// EmitEventSafe provides best-effort event emission with a short retry.
// Events serve observability; their failure must never fail the activity.
func (b *BaseActivities) EmitEventSafe(ctx context.Context, envelope events.Envelope, description string) {
	if b.eventSink == nil {
		return
	}

	const maxAttempts = 2
	const retryDelay = 200 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				SafeLogError(ctx, fmt.Sprintf("event emission cancelled: %s", description),
					"event_type", envelope.Type)
				return
			}
		}

		if err := b.eventSink.Append(ctx, envelope); err != nil {
			lastErr = err
			continue
		}

		SafeLog(ctx, fmt.Sprintf("event emitted: %s", description),
			"event_type", envelope.Type,
			"idempotency_key", envelope.IdempotencyKey)
		return
	}

	SafeLogError(ctx, fmt.Sprintf("failed to emit %s after %d attempts", description, maxAttempts),
		"event_type", envelope.Type,
		"error", lastErr)
}

// RecordHeartbeat safely records an activity heartbeat; ignored outside an
// activity context.
func (b *BaseActivities) RecordHeartbeat(ctx context.Context, details ...any) {
	RecordHeartbeat(ctx, details...)
}

// SafeLog logs at INFO through the activity logger when running inside an
// activity, and silently ignores the call otherwise.
func SafeLog(ctx context.Context, msg string, keyvals ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.GetLogger(ctx).Info(msg, keyvals...)
}

// SafeLogError logs at ERROR through the activity logger when running
// inside an activity, and silently ignores the call otherwise.
func SafeLogError(ctx context.Context, msg string, keyvals ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.GetLogger(ctx).Error(msg, keyvals...)
}

// RecordHeartbeat safely records an activity heartbeat with details.
// Long trials heartbeat once per item to signal progress.
func RecordHeartbeat(ctx context.Context, details ...any) {
	defer func() {
		if recover() != nil {
			// Not an activity context, ignore
		}
	}()
	activity.RecordHeartbeat(ctx, details...)
}
