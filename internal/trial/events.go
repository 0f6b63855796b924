package trial

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/enneabench/enneabench/internal/domain"
	"github.com/enneabench/enneabench/pkg/activity"
	"github.com/enneabench/enneabench/pkg/events"
)

// EventEmitter handles event emission for the trial domain.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates an EventEmitter with the provided base
// activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// trialCompletedPayload is the wire payload of a trial.completed event.
// The transcript is deliberately excluded; raw model output stays on the
// trial result only.
type trialCompletedPayload struct {
	TestName string                `json:"test_name"`
	Format   string                `json:"format"`
	RunIndex int                   `json:"run_index"`
	Core     int                   `json:"core"`
	Wing     int                   `json:"wing"`
	Tritype  [3]int                `json:"tritype"`
	Scores   map[string]int        `json:"scores"`
	Centers  map[domain.Center]int `json:"centers"`
}

// EmitTrialCompleted emits a trial.completed event for downstream
// projections. Emission is best-effort; failures are logged without
// affecting the activity.
func (e *EventEmitter) EmitTrialCompleted(
	ctx context.Context,
	result *domain.TrialResult,
	wfCtx activity.WorkflowContext,
) {
	payload := trialCompletedPayload{
		TestName: result.TestName,
		Format:   result.Format.String(),
		RunIndex: result.RunIndex,
		Core:     int(result.Profile.Core),
		Wing:     int(result.Profile.Wing),
		Scores:   make(map[string]int, len(result.Scores)),
		Centers:  result.Centers,
	}
	for i, t := range result.Profile.Tritype {
		payload.Tritype[i] = int(t)
	}
	for t, score := range result.Scores {
		payload.Scores[fmt.Sprintf("%d", int(t))] = score
	}

	data, err := json.Marshal(payload)
	if err != nil {
		activity.SafeLogError(ctx, "failed to marshal trial.completed payload",
			"test", result.TestName, "error", err)
		return
	}

	envelope := events.Envelope{
		ID:             uuid.New().String(),
		Type:           events.TypeTrialCompleted,
		Source:         "trial-activity",
		Version:        "1.0.0",
		Timestamp:      time.Now(),
		IdempotencyKey: fmt.Sprintf("%s-%s-run%d", wfCtx.WorkflowID, result.TestName, result.RunIndex),
		WorkflowID:     wfCtx.WorkflowID,
		RunID:          wfCtx.RunID,
		Payload:        data,
	}

	e.base.EmitEventSafe(ctx, envelope,
		fmt.Sprintf("TrialCompleted[%s run %d]", result.TestName, result.RunIndex))
}
