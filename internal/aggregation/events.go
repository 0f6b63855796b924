package aggregation

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

// EventEmitter handles event emission for the aggregation domain.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates an EventEmitter with the provided base
// activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// sessionAggregatedPayload is the wire payload of a session.aggregated
// event.
type sessionAggregatedPayload struct {
	TestName string                        `json:"test_name"`
	Format   string                        `json:"format"`
	Trials   int                           `json:"trials"`
	Types    map[string]domain.Stat        `json:"types"`
	Centers  map[domain.Center]domain.Stat `json:"centers"`
}

// EmitSessionAggregated emits a session.aggregated event with the final
// statistics. Emission is best-effort.
func (e *EventEmitter) EmitSessionAggregated(
	ctx context.Context,
	report *domain.AggregateReport,
	wfCtx activity.WorkflowContext,
) {
	payload := sessionAggregatedPayload{
		TestName: report.TestName,
		Format:   report.Format.String(),
		Trials:   report.Trials,
		Types:    make(map[string]domain.Stat, len(report.Types)),
		Centers:  report.Centers,
	}
	for t, stat := range report.Types {
		payload.Types[fmt.Sprintf("%d", int(t))] = stat
	}

	data, err := json.Marshal(payload)
	if err != nil {
		activity.SafeLogError(ctx, "failed to marshal session.aggregated payload",
			"test", report.TestName, "error", err)
		return
	}

	envelope := events.Envelope{
		ID:             uuid.New().String(),
		Type:           events.TypeSessionAggregated,
		Source:         "aggregation-activity",
		Version:        "1.0.0",
		Timestamp:      time.Now(),
		IdempotencyKey: fmt.Sprintf("%s-%s-aggregate", wfCtx.WorkflowID, report.TestName),
		WorkflowID:     wfCtx.WorkflowID,
		RunID:          wfCtx.RunID,
		Payload:        data,
	}

	e.base.EmitEventSafe(ctx, envelope, fmt.Sprintf("SessionAggregated[%s]", report.TestName))
}
