// Package aggregation implements the Temporal activity that combines the
// finalized trials of one test into cross-run statistics: per-type and
// per-center means and population standard deviations.
package aggregation

import (
	"context"

	"go.temporal.io/sdk/temporal"

	"github.com/enneabench/enneabench/internal/domain"
	"github.com/enneabench/enneabench/pkg/activity"
)

// Activities handles aggregation-specific Temporal activities.
type Activities struct {
	activity.BaseActivities
	events *EventEmitter
}

// NewActivities creates aggregation activities with the provided base
// infrastructure.
func NewActivities(base activity.BaseActivities) *Activities {
	return &Activities{
		BaseActivities: base,
		events:         NewEventEmitter(base),
	}
}

// AggregateTrials combines finalized trial results into an aggregate
// report. The operation is pure statistics over already-complete data, so
// every failure here is a contract violation and non-retryable: either no
// trials were supplied or the inputs were inconsistent.
func (a *Activities) AggregateTrials(
	ctx context.Context,
	input domain.AggregateTrialsInput,
) (*domain.AggregateReport, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("AggregateTrials", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "aggregating trials",
		"workflow_id", wfCtx.WorkflowID,
		"trials", len(input.Trials))

	report, err := domain.Aggregate(input.Trials)
	if err != nil {
		return nil, nonRetryable("AggregateTrials", err, "aggregation failed")
	}

	activity.SafeLog(ctx, "aggregation completed",
		"test", report.TestName,
		"trials", report.Trials)

	a.events.EmitSessionAggregated(ctx, report, wfCtx)

	return report, nil
}

// nonRetryable wraps an error as a Temporal non-retryable application
// error.
func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
