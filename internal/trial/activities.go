// Package trial implements the Temporal activity that administers one
// complete questionnaire trial: every item is prompted against the
// backend, the raw responses are collected as a batch, and the batch is
// scored into an immutable TrialResult. Each invocation builds its own
// accumulator state, so concurrent trials never share anything.
package trial

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/temporal"

	"github.com/enneabench/enneabench/internal/domain"
	"github.com/enneabench/enneabench/internal/llm"
	"github.com/enneabench/enneabench/pkg/activity"
)

// Activities handles trial-administration Temporal activities.
type Activities struct {
	activity.BaseActivities
	client llm.Client
	events *EventEmitter
}

// NewActivities creates trial activities with the provided dependencies.
// The base activities provide common infrastructure for logging and event
// emission; the client obtains raw answers from the backend.
func NewActivities(base activity.BaseActivities, client llm.Client) *Activities {
	return &Activities{
		BaseActivities: base,
		client:         client,
		events:         NewEventEmitter(base),
	}
}

// AdministerTrial runs one full administration of a test definition. Items
// are asked in definition order, one backend call per item, with a
// heartbeat after each answer. The raw responses are then scored as a
// batch; ambiguous responses resolve to the documented defaults inside the
// scoring core and never fail the trial.
//
// Backend failures are classified: transient ones surface as retryable
// application errors so the workflow retry policy can reattempt the whole
// trial, everything else is non-retryable.
func (a *Activities) AdministerTrial(
	ctx context.Context,
	input domain.AdministerTrialInput,
) (*domain.TrialResult, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("AdministerTrial", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	items := input.Definition.Items
	activity.SafeLog(ctx, "starting trial",
		"workflow_id", wfCtx.WorkflowID,
		"test", input.Definition.Name,
		"run_index", input.RunIndex,
		"items", len(items))

	rawAnswers := make([]string, 0, len(items))
	for i, item := range items {
		resp, err := a.client.Complete(ctx, &llm.Request{
			Model:  input.Model,
			Prompt: item.Prompt(),
		})
		if err != nil {
			if llm.IsRetryable(err) {
				return nil, retryable("AdministerTrial", err,
					fmt.Sprintf("backend failed on item %d", item.ID))
			}
			return nil, nonRetryable("AdministerTrial", err,
				fmt.Sprintf("backend rejected item %d", item.ID))
		}
		rawAnswers = append(rawAnswers, resp.Content)

		a.RecordHeartbeat(ctx, fmt.Sprintf("item %d/%d", i+1, len(items)))
	}

	result, err := domain.ScoreTrial(input.Definition, rawAnswers, input.RunIndex)
	if err != nil {
		return nil, nonRetryable("AdministerTrial", err, "scoring failed")
	}

	activity.SafeLog(ctx, "trial completed",
		"test", result.TestName,
		"run_index", result.RunIndex,
		"core", result.Profile.Core.String(),
		"wing", result.Profile.Wing.String())

	a.events.EmitTrialCompleted(ctx, result, wfCtx)

	return result, nil
}

// Error helpers - wrap errors as Temporal application errors.

func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}

func retryable(tag string, cause error, msg string) error {
	return temporal.NewApplicationError(msg, tag, cause)
}
