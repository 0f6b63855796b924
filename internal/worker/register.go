// Package worker exposes helpers to register workflows/activities with a Temporal worker.
package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/enneabench/enneabench/internal/aggregation"
	"github.com/enneabench/enneabench/internal/llm"
	"github.com/enneabench/enneabench/internal/trial"
	"github.com/enneabench/enneabench/internal/workflow"
	"github.com/enneabench/enneabench/pkg/activity"
	"github.com/enneabench/enneabench/pkg/events"
)

// RegisterAll registers all workflows and activities with the Temporal worker.
// It must be called once during worker initialization, before the worker is
// started; registration is not thread-safe.
//
// Domain activity instances share a single BaseActivities so that event
// emission and logging behave uniformly across the session.
func RegisterAll(w sdkworker.Worker, llmClient llm.Client) {
	eventSink := events.NewNoOpEventSink()

	base := activity.NewBaseActivities(eventSink)

	trialActivities := trial.NewActivities(base, llmClient)
	aggregationActivities := aggregation.NewActivities(base)

	w.RegisterWorkflow(workflow.AssessmentWorkflow)

	w.RegisterActivity(trialActivities.AdministerTrial)
	w.RegisterActivity(aggregationActivities.AggregateTrials)
}
