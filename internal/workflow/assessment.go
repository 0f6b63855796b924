// Package workflow orchestrates questionnaire assessment sessions using
// Temporal workflows. The control flow is deterministic: administer each
// test N times sequentially, then aggregate each test's trials. Trials run
// sequentially because a single local model instance serves every call;
// the scoring core itself is indifferent to the execution order.
package workflow

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/enneabench/enneabench/internal/domain"
)

// Activity name constants keep workflow code decoupled from the activity
// struct implementations.
const (
	AdministerTrialActivity = "AdministerTrial"
	AggregateTrialsActivity = "AggregateTrials"
)

// Per-trial timeout: a full questionnaire against a cold local model can
// take many minutes.
const trialTimeout = 30 * time.Minute

// AssessmentWorkflow administers every requested test definition
// RunsPerTest times against the model and aggregates each test's trials
// into cross-run statistics. All workflow code uses workflow-safe APIs
// only; the nondeterministic work (backend calls) lives in activities.
func AssessmentWorkflow(
	ctx workflow.Context,
	req domain.AssessmentRequest,
) (*domain.AssessmentResult, error) {
	// Version gate enables safe evolution of the session shape.
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "assessment.v", workflow.DefaultVersion, currentVersion)

	if err := req.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid assessment request",
			"Validation",
			err,
		)
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: trialTimeout,
		HeartbeatTimeout:    5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	logger := workflow.GetLogger(ctx)
	result := &domain.AssessmentResult{Model: req.Model}

	for _, def := range req.Definitions {
		outcome := domain.TestOutcome{}

		for run := 1; run <= req.RunsPerTest; run++ {
			logger.Info("administering trial",
				"test", def.Name, "run", run, "of", req.RunsPerTest)

			var trial domain.TrialResult
			err := workflow.ExecuteActivity(ctx, AdministerTrialActivity, domain.AdministerTrialInput{
				Definition: def,
				Model:      req.Model,
				RunIndex:   run,
			}).Get(ctx, &trial)
			if err != nil {
				return nil, err
			}
			outcome.Trials = append(outcome.Trials, &trial)
		}

		var report domain.AggregateReport
		err := workflow.ExecuteActivity(ctx, AggregateTrialsActivity, domain.AggregateTrialsInput{
			Trials: outcome.Trials,
		}).Get(ctx, &report)
		if err != nil {
			return nil, err
		}
		outcome.Aggregate = &report

		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}
