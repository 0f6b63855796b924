// Package session drives complete assessment sessions without a Temporal
// service: the same trial and aggregation activities run in-process, one
// after another. This is the path behind the one-shot CLI command; the
// durable workflow in internal/workflow covers long-lived deployments.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/enneabench/enneabench/internal/aggregation"
	"github.com/enneabench/enneabench/internal/domain"
	"github.com/enneabench/enneabench/internal/llm"
	"github.com/enneabench/enneabench/internal/trial"
	"github.com/enneabench/enneabench/pkg/activity"
	"github.com/enneabench/enneabench/pkg/events"
)

// Runner executes assessment sessions directly. The activity structs
// tolerate running outside a Temporal activity context, so the exact same
// code path is exercised here and under the workflow.
type Runner struct {
	trial       *trial.Activities
	aggregation *aggregation.Activities
	logger      *slog.Logger
}

// NewRunner wires the activities over the given backend client and event
// sink. A nil logger falls back to slog's default.
func NewRunner(client llm.Client, sink events.EventSink, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	base := activity.NewBaseActivities(sink)
	return &Runner{
		trial:       trial.NewActivities(base, client),
		aggregation: aggregation.NewActivities(base),
		logger:      logger,
	}
}

// Run administers every requested definition RunsPerTest times and
// aggregates each definition's trials. Trials run sequentially; a single
// local model instance serves every call. The first failed trial aborts
// the session.
func (r *Runner) Run(ctx context.Context, req domain.AssessmentRequest) (*domain.AssessmentResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &domain.AssessmentResult{Model: req.Model}

	for _, def := range req.Definitions {
		outcome := domain.TestOutcome{}

		for run := 1; run <= req.RunsPerTest; run++ {
			r.logger.Info("administering trial",
				"test", def.Name,
				"run", run,
				"of", req.RunsPerTest)

			trialResult, err := r.trial.AdministerTrial(ctx, domain.AdministerTrialInput{
				Definition: def,
				Model:      req.Model,
				RunIndex:   run,
			})
			if err != nil {
				return nil, fmt.Errorf("trial %d of %q: %w", run, def.Name, err)
			}
			outcome.Trials = append(outcome.Trials, trialResult)
		}

		report, err := r.aggregation.AggregateTrials(ctx, domain.AggregateTrialsInput{
			Trials: outcome.Trials,
		})
		if err != nil {
			return nil, fmt.Errorf("aggregate %q: %w", def.Name, err)
		}
		outcome.Aggregate = report

		r.logger.Info("test aggregated",
			"test", def.Name,
			"trials", report.Trials)

		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}
