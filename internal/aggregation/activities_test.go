package aggregation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/enneabench/enneabench/internal/domain"
	"github.com/enneabench/enneabench/pkg/activity"
	"github.com/enneabench/enneabench/pkg/events"
)

type capturingSink struct {
	mu        sync.Mutex
	envelopes []events.Envelope
}

func (s *capturingSink) Append(_ context.Context, envelope events.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopes = append(s.envelopes, envelope)
	return nil
}

func makeTrial(runIndex int, scores map[domain.Type]int) *domain.TrialResult {
	full := domain.NewTypeScores()
	for t, v := range scores {
		full[t] = v
	}
	return &domain.TrialResult{
		RunIndex: runIndex,
		TestName: "Paired Fixture",
		Format:   domain.FormatForcedChoice,
		Scores:   full,
		Centers:  domain.CenterTotals(full),
		Profile:  domain.DeriveProfile(full),
	}
}

func TestAggregateTrials(t *testing.T) {
	t.Run("combines trials and emits event", func(t *testing.T) {
		sink := &capturingSink{}
		activities := NewActivities(activity.NewBaseActivities(sink))

		input := domain.AggregateTrialsInput{Trials: []*domain.TrialResult{
			makeTrial(1, map[domain.Type]int{domain.Type4: 6, domain.Type9: 3}),
			makeTrial(2, map[domain.Type]int{domain.Type4: 8, domain.Type9: 1}),
		}}

		report, err := activities.AggregateTrials(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Trials)
		assert.InDelta(t, 7.0, report.Types[domain.Type4].Mean, 1e-12)
		assert.InDelta(t, 1.0, report.Types[domain.Type4].Sigma, 1e-12)
		assert.InDelta(t, 2.0, report.Types[domain.Type9].Mean, 1e-12)

		require.Len(t, sink.envelopes, 1)
		assert.Equal(t, events.TypeSessionAggregated, sink.envelopes[0].Type)
		assert.Equal(t, "aggregation-activity", sink.envelopes[0].Source)
		assert.Contains(t, sink.envelopes[0].IdempotencyKey, "Paired Fixture")
	})

	t.Run("empty input is a non-retryable contract violation", func(t *testing.T) {
		activities := NewActivities(activity.BaseActivities{})

		report, err := activities.AggregateTrials(context.Background(), domain.AggregateTrialsInput{})
		require.Error(t, err)
		assert.Nil(t, report)

		var appErr *temporal.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "AggregateTrials", appErr.Type())
		assert.True(t, appErr.NonRetryable())
		assert.ErrorIs(t, err, domain.ErrInsufficientData)
	})
}
