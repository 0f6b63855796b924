package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enneabench/enneabench/internal/domain"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"mistral", "mistral"},
		{"Mistral 7B v0.2", "mistral-7b-v0-2"},
		{"  spaced  out  ", "spaced-out"},
		{"llama3:8b-instruct", "llama3-8b-instruct"},
		{"___", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 3, 7, 0, time.UTC)
	assert.Equal(t, "assessment_mistral-7b_2026-08-30.md", Filename("Mistral 7B", at))
}

func trialWithScores(run int, name string, format domain.Format, scores domain.TypeScores) *domain.TrialResult {
	return &domain.TrialResult{
		RunIndex: run,
		TestName: name,
		Format:   format,
		Scores:   scores,
		Centers:  domain.CenterTotals(scores),
		Profile:  domain.DeriveProfile(scores),
	}
}

func TestRender(t *testing.T) {
	scoresA := domain.NewTypeScores()
	scoresA[domain.Type6] = 10
	scoresA[domain.Type5] = 4
	scoresA[domain.Type3] = 6
	scoresA[domain.Type9] = 8

	scoresB := scoresA.Clone()
	scoresB[domain.Type6] = 12

	trials := []*domain.TrialResult{
		trialWithScores(1, "Likert Assessment", domain.FormatLikert, scoresA),
		trialWithScores(2, "Likert Assessment", domain.FormatLikert, scoresB),
	}
	agg, err := domain.Aggregate(trials)
	require.NoError(t, err)

	result := &domain.AssessmentResult{
		Model: "mistral",
		Outcomes: []domain.TestOutcome{
			{Trials: trials, Aggregate: agg},
		},
	}

	at := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	md := Render(result, at)

	assert.Contains(t, md, "# Enneagram Multi-Run Report (Model: mistral)")
	assert.Contains(t, md, "- **Date:** 2026-08-30")
	assert.Contains(t, md, "- **Runs per test:** 2")
	assert.Contains(t, md, "## 1. Likert Assessment – Multi-Run Summary")

	// Run lines carry the derived profile and the head/heart/gut totals.
	assert.Contains(t, md, "- **Run 1** → Core: Type 6, Wing: 5,")
	assert.Contains(t, md, "Centers: Head=14, Heart=6, Gut=8")

	// Type 6 totals are 10 and 12: mean 11, population sigma 1.
	assert.Contains(t, md, "| 6 | 11.00 | 1.00 |")
	// Types with no score still get a row.
	assert.Contains(t, md, "| 1 | 0.00 | 0.00 |")

	assert.Contains(t, md, "| Head | 15.00 | 1.00 |")
	assert.Contains(t, md, "| Gut | 8.00 | 0.00 |")

	// Likert reports carry no selection-count section.
	assert.NotContains(t, md, "Combined Type Selection Counts")
}

func TestRenderForcedChoiceCounts(t *testing.T) {
	def := &domain.TestDefinition{
		Name:   "Paired Assessment",
		Format: domain.FormatForcedChoice,
		Items: []domain.QuestionItem{
			{
				ID:     1,
				Format: domain.FormatForcedChoice,
				OptionA: domain.Option{Text: "I keep feelings close.", Target: domain.Type4, Column: "D"},
				OptionB: domain.Option{Text: "I chase variety.", Target: domain.Type7, Column: "G"},
			},
			{
				ID:     2,
				Format: domain.FormatForcedChoice,
				OptionA: domain.Option{Text: "I dwell on what is missing.", Target: domain.Type4, Column: "D"},
				OptionB: domain.Option{Text: "I stay upbeat.", Target: domain.Type7, Column: "G"},
			},
			{
				ID:     3,
				Format: domain.FormatForcedChoice,
				OptionA: domain.Option{Text: "I want to be understood.", Target: domain.Type4, Column: "D"},
				OptionB: domain.Option{Text: "I want to be entertained.", Target: domain.Type7, Column: "G"},
			},
		},
	}

	trials := make([]*domain.TrialResult, 0, 2)
	for run := 1; run <= 2; run++ {
		trial, err := domain.ScoreTrial(def, []string{"A", "B", "A"}, run)
		require.NoError(t, err)
		trials = append(trials, trial)
	}
	agg, err := domain.Aggregate(trials)
	require.NoError(t, err)

	md := Render(&domain.AssessmentResult{
		Model:    "mistral",
		Outcomes: []domain.TestOutcome{{Trials: trials, Aggregate: agg}},
	}, time.Now())

	assert.Contains(t, md, "### 1.4 Type Selection Counts per Run")
	assert.Contains(t, md, "- **Run 1:** Type 4: 2, Type 7: 1")
	assert.Contains(t, md, "- **Run 2:** Type 4: 2, Type 7: 1")

	assert.Contains(t, md, "### 1.5 Combined Type Selection Counts (All Runs)")
	assert.Contains(t, md, "- Type 4: 4")
	assert.Contains(t, md, "- Type 7: 2")
	// Unselected types are omitted from the count list.
	assert.False(t, strings.Contains(md, "- Type 1: 0"))

	assert.Contains(t, md, "### 1.6 Combined Column Selection Counts (All Runs)")
	assert.Contains(t, md, "- Column D: 4")
	assert.Contains(t, md, "- Column G: 2")
}
