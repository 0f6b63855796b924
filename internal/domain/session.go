package domain

import "fmt"

// AdministerTrialInput is the contract for the AdministerTrial operation:
// run one complete administration of a test against the configured model
// and score it.
type AdministerTrialInput struct {
	// Definition is the questionnaire to administer.
	Definition *TestDefinition `json:"definition" validate:"required"`

	// Model is the backend model name answering the items.
	Model string `json:"model" validate:"required"`

	// RunIndex is the 1-based trial number within the session.
	RunIndex int `json:"run_index" validate:"required,min=1"`
}

// Validate checks the input against the operation contract.
func (i *AdministerTrialInput) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return i.Definition.Validate()
}

// AggregateTrialsInput is the contract for the AggregateTrials operation:
// combine the finalized trials of one test into cross-run statistics.
type AggregateTrialsInput struct {
	// Trials are the finalized trial results, in run order.
	Trials []*TrialResult `json:"trials" validate:"required,min=1"`
}

// Validate checks the input against the operation contract.
func (i *AggregateTrialsInput) Validate() error {
	if len(i.Trials) == 0 {
		return fmt.Errorf("%w: no trials provided", ErrInsufficientData)
	}
	return nil
}

// AssessmentRequest describes one full session: administer each provided
// test definition RunsPerTest times against Model, then aggregate.
type AssessmentRequest struct {
	// Model is the backend model under assessment.
	Model string `json:"model" validate:"required"`

	// RunsPerTest is how many trials each test receives.
	RunsPerTest int `json:"runs_per_test" validate:"required,min=1"`

	// Definitions are the tests to administer, in order.
	Definitions []*TestDefinition `json:"definitions" validate:"required,min=1"`
}

// Validate checks the request against the session contract.
func (r *AssessmentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	for _, def := range r.Definitions {
		if err := def.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TestOutcome pairs one test's trials with their aggregate view.
type TestOutcome struct {
	Trials    []*TrialResult   `json:"trials"`
	Aggregate *AggregateReport `json:"aggregate"`
}

// AssessmentResult is the complete outcome of one session, one outcome per
// requested definition, in request order.
type AssessmentResult struct {
	Model    string        `json:"model"`
	Outcomes []TestOutcome `json:"outcomes"`
}
