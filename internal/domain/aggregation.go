package domain

import (
	"fmt"
	"math"
)

// Stat holds the arithmetic mean and standard deviation of one series of
// per-trial totals. Sigma uses the population formula (divide by N): the
// trials are a complete, known set, not a sample. A lower Sigma means more
// consistent answering across trials; no separate normalized consistency
// index is synthesized, qualitative labels are the renderer's concern.
type Stat struct {
	Mean  float64 `json:"mean"`
	Sigma float64 `json:"sigma"`
}

// AggregateReport combines the totals of N independent trials of one test
// into per-type and per-center statistics. Built once from a non-empty
// ordered trial sequence; immutable.
type AggregateReport struct {
	// TestName and Format are taken from the first trial.
	TestName string `json:"test_name"`
	Format   Format `json:"format"`

	// Trials is the number of trials aggregated.
	Trials int `json:"trials"`

	// Types holds mean and sigma of each type's total across trials.
	Types map[Type]Stat `json:"types"`

	// Centers holds mean and sigma of each center's total across trials.
	Centers map[Center]Stat `json:"centers"`

	// Combined sums every trial's totals. For forced-choice tests this is
	// the combined selection count per type across all runs.
	Combined TypeScores `json:"combined"`
}

// Aggregate combines per-trial totals into per-type and per-center mean and
// population standard deviation. The aggregator must only run once every
// contributing trial is finalized; it fails with ErrInsufficientData when
// given no trials.
func Aggregate(trials []*TrialResult) (*AggregateReport, error) {
	if len(trials) == 0 {
		return nil, fmt.Errorf("%w: no trials to aggregate", ErrInsufficientData)
	}

	n := len(trials)
	combined := NewTypeScores()

	typeStats := make(map[Type]Stat, NumTypes)
	for _, t := range AllTypes() {
		values := make([]float64, n)
		for i, trial := range trials {
			values[i] = float64(trial.Scores[t])
			combined[t] += trial.Scores[t]
		}
		typeStats[t] = meanSigma(values)
	}

	centerStats := make(map[Center]Stat, len(centerPartition))
	for _, c := range AllCenters() {
		values := make([]float64, n)
		for i, trial := range trials {
			values[i] = float64(trial.Centers[c])
		}
		centerStats[c] = meanSigma(values)
	}

	return &AggregateReport{
		TestName: trials[0].TestName,
		Format:   trials[0].Format,
		Trials:   n,
		Types:    typeStats,
		Centers:  centerStats,
		Combined: combined,
	}, nil
}

// meanSigma computes the arithmetic mean and population standard deviation.
func meanSigma(values []float64) Stat {
	if len(values) == 0 {
		return Stat{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return Stat{Mean: mean, Sigma: math.Sqrt(variance)}
}
