package domain

import "fmt"

// TypeScores maps each of the nine types to its accumulated score for
// exactly one trial. A fresh instance is created per trial and never
// mutated once the trial's items are exhausted.
type TypeScores map[Type]int

// NewTypeScores returns a zeroed score table covering all nine types.
func NewTypeScores() TypeScores {
	s := make(TypeScores, NumTypes)
	for _, t := range AllTypes() {
		s[t] = 0
	}
	return s
}

// Total returns the sum over all types. For a forced-choice trial with K
// items this is exactly K; each item contributes one unit to one type.
func (s TypeScores) Total() int {
	var sum int
	for _, v := range s {
		sum += v
	}
	return sum
}

// Clone returns an independent copy.
func (s TypeScores) Clone() TypeScores {
	out := make(TypeScores, len(s))
	for t, v := range s {
		out[t] = v
	}
	return out
}

// CenterTotals sums the per-type scores within each Center of Intelligence.
// The partition is fixed and exhaustive, so the three center totals always
// sum to the trial total.
func CenterTotals(s TypeScores) map[Center]int {
	totals := make(map[Center]int, len(centerPartition))
	for _, c := range AllCenters() {
		var sum int
		for _, t := range centerPartition[c] {
			sum += s[t]
		}
		totals[c] = sum
	}
	return totals
}

// TranscriptEntry records how one item was answered and credited. Kept on
// the trial result so the renderer can show per-item detail; the raw
// response is not retained anywhere else.
type TranscriptEntry struct {
	ItemID   int    `json:"item_id"`
	Text     string `json:"text"`
	Raw      string `json:"raw"`
	Answer   Answer `json:"answer"`
	Credited Type   `json:"credited"`
	Weight   int    `json:"weight"`

	// Column is the chosen option's scoring column key. Forced-choice only.
	Column string `json:"column,omitempty"`
}

// TrialResult is the complete, immutable outcome of one test
// administration: the per-type totals, the derived profile, per-center
// totals, and the item transcript. Produced once per trial and consumed by
// the aggregator and the report renderer.
type TrialResult struct {
	RunIndex   int               `json:"run_index"`
	TestName   string            `json:"test_name"`
	Format     Format            `json:"format"`
	Scores     TypeScores        `json:"scores"`
	Centers    map[Center]int    `json:"centers"`
	Profile    Profile           `json:"profile"`
	Transcript []TranscriptEntry `json:"transcript,omitempty"`
}

// ScoreTrial converts one trial's raw answers into a TrialResult. The
// rawAnswers sequence must align 1:1, in order, with the definition's
// items. Each raw answer is extracted with the documented
// default-on-ambiguity policy, resolved to the type it credits (the item
// target for Likert, the chosen option's target for forced-choice), and
// added to that type's running total with the item weight (the rating for
// Likert, one for forced-choice).
//
// ScoreTrial is deterministic: identical inputs yield identical results.
// It fails with ErrConfiguration if the definition is inconsistent or the
// answer count does not match the item count.
func ScoreTrial(def *TestDefinition, rawAnswers []string, runIndex int) (*TrialResult, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if len(rawAnswers) != len(def.Items) {
		return nil, fmt.Errorf("%w: %d raw answers for %d items",
			ErrConfiguration, len(rawAnswers), len(def.Items))
	}

	scores := NewTypeScores()
	transcript := make([]TranscriptEntry, 0, len(def.Items))

	for i, item := range def.Items {
		raw := rawAnswers[i]
		answer := ExtractAnswer(raw, item.Format)

		var credited Type
		var weight int
		var text, column string
		switch item.Format {
		case FormatLikert:
			credited = item.Target
			weight = answer.Rating
			text = item.Statement
		case FormatForcedChoice:
			chosen := item.Chosen(answer.Choice)
			credited = chosen.Target
			weight = 1
			text = chosen.Text
			column = chosen.Column
		}

		// Validate() has already bounded every target, but a map-backed
		// score table would silently grow on a stray key.
		if _, ok := scores[credited]; !ok {
			return nil, fmt.Errorf("%w: item %d credits type %d outside the partition",
				ErrConfiguration, item.ID, int(credited))
		}
		scores[credited] += weight

		transcript = append(transcript, TranscriptEntry{
			ItemID:   item.ID,
			Text:     text,
			Raw:      raw,
			Answer:   answer,
			Credited: credited,
			Weight:   weight,
			Column:   column,
		})
	}

	return &TrialResult{
		RunIndex:   runIndex,
		TestName:   def.Name,
		Format:     def.Format,
		Scores:     scores,
		Centers:    CenterTotals(scores),
		Profile:    DeriveProfile(scores),
		Transcript: transcript,
	}, nil
}
