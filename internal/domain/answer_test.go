package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractLikert verifies the first-digit-in-range scan and the
// midpoint default for ambiguous responses. Ambiguity is resolved by
// substitution, never by error.
func TestExtractLikert(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      int
		defaulted bool
	}{
		{name: "bare digit", raw: "4", want: 4},
		{name: "digit with prose", raw: "I'd say a 3 out of 5", want: 3},
		{name: "leading whitespace and newline", raw: "\n  2", want: 2},
		{name: "first in-range digit wins", raw: "8 or maybe 5", want: 5},
		{name: "rating embedded in sentence", raw: "My answer is 1.", want: 1},
		{name: "no digit at all", raw: "no clear answer", want: DefaultRating, defaulted: true},
		{name: "out of range digit only", raw: "I would rate this a 7", want: DefaultRating, defaulted: true},
		{name: "zero is out of range", raw: "0", want: DefaultRating, defaulted: true},
		{name: "empty response", raw: "", want: DefaultRating, defaulted: true},
		{name: "refusal", raw: "As an AI I cannot take personality tests.", want: DefaultRating, defaulted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defaulted := ExtractLikert(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.defaulted, defaulted)
		})
	}
}

// TestExtractChoice verifies the case-insensitive first-marker scan and
// the first-option default.
func TestExtractChoice(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      Choice
		defaulted bool
	}{
		{name: "bare A", raw: "A", want: ChoiceA},
		{name: "bare B", raw: "B", want: ChoiceB},
		{name: "lowercase b with trailing text", raw: "b, definitely", want: ChoiceB},
		{name: "B with prose", raw: "B, definitely", want: ChoiceB},
		{name: "first marker wins", raw: "Between A and B I pick A", want: ChoiceA},
		{name: "marker after newline", raw: "\nB\n", want: ChoiceB},
		{name: "letter inside a word counts", raw: "unclear", want: ChoiceA},
		{name: "no marker", raw: "I don't know", want: DefaultChoice, defaulted: true},
		{name: "empty response", raw: "", want: DefaultChoice, defaulted: true},
		{name: "digits only", raw: "1", want: DefaultChoice, defaulted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defaulted := ExtractChoice(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.defaulted, defaulted)
		})
	}
}

func TestExtractAnswerDispatch(t *testing.T) {
	likert := ExtractAnswer("4", FormatLikert)
	assert.Equal(t, FormatLikert, likert.Format)
	assert.Equal(t, 4, likert.Rating)
	assert.False(t, likert.Defaulted)

	choice := ExtractAnswer("???", FormatForcedChoice)
	assert.Equal(t, FormatForcedChoice, choice.Format)
	assert.Equal(t, ChoiceA, choice.Choice)
	assert.True(t, choice.Defaulted)

	// Any a/b letter in the response counts as a marker, even mid-word.
	marked := ExtractAnswer("no idea", FormatForcedChoice)
	assert.Equal(t, ChoiceA, marked.Choice)
	assert.False(t, marked.Defaulted)
}
