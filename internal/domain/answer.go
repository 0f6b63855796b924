package domain

// Format distinguishes the two question formats a definition can use.
// It is a closed variant: every QuestionItem is exactly one of these.
type Format string

const (
	// FormatLikert is the 1-5 rating-scale format.
	FormatLikert Format = "likert"

	// FormatForcedChoice is the binary A/B format.
	FormatForcedChoice Format = "forced_choice"
)

// String returns the string representation of the format.
func (f Format) String() string { return string(f) }

// Valid reports whether f is a defined format.
func (f Format) Valid() bool { return f == FormatLikert || f == FormatForcedChoice }

// Choice identifies the selected option of a forced-choice item.
type Choice string

const (
	// ChoiceA selects the first option.
	ChoiceA Choice = "A"

	// ChoiceB selects the second option.
	ChoiceB Choice = "B"
)

// Extraction defaults. Ambiguous model output is resolved by substitution,
// never by error: a single unparseable answer must not abort a trial.
const (
	// DefaultRating is returned when a Likert answer contains no digit in
	// range. Three is the scale midpoint.
	DefaultRating = 3

	// MinRating and MaxRating bound the Likert scale.
	MinRating = 1
	MaxRating = 5

	// DefaultChoice is returned when a forced-choice answer names neither
	// option.
	DefaultChoice = ChoiceA
)

// Answer is the discrete value extracted from one raw model response.
// Exactly one of Rating or Choice is meaningful, selected by Format.
type Answer struct {
	Format Format `json:"format"`

	// Rating is the 1-5 Likert value. Meaningful only for FormatLikert.
	Rating int `json:"rating,omitempty"`

	// Choice is the selected option. Meaningful only for FormatForcedChoice.
	Choice Choice `json:"choice,omitempty"`

	// Defaulted records whether the raw response was ambiguous and the
	// documented default was substituted.
	Defaulted bool `json:"defaulted,omitempty"`
}

// ExtractLikert parses a raw model response as a 1-5 rating. It scans for
// the first digit in the inclusive range 1-5 and returns it; if the response
// contains no such digit (prose, a refusal, an out-of-range number), it
// returns DefaultRating. The boolean reports whether the default was used.
//
// Pure function of its input; never fails.
func ExtractLikert(raw string) (int, bool) {
	for _, ch := range raw {
		if ch >= '1' && ch <= '5' {
			return int(ch - '0'), false
		}
	}
	return DefaultRating, true
}

// ExtractChoice parses a raw model response as an A/B selection. It scans
// case-insensitively for the first occurrence of either option letter and
// returns the corresponding choice; if neither letter appears, it returns
// DefaultChoice. The boolean reports whether the default was used.
//
// Pure function of its input; never fails.
func ExtractChoice(raw string) (Choice, bool) {
	for _, ch := range raw {
		switch ch {
		case 'A', 'a':
			return ChoiceA, false
		case 'B', 'b':
			return ChoiceB, false
		}
	}
	return DefaultChoice, true
}

// ExtractAnswer dispatches on the item format and returns the discrete
// answer for one raw response. It always produces a value.
func ExtractAnswer(raw string, format Format) Answer {
	switch format {
	case FormatForcedChoice:
		choice, defaulted := ExtractChoice(raw)
		return Answer{Format: format, Choice: choice, Defaulted: defaulted}
	default:
		rating, defaulted := ExtractLikert(raw)
		return Answer{Format: FormatLikert, Rating: rating, Defaulted: defaulted}
	}
}
