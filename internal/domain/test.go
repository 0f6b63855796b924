package domain

import "fmt"

// Option is one side of a forced-choice item, binding the option text to
// the type it credits when chosen. Column preserves the source scoring
// column key so reports can count selections per column as well as per
// type.
type Option struct {
	Text   string `json:"text" validate:"required"`
	Target Type   `json:"target" validate:"required"`
	Column string `json:"column,omitempty"`
}

// QuestionItem is a single item of a test definition. Likert items carry a
// statement and one target type; forced-choice items carry two options,
// each bound to its own type. Items are immutable once the definition is
// validated.
type QuestionItem struct {
	// ID is the item's position in the definition, starting at 1.
	ID int `json:"id" validate:"required,min=1"`

	// Format selects which of the remaining fields are meaningful.
	Format Format `json:"format" validate:"required"`

	// Statement is the Likert statement text. Likert only.
	Statement string `json:"statement,omitempty"`

	// Target is the type credited by the rating. Likert only.
	Target Type `json:"target,omitempty"`

	// OptionA and OptionB are the two bound options. Forced-choice only.
	OptionA Option `json:"option_a,omitempty"`
	OptionB Option `json:"option_b,omitempty"`
}

// Chosen returns the option selected by c.
func (q QuestionItem) Chosen(c Choice) Option {
	if c == ChoiceB {
		return q.OptionB
	}
	return q.OptionA
}

// TestDefinition is a static, immutable questionnaire: a set of type labels
// and an ordered list of items, all sharing one format. Definitions are
// loaded by an external collaborator and only consumed here.
type TestDefinition struct {
	// Name identifies the test in reports.
	Name string `json:"name" validate:"required"`

	// Format is the question format shared by every item.
	Format Format `json:"format" validate:"required"`

	// Instructions is optional free text shown in reports.
	Instructions string `json:"instructions,omitempty"`

	// Labels maps each type to its semantic label in this test.
	Labels map[Type]string `json:"labels,omitempty"`

	// Items are the questions in administration order.
	Items []QuestionItem `json:"items" validate:"required,min=1"`
}

// Validate checks the definition for structural consistency: a known
// format, at least one item, per-item formats matching the definition, and
// every referenced type inside the nine-type partition. Any violation is a
// configuration error.
func (d *TestDefinition) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if !d.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q", ErrConfiguration, d.Format)
	}
	for t := range d.Labels {
		if !t.Valid() {
			return fmt.Errorf("%w: label for invalid type %d", ErrConfiguration, int(t))
		}
	}
	for i, item := range d.Items {
		if item.Format != d.Format {
			return fmt.Errorf("%w: item %d format %q does not match test format %q",
				ErrConfiguration, i+1, item.Format, d.Format)
		}
		switch item.Format {
		case FormatLikert:
			if item.Statement == "" {
				return fmt.Errorf("%w: likert item %d has no statement", ErrConfiguration, i+1)
			}
			if !item.Target.Valid() {
				return fmt.Errorf("%w: likert item %d targets invalid type %d",
					ErrConfiguration, i+1, int(item.Target))
			}
		case FormatForcedChoice:
			for side, opt := range map[Choice]Option{ChoiceA: item.OptionA, ChoiceB: item.OptionB} {
				if opt.Text == "" {
					return fmt.Errorf("%w: forced-choice item %d option %s has no text",
						ErrConfiguration, i+1, side)
				}
				if !opt.Target.Valid() {
					return fmt.Errorf("%w: forced-choice item %d option %s targets invalid type %d",
						ErrConfiguration, i+1, side, int(opt.Target))
				}
			}
		}
	}
	return nil
}

// ItemsFor returns how many items can credit type t. For Likert this is the
// number of items targeting t; for forced-choice it is the number of items
// with an option bound to t.
func (d *TestDefinition) ItemsFor(t Type) int {
	var n int
	for _, item := range d.Items {
		switch item.Format {
		case FormatLikert:
			if item.Target == t {
				n++
			}
		case FormatForcedChoice:
			if item.OptionA.Target == t || item.OptionB.Target == t {
				n++
			}
		}
	}
	return n
}

// Label returns the semantic label for t, or its ordinal rendering when the
// definition carries no label.
func (d *TestDefinition) Label(t Type) string {
	if label, ok := d.Labels[t]; ok && label != "" {
		return label
	}
	return t.String()
}
