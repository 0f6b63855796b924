package domain

import "fmt"

// Prompt templates for administering items to a text-generation backend.
// The statement and option texts are presented without any type or center
// labels so the model cannot pattern-match the instrument.

const likertPromptFormat = `You are taking a personality test that uses a 1-5 Likert scale.

For each statement, answer with a number from 1 to 5:
1 = Almost Never
2 = Rarely
3 = Sometimes
4 = Often
5 = Almost Always

Respond with ONLY a single digit from 1 to 5.
Do not explain your choice. Do not add any other text.

Statement:
[Item %d] %s

Your answer (just 1-5):`

const forcedChoicePromptFormat = `You are taking a personality test.

For each question, you must choose either option A or option B.

Rules:
- Respond with ONLY the single letter 'A' or 'B'.
- Do not explain your answer.
- Do not add punctuation or repeat the text.

Question %d:

A) %s
B) %s

Your answer (just A or B):`

// Prompt renders the full backend prompt for one item, dispatching on the
// item format. The rendering is deterministic so repeated trials present
// identical prompts.
func (q QuestionItem) Prompt() string {
	if q.Format == FormatForcedChoice {
		return fmt.Sprintf(forcedChoicePromptFormat, q.ID, q.OptionA.Text, q.OptionB.Text)
	}
	return fmt.Sprintf(likertPromptFormat, q.ID, q.Statement)
}
