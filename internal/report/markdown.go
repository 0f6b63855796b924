// Package report renders assessment results as markdown documents. The
// layout mirrors what human reviewers read: per-run profile lines first,
// then cross-run statistics tables per test.
package report

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/enneabench/enneabench/internal/domain"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a name and collapses every non-alphanumeric run into a
// single hyphen, for use in report filenames.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = slugPattern.ReplaceAllString(value, "-")
	return strings.Trim(value, "-")
}

// Filename returns the report filename for one model's assessment,
// e.g. "assessment_mistral-7b_2026-08-30.md".
func Filename(model string, at time.Time) string {
	return fmt.Sprintf("assessment_%s_%s.md", Slugify(model), at.Format("2006-01-02"))
}

// Render produces the full markdown report for one assessment: a header
// with the model and run count, then one numbered section per test.
func Render(result *domain.AssessmentResult, at time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Enneagram Multi-Run Report (Model: %s)\n\n", result.Model)
	fmt.Fprintf(&b, "- **Date:** %s\n", at.Format("2006-01-02"))
	fmt.Fprintf(&b, "- **Time:** %s\n", at.Format("15:04:05"))
	if len(result.Outcomes) > 0 {
		fmt.Fprintf(&b, "- **Runs per test:** %d\n", len(result.Outcomes[0].Trials))
	}
	b.WriteString("\n")

	for i, outcome := range result.Outcomes {
		renderOutcome(&b, i+1, outcome)
	}

	return b.String()
}

func renderOutcome(b *strings.Builder, section int, outcome domain.TestOutcome) {
	agg := outcome.Aggregate
	fmt.Fprintf(b, "## %d. %s – Multi-Run Summary\n\n", section, agg.TestName)

	fmt.Fprintf(b, "### %d.1 Primary Type / Wing / Tritype per Run\n\n", section)
	for _, trial := range outcome.Trials {
		p := trial.Profile
		fmt.Fprintf(b,
			"- **Run %d** → Core: %s, Wing: %d, Tritype (Gut/Heart/Head): (%d, %d, %d); Centers: Head=%d, Heart=%d, Gut=%d\n",
			trial.RunIndex, p.Core, int(p.Wing),
			int(p.Tritype.Gut()), int(p.Tritype.Heart()), int(p.Tritype.Head()),
			trial.Centers[domain.CenterHead], trial.Centers[domain.CenterHeart], trial.Centers[domain.CenterGut],
		)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "### %d.2 Scores by Type Across Runs (Means & σ)\n\n", section)
	b.WriteString("| Type | Mean Score | σ |\n")
	b.WriteString("|------|------------|---|\n")
	for _, t := range domain.AllTypes() {
		stat := agg.Types[t]
		fmt.Fprintf(b, "| %d | %.2f | %.2f |\n", int(t), stat.Mean, stat.Sigma)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "### %d.3 Centers of Intelligence Across Runs (Means & σ)\n\n", section)
	b.WriteString("| Center | Mean | σ |\n")
	b.WriteString("|--------|------|---|\n")
	for _, c := range []domain.Center{domain.CenterHead, domain.CenterHeart, domain.CenterGut} {
		stat := agg.Centers[c]
		fmt.Fprintf(b, "| %s | %.2f | %.2f |\n", title(string(c)), stat.Mean, stat.Sigma)
	}
	b.WriteString("\n")

	if agg.Format == domain.FormatForcedChoice {
		fmt.Fprintf(b, "### %d.4 Type Selection Counts per Run\n\n", section)
		for _, trial := range outcome.Trials {
			row := typeCountRow(trial.Scores)
			if row == "" {
				fmt.Fprintf(b, "- **Run %d:** no selections\n", trial.RunIndex)
				continue
			}
			fmt.Fprintf(b, "- **Run %d:** %s\n", trial.RunIndex, row)
		}
		b.WriteString("\n")

		fmt.Fprintf(b, "### %d.5 Combined Type Selection Counts (All Runs)\n\n", section)
		selected := false
		for _, t := range domain.AllTypes() {
			if count := agg.Combined[t]; count > 0 {
				fmt.Fprintf(b, "- Type %d: %d\n", int(t), count)
				selected = true
			}
		}
		if !selected {
			b.WriteString("- No selections at all.\n")
		}
		b.WriteString("\n")

		fmt.Fprintf(b, "### %d.6 Combined Column Selection Counts (All Runs)\n\n", section)
		columns := columnCounts(outcome.Trials)
		if len(columns) == 0 {
			b.WriteString("- No column selections at all.\n")
		}
		keys := make([]string, 0, len(columns))
		for col := range columns {
			keys = append(keys, col)
		}
		sort.Strings(keys)
		for _, col := range keys {
			fmt.Fprintf(b, "- Column %s: %d\n", col, columns[col])
		}
		b.WriteString("\n")
	}
}

// typeCountRow formats one run's nonzero selection counts in type order.
func typeCountRow(scores domain.TypeScores) string {
	parts := make([]string, 0, domain.NumTypes)
	for _, t := range domain.AllTypes() {
		if count := scores[t]; count > 0 {
			parts = append(parts, fmt.Sprintf("Type %d: %d", int(t), count))
		}
	}
	return strings.Join(parts, ", ")
}

// columnCounts tallies chosen scoring columns across every run's
// transcript.
func columnCounts(trials []*domain.TrialResult) map[string]int {
	counts := make(map[string]int)
	for _, trial := range trials {
		for _, entry := range trial.Transcript {
			if entry.Column != "" {
				counts[entry.Column]++
			}
		}
	}
	return counts
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
