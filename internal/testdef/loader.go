// Package testdef loads questionnaire definitions from their JSON files
// into domain.TestDefinition values. Two file shapes are supported: the
// Likert shape, which groups statements under labeled type keys, and the
// paired shape, which binds each item's two options to scoring columns.
// Loading is strict: any structural inconsistency is a configuration error.
package testdef

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/enneabench/enneabench/internal/domain"
)

// likertFile mirrors the on-disk Likert test shape:
//
//	{"test_name": "...", "instructions": "...",
//	 "types": {"A": {"label": "...", "maps_to_enneagram_type": 4,
//	           "statements": ["..."]}}}
type likertFile struct {
	TestName     string                `json:"test_name"`
	Instructions string                `json:"instructions"`
	Types        map[string]likertType `json:"types"`
}

type likertType struct {
	Label      string   `json:"label"`
	MapsTo     int      `json:"maps_to_enneagram_type"`
	Statements []string `json:"statements"`
}

// pairedFile mirrors the on-disk paired test shape:
//
//	{"test_name": "...",
//	 "columns": {"A": {"type": 9, "label": "Nine"}},
//	 "items": [{"id": 1, "pair": [{"side": "A", "text": "...",
//	           "column": "E"}, {"side": "B", ...}]}]}
type pairedFile struct {
	TestName string                  `json:"test_name"`
	Columns  map[string]pairedColumn `json:"columns"`
	Items    []pairedItem            `json:"items"`
}

type pairedColumn struct {
	Type  int    `json:"type"`
	Label string `json:"label"`
}

type pairedItem struct {
	ID   int          `json:"id"`
	Pair []pairedSide `json:"pair"`
}

type pairedSide struct {
	Side   string `json:"side"`
	Text   string `json:"text"`
	Column string `json:"column"`
}

// LoadLikert reads and parses a Likert test definition file.
func LoadLikert(path string) (*domain.TestDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read likert test file: %w", err)
	}
	return ParseLikert(data)
}

// ParseLikert converts the Likert JSON shape into a validated definition.
// Type keys are walked in sorted order and items are numbered globally
// across all keys, matching administration order.
func ParseLikert(data []byte) (*domain.TestDefinition, error) {
	var file likertFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse likert test: %w", domain.ErrConfiguration, err)
	}
	if len(file.Types) == 0 {
		return nil, fmt.Errorf("%w: likert test %q has no type groups", domain.ErrConfiguration, file.TestName)
	}

	keys := make([]string, 0, len(file.Types))
	for k := range file.Types {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	def := &domain.TestDefinition{
		Name:         file.TestName,
		Format:       domain.FormatLikert,
		Instructions: file.Instructions,
		Labels:       make(map[domain.Type]string, len(keys)),
	}

	id := 1
	for _, key := range keys {
		group := file.Types[key]
		target := domain.Type(group.MapsTo)
		if !target.Valid() {
			return nil, fmt.Errorf("%w: likert group %q maps to invalid type %d",
				domain.ErrConfiguration, key, group.MapsTo)
		}
		if group.Label != "" {
			def.Labels[target] = group.Label
		}
		for _, stmt := range group.Statements {
			def.Items = append(def.Items, domain.QuestionItem{
				ID:        id,
				Format:    domain.FormatLikert,
				Statement: stmt,
				Target:    target,
			})
			id++
		}
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// LoadPaired reads and parses a paired test definition file.
func LoadPaired(path string) (*domain.TestDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read paired test file: %w", err)
	}
	return ParsePaired(data)
}

// ParsePaired converts the paired JSON shape into a validated definition.
// Each item must carry exactly two sides, A and B, and every referenced
// column must resolve to a valid type.
func ParsePaired(data []byte) (*domain.TestDefinition, error) {
	var file pairedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse paired test: %w", domain.ErrConfiguration, err)
	}
	if len(file.Columns) == 0 {
		return nil, fmt.Errorf("%w: paired test %q has no columns", domain.ErrConfiguration, file.TestName)
	}

	def := &domain.TestDefinition{
		Name:   file.TestName,
		Format: domain.FormatForcedChoice,
		Labels: make(map[domain.Type]string, len(file.Columns)),
	}
	for key, col := range file.Columns {
		target := domain.Type(col.Type)
		if !target.Valid() {
			return nil, fmt.Errorf("%w: column %q has invalid type %d",
				domain.ErrConfiguration, key, col.Type)
		}
		if col.Label != "" {
			def.Labels[target] = col.Label
		}
	}

	for _, item := range file.Items {
		if len(item.Pair) != 2 {
			return nil, fmt.Errorf("%w: item %d has %d sides, want 2",
				domain.ErrConfiguration, item.ID, len(item.Pair))
		}
		// Sides may arrive in either order; normalize to A then B.
		options := make(map[string]domain.Option, 2)
		for _, side := range item.Pair {
			col, ok := file.Columns[side.Column]
			if !ok {
				return nil, fmt.Errorf("%w: item %d side %s references unknown column %q",
					domain.ErrConfiguration, item.ID, side.Side, side.Column)
			}
			options[side.Side] = domain.Option{
				Text:   side.Text,
				Target: domain.Type(col.Type),
				Column: side.Column,
			}
		}
		optionA, okA := options["A"]
		optionB, okB := options["B"]
		if !okA || !okB {
			return nil, fmt.Errorf("%w: item %d does not define both sides A and B",
				domain.ErrConfiguration, item.ID)
		}

		def.Items = append(def.Items, domain.QuestionItem{
			ID:      item.ID,
			Format:  domain.FormatForcedChoice,
			OptionA: optionA,
			OptionB: optionB,
		})
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}
