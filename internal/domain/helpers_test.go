package domain

// Test fixtures shared across the domain package tests. The likert fixture
// maps one statement to each of the nine types; the paired fixture binds
// every item to two distinct types the way the paired instrument does.

func makeLikertDefinition() *TestDefinition {
	def := &TestDefinition{
		Name:   "Likert Fixture",
		Format: FormatLikert,
		Labels: map[Type]string{
			Type1: "Reformer",
			Type4: "Individualist",
			Type9: "Peacemaker",
		},
	}
	statements := []string{
		"I hold myself to high standards.",
		"I go out of my way to help others.",
		"I am driven to succeed.",
		"I feel different from other people.",
		"I prefer to observe before joining in.",
		"I plan for what could go wrong.",
		"I am always looking for the next adventure.",
		"I take charge of situations.",
		"I avoid conflict when I can.",
	}
	for i, stmt := range statements {
		def.Items = append(def.Items, QuestionItem{
			ID:        i + 1,
			Format:    FormatLikert,
			Statement: stmt,
			Target:    Type(i + 1),
		})
	}
	return def
}

func makePairedDefinition() *TestDefinition {
	pairs := []struct {
		aText string
		a     Type
		bText string
		b     Type
	}{
		{"I keep the peace.", Type9, "I push for results.", Type8},
		{"I strive to improve things.", Type1, "I strive to stand out.", Type4},
		{"I support the people around me.", Type2, "I analyze from a distance.", Type5},
		{"I pursue achievement.", Type3, "I pursue security.", Type6},
		{"I chase new experiences.", Type7, "I chase deep feeling.", Type4},
		{"I question authority.", Type6, "I become the authority.", Type8},
	}
	// One scoring column per type, keyed A-I in type order.
	columns := [NumTypes + 1]string{"", "A", "B", "C", "D", "E", "F", "G", "H", "I"}
	def := &TestDefinition{Name: "Paired Fixture", Format: FormatForcedChoice}
	for i, p := range pairs {
		def.Items = append(def.Items, QuestionItem{
			ID:      i + 1,
			Format:  FormatForcedChoice,
			OptionA: Option{Text: p.aText, Target: p.a, Column: columns[p.a]},
			OptionB: Option{Text: p.bText, Target: p.b, Column: columns[p.b]},
		})
	}
	return def
}

// repeat builds a raw-answer batch of n copies of s.
func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
