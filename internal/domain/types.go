// Package domain provides the scoring and statistical-aggregation core for
// administering fixed-form personality questionnaires to text-generation
// backends. It defines the nine-type category model, answer extraction from
// free-text model output, per-trial score accumulation, derived metrics
// (core type, wing, tritype), and cross-trial statistical aggregation.
//
// Scoring Architecture:
//   - Default-on-ambiguity answer extraction that never fails a trial.
//   - Fresh per-trial accumulators with no cross-trial state.
//   - Deterministic tie-breaking for core, wing and tritype selection.
//   - Population statistics across repeated trials.
//
// Everything in this package is pure and deterministic: no I/O, no clock
// reads, no randomness. Network access, file loading and report rendering
// live in collaborating packages.
package domain

import "fmt"

// Type identifies one of the nine Enneagram personality categories.
// Types are ordinally numbered 1-9 and cyclically adjacent: the neighbors
// of Type 1 are 9 and 2, and the neighbors of Type 9 are 8 and 1.
type Type int

// The nine Enneagram types.
const (
	Type1 Type = iota + 1
	Type2
	Type3
	Type4
	Type5
	Type6
	Type7
	Type8
	Type9
)

// NumTypes is the number of Enneagram types.
const NumTypes = 9

// AllTypes returns the nine types in ascending order.
// Iteration over this slice is the canonical ordering used for
// deterministic tie-breaking.
func AllTypes() []Type {
	return []Type{Type1, Type2, Type3, Type4, Type5, Type6, Type7, Type8, Type9}
}

// Valid reports whether t is one of the nine defined types.
func (t Type) Valid() bool { return t >= Type1 && t <= Type9 }

// String returns the conventional "Type N" rendering.
func (t Type) String() string { return fmt.Sprintf("Type %d", int(t)) }

// LeftWing returns the cyclically previous type (1 wraps to 9).
func (t Type) LeftWing() Type {
	if t == Type1 {
		return Type9
	}
	return t - 1
}

// RightWing returns the cyclically next type (9 wraps to 1).
func (t Type) RightWing() Type {
	if t == Type9 {
		return Type1
	}
	return t + 1
}

// Center identifies one of the three Centers of Intelligence, the fixed
// disjoint grouping of the nine types.
type Center string

// The three Centers of Intelligence.
const (
	CenterGut   Center = "gut"
	CenterHeart Center = "heart"
	CenterHead  Center = "head"
)

// AllCenters returns the centers in canonical Gut, Heart, Head order.
// This is the ordering used for the tritype triple.
func AllCenters() []Center {
	return []Center{CenterGut, CenterHeart, CenterHead}
}

// centerPartition is the fixed partition of the nine types into centers.
// The within-center ordering is the conventional one and doubles as the
// tie-break order for tritype selection.
var centerPartition = map[Center][3]Type{
	CenterGut:   {Type8, Type9, Type1},
	CenterHeart: {Type2, Type3, Type4},
	CenterHead:  {Type5, Type6, Type7},
}

// TypesOf returns the three types belonging to c in canonical order.
// Returns the zero value for an unknown center.
func TypesOf(c Center) [3]Type { return centerPartition[c] }

// CenterOf returns the center containing t.
func CenterOf(t Type) Center {
	switch t {
	case Type8, Type9, Type1:
		return CenterGut
	case Type2, Type3, Type4:
		return CenterHeart
	default:
		return CenterHead
	}
}

// CheckPartition verifies that the center partition is exhaustive and
// disjoint over the nine types. The partition is a compile-time constant,
// so a failure here indicates a programming error; callers treat it as a
// configuration error.
func CheckPartition() error {
	seen := make(map[Type]Center, NumTypes)
	for _, c := range AllCenters() {
		for _, t := range centerPartition[c] {
			if !t.Valid() {
				return fmt.Errorf("%w: center %q contains invalid type %d", ErrConfiguration, c, int(t))
			}
			if prev, dup := seen[t]; dup {
				return fmt.Errorf("%w: type %d appears in both %q and %q", ErrConfiguration, int(t), prev, c)
			}
			seen[t] = c
		}
	}
	if len(seen) != NumTypes {
		return fmt.Errorf("%w: partition covers %d of %d types", ErrConfiguration, len(seen), NumTypes)
	}
	return nil
}
