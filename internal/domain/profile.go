package domain

// Tritype is the triple of highest-scoring types, one per center, in
// canonical Gut, Heart, Head order.
type Tritype [3]Type

// Gut, Heart and Head return the per-center winners of the triple.
func (tt Tritype) Gut() Type   { return tt[0] }
func (tt Tritype) Heart() Type { return tt[1] }
func (tt Tritype) Head() Type  { return tt[2] }

// Profile is the derived single-trial view of a score table: the dominant
// type, its wing, and the tritype.
type Profile struct {
	// Core is the type with the maximum total. Ties resolve to the
	// lowest-numbered type.
	Core Type `json:"core"`

	// Wing is whichever of Core's two cyclic neighbors scored higher.
	// Ties resolve to the left (cyclically previous) neighbor.
	Wing Type `json:"wing"`

	// Tritype holds the best-scoring type of each center. Within a center,
	// ties resolve to the earlier type in canonical center order.
	Tritype Tritype `json:"tritype"`
}

// DeriveProfile computes the dominant type, wing and tritype from one
// trial's totals. The selection rules are deterministic:
//
//   - Core: maximum total over types 1..9 in ascending order, strict
//     improvement required, so the lowest-numbered type wins ties.
//   - Wing: the neighbor with the higher total; the left neighbor wins
//     ties (left = core-1, wrapping 1 to 9).
//   - Tritype: per-center maximum in canonical center order (8,9,1 /
//     2,3,4 / 5,6,7), strict improvement required.
func DeriveProfile(scores TypeScores) Profile {
	core := dominantType(scores)

	left, right := core.LeftWing(), core.RightWing()
	wing := left
	if scores[right] > scores[left] {
		wing = right
	}

	var tritype Tritype
	for i, c := range AllCenters() {
		members := centerPartition[c]
		best := members[0]
		for _, t := range members[1:] {
			if scores[t] > scores[best] {
				best = t
			}
		}
		tritype[i] = best
	}

	return Profile{Core: core, Wing: wing, Tritype: tritype}
}

// dominantType returns the highest-scoring type, lowest number first on
// ties.
func dominantType(scores TypeScores) Type {
	best := Type1
	for _, t := range AllTypes()[1:] {
		if scores[t] > scores[best] {
			best = t
		}
	}
	return best
}
