// internal/difficulty/difficulty.go
//
// Level-to-difficulty resolution for board generation.
// Maps a level number to a target tile count and a value-distribution
// profile. Levels progress through brackets: small boards with obvious,
// adjacent sum-to-ten pairs early on; larger boards with big digits and
// scattered, harder-to-spot combinations later. Challenge mode uses one
// fixed, large configuration independent of level.

package difficulty

// Profile tunes how a board of a given difficulty is filled.
type Profile struct {
	// Small/Medium/Large are the target shares of 1–3, 4–6 and 7–9 digits.
	// They always sum to 1.0 and steer pair-template selection.
	Small  float64
	Medium float64
	Large  float64

	// PairRatio is the fraction of tiles that belong to a deliberately
	// seeded sum-to-ten pair; AdjacentRatio is the fraction of those pairs
	// placed in orthogonally neighboring cells. Both decrease with level.
	PairRatio     float64
	AdjacentRatio float64

	// FillMin/FillMax bound the values used by the remainder fill.
	// Early levels use a narrow band of small digits.
	FillMin int
	FillMax int
}

// ChallengeTileCount is the fixed board size for challenge mode.
const ChallengeTileCount = 60

// ChallengeProfile is the fixed tuning for challenge boards.
var ChallengeProfile = Profile{
	Small: 0.20, Medium: 0.35, Large: 0.45,
	PairRatio: 0.50, AdjacentRatio: 0.30,
	FillMin: 4, FillMax: 9,
}

// bracket is one row of the level progression table.
type bracket struct {
	minLevel  int
	tileCount int
	profile   Profile
}

// brackets is the authoritative level progression. Tile counts are always
// even so the remainder fill can hit a multiple-of-ten total, and they
// saturate at the final bracket.
var brackets = []bracket{
	{1, 12, Profile{Small: 0.70, Medium: 0.25, Large: 0.05, PairRatio: 0.90, AdjacentRatio: 0.85, FillMin: 1, FillMax: 3}},
	{6, 16, Profile{Small: 0.55, Medium: 0.30, Large: 0.15, PairRatio: 0.80, AdjacentRatio: 0.70, FillMin: 1, FillMax: 4}},
	{11, 24, Profile{Small: 0.40, Medium: 0.35, Large: 0.25, PairRatio: 0.70, AdjacentRatio: 0.55, FillMin: 2, FillMax: 6}},
	{21, 36, Profile{Small: 0.30, Medium: 0.35, Large: 0.35, PairRatio: 0.60, AdjacentRatio: 0.40, FillMin: 3, FillMax: 7}},
	{36, 48, Profile{Small: 0.20, Medium: 0.35, Large: 0.45, PairRatio: 0.50, AdjacentRatio: 0.25, FillMin: 4, FillMax: 9}},
	{51, 60, Profile{Small: 0.15, Medium: 0.30, Large: 0.55, PairRatio: 0.40, AdjacentRatio: 0.15, FillMin: 5, FillMax: 9}},
}

// Resolve maps a level to its tile count and profile.
// Out-of-range levels clamp to the nearest bracket; there is no error case.
func Resolve(level int) (int, Profile) {
	if level < 1 {
		level = 1
	}
	b := brackets[0]
	for _, cand := range brackets {
		if level >= cand.minLevel {
			b = cand
		}
	}
	return b.tileCount, b.profile
}

// ResolveChallenge returns the fixed challenge configuration.
func ResolveChallenge() (int, Profile) {
	return ChallengeTileCount, ChallengeProfile
}

// Brackets returns the progression table as (minLevel, tileCount) rows,
// used by the debug endpoint.
func Brackets() [][2]int {
	out := make([][2]int, 0, len(brackets))
	for _, b := range brackets {
		out = append(out, [2]int{b.minLevel, b.tileCount})
	}
	return out
}

// ClassRatio returns the profile share for a digit's size class.
// Digits outside 1–9 weigh zero.
func (p Profile) ClassRatio(digit int) float64 {
	switch {
	case digit >= 1 && digit <= 3:
		return p.Small
	case digit >= 4 && digit <= 6:
		return p.Medium
	case digit >= 7 && digit <= 9:
		return p.Large
	}
	return 0
}
