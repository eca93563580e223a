package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maketen/go-server/internal/board"
	"github.com/maketen/go-server/internal/difficulty"
	"github.com/maketen/go-server/internal/rng"
)

func TestGenerateDeterministic(t *testing.T) {
	for _, level := range []int{1, 7, 15, 30, 60} {
		b1, s1, _ := Generate(level, rng.New(99), false)
		b2, s2, _ := Generate(level, rng.New(99), false)
		require.Equal(t, b1, b2, "level %d boards diverged for the same seed", level)
		require.Equal(t, s1, s2)
	}
}

func TestGenerateTileInvariants(t *testing.T) {
	for _, level := range []int{1, 6, 11, 21, 36, 51} {
		for seed := uint64(0); seed < 5; seed++ {
			b, _, stats := Generate(level, rng.New(seed), false)
			require.Len(t, b.Tiles, b.Width*b.Height)
			require.GreaterOrEqual(t, b.Width*b.Height, stats.TileCount)

			occupied := 0
			for _, v := range b.Tiles {
				require.GreaterOrEqual(t, v, 0)
				require.LessOrEqual(t, v, 9)
				if v != 0 {
					occupied++
				}
			}
			require.Equal(t, stats.TileCount, occupied, "every placed cell holds a digit")
		}
	}
}

func TestGenerateSumMultipleOfTen(t *testing.T) {
	for _, level := range []int{1, 10, 25, 50} {
		for seed := uint64(0); seed < 10; seed++ {
			b, _, _ := Generate(level, rng.New(seed), false)
			require.Zerof(t, b.NonZeroSum()%10, "level %d seed %d sum %d", level, seed, b.NonZeroSum())
		}
	}
}

func TestGenerateSolvable(t *testing.T) {
	for _, level := range []int{1, 12, 40} {
		for seed := uint64(0); seed < 10; seed++ {
			b, _, stats := Generate(level, rng.New(seed), false)
			require.False(t, stats.Unsolvable, "level %d seed %d", level, seed)
			require.True(t, b.IsSolvable())
		}
	}
}

func TestGenerateChallengeUsesFixedCount(t *testing.T) {
	b, _, stats := Generate(3, rng.New(1), true)
	assert.Equal(t, difficulty.ChallengeTileCount, stats.TileCount)
	occupied := 0
	for _, v := range b.Tiles {
		if v != 0 {
			occupied++
		}
	}
	assert.Equal(t, difficulty.ChallengeTileCount, occupied)
}

func TestEasyLevelSeedsAdjacentPair(t *testing.T) {
	// Level 1 seeds nearly all of its pairs adjacently, so a clearable
	// side-by-side pair should be present.
	b, _, _ := Generate(1, rng.New(4), false)
	assert.True(t, hasAdjacentTen(b))
}

func TestDigitClassesFollowProfile(t *testing.T) {
	// Aggregated over many seeds: late boards are dominated by large digits
	// while small digits recede, and early boards hold a clearly larger
	// small-digit share than late ones. Sum-to-ten pairing caps how far the
	// skew can go (a small digit's pair partner is always large), so the
	// assertions are on dominance and direction rather than the raw ratios.
	easy := digitClassShares(t, 1)
	hard := digitClassShares(t, 60)

	assert.Greater(t, hard[2], 0.45, "large digits dominate late boards")
	assert.Greater(t, hard[2], hard[1])
	assert.Greater(t, hard[2], hard[0])
	assert.Less(t, hard[0], 0.2)

	assert.Greater(t, easy[0], hard[0]+0.1, "small digits recede with level")
	assert.Less(t, easy[2], hard[2])
}

// digitClassShares buckets every digit of 50 generated boards for a level
// into small (1-3), medium (4-6), large (7-9) shares.
func digitClassShares(t *testing.T, level int) [3]float64 {
	t.Helper()
	var counts [3]int
	total := 0
	for seed := uint64(0); seed < 50; seed++ {
		b, _, _ := Generate(level, rng.New(seed), false)
		for _, v := range b.Tiles {
			if v == 0 {
				continue
			}
			counts[(v-1)/3]++
			total++
		}
	}
	var shares [3]float64
	for i, c := range counts {
		shares[i] = float64(c) / float64(total)
	}
	return shares
}

func TestPlaceNumbersOverAllocation(t *testing.T) {
	// 4x4 grid, 12 tiles: the four trailing cells stay empty.
	_, prof := difficulty.Resolve(1)
	tiles, _, _ := PlaceNumbers(4, 4, 12, prof, rng.New(5))
	require.Len(t, tiles, 16)
	for i := 12; i < 16; i++ {
		assert.Zero(t, tiles[i], "cell %d is outside the placed region", i)
	}
	for i := 0; i < 12; i++ {
		assert.NotZero(t, tiles[i])
	}
}

func TestPlaceNumbersPairQuota(t *testing.T) {
	tileCount, prof := difficulty.Resolve(1)
	_, _, res := PlaceNumbers(4, 3, tileCount, prof, rng.New(2))
	wantPairs := int(float64(tileCount/2) * prof.PairRatio)
	assert.Equal(t, wantPairs, res.PairsPlaced)
	assert.False(t, res.PairsShort)
}

func TestSeparationReducesConflicts(t *testing.T) {
	// Hand-built worst case: two 9s side by side with a distant 8 to swap
	// toward. One staged round must remove the adjacency.
	tiles := []int{9, 9, 1, 1, 1, 1, 1, 1, 8}
	var res Result
	separateLargeDigits(tiles, 3, 3, 9, rng.New(0), &res)
	assert.Zero(t, conflictCount(tiles, 3, 3, 9))
}

func TestSeparationLeavesCleanBoardAlone(t *testing.T) {
	tiles := []int{9, 1, 9, 1, 9, 1, 9, 1, 9}
	want := append([]int(nil), tiles...)
	var res Result
	separateLargeDigits(tiles, 3, 3, 9, rng.New(0), &res)
	assert.Equal(t, want, tiles)
	assert.False(t, res.SeparationStalled)
}

// hasAdjacentTen reports whether two orthogonal neighbors sum to ten.
func hasAdjacentTen(b board.Board) bool {
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			v := b.At(r, c)
			if v == 0 {
				continue
			}
			if right := b.At(r, c+1); right != 0 && v+right == 10 {
				return true
			}
			if down := b.At(r+1, c); down != 0 && v+down == 10 {
				return true
			}
		}
	}
	return false
}
