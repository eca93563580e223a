package difficulty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatiosSumToOne(t *testing.T) {
	for level := 1; level <= 60; level++ {
		_, p := Resolve(level)
		assert.InDelta(t, 1.0, p.Small+p.Medium+p.Large, 1e-9, "level %d", level)
	}
	_, p := ResolveChallenge()
	assert.InDelta(t, 1.0, p.Small+p.Medium+p.Large, 1e-9)
}

func TestTileCountMonotonic(t *testing.T) {
	prev := 0
	for level := 1; level <= 120; level++ {
		n, _ := Resolve(level)
		require.GreaterOrEqual(t, n, prev, "level %d", level)
		prev = n
	}
}

func TestTileCountsEven(t *testing.T) {
	for level := 1; level <= 120; level++ {
		n, _ := Resolve(level)
		require.Zero(t, n%2, "level %d tile count %d must be even", level, n)
	}
	n, _ := ResolveChallenge()
	assert.Zero(t, n%2)
}

func TestPairRatiosDecrease(t *testing.T) {
	prevPair, prevAdj := 2.0, 2.0
	for _, b := range brackets {
		require.LessOrEqual(t, b.profile.PairRatio, prevPair, "bracket L%d", b.minLevel)
		require.LessOrEqual(t, b.profile.AdjacentRatio, prevAdj, "bracket L%d", b.minLevel)
		prevPair, prevAdj = b.profile.PairRatio, b.profile.AdjacentRatio
	}
}

func TestFillBandsRiseWithLevel(t *testing.T) {
	// Harder brackets draw remainder values from a higher floor so late
	// boards skew toward large digits.
	prevMin := 0
	for _, b := range brackets {
		require.GreaterOrEqual(t, b.profile.FillMin, prevMin, "bracket L%d", b.minLevel)
		require.LessOrEqual(t, b.profile.FillMin, b.profile.FillMax, "bracket L%d", b.minLevel)
		require.GreaterOrEqual(t, b.profile.FillMin, 1, "bracket L%d", b.minLevel)
		require.LessOrEqual(t, b.profile.FillMax, 9, "bracket L%d", b.minLevel)
		prevMin = b.profile.FillMin
	}
}

func TestOutOfRangeClamps(t *testing.T) {
	nLow, pLow := Resolve(-5)
	nOne, pOne := Resolve(1)
	assert.Equal(t, nOne, nLow)
	assert.Equal(t, pOne, pLow)

	nHigh, _ := Resolve(10000)
	nLast, _ := Resolve(51)
	assert.Equal(t, nLast, nHigh, "tile count saturates past the final bracket")
}

func TestChallengeFixed(t *testing.T) {
	n, p := ResolveChallenge()
	assert.Equal(t, ChallengeTileCount, n)
	assert.Equal(t, ChallengeProfile, p)
}

func TestClassRatio(t *testing.T) {
	p := Profile{Small: 0.5, Medium: 0.3, Large: 0.2}
	assert.Equal(t, 0.5, p.ClassRatio(2))
	assert.Equal(t, 0.3, p.ClassRatio(5))
	assert.Equal(t, 0.2, p.ClassRatio(9))
	assert.Zero(t, p.ClassRatio(0))
	assert.Zero(t, p.ClassRatio(10))
}
