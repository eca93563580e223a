package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		var va, vb uint64
		va, a = a.Next()
		vb, b = b.Next()
		require.Equal(t, va, vb, "draw %d diverged", i)
	}
}

func TestNextAdvancesState(t *testing.T) {
	s := New(1)
	v1, s := s.Next()
	v2, _ := s.Next()
	assert.NotEqual(t, v1, v2)
}

func TestIntnBounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		var v int
		v, s = s.Intn(13)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 13)
	}
}

func TestIntnZeroOrNegative(t *testing.T) {
	s := New(7)
	v, next := s.Intn(0)
	assert.Equal(t, 0, v)
	assert.Equal(t, s, next, "n<=0 must not advance the state")
	v, _ = s.Intn(-3)
	assert.Equal(t, 0, v)
}

func TestForLevelStable(t *testing.T) {
	assert.Equal(t, ForLevel(5, "salt"), ForLevel(5, "salt"))
	assert.NotEqual(t, ForLevel(5, "salt"), ForLevel(6, "salt"))
	assert.NotEqual(t, ForLevel(5, "salt"), ForLevel(5, "other"))
}

func TestForTokenStable(t *testing.T) {
	assert.Equal(t, ForToken("abc", "salt"), ForToken("abc", "salt"))
	assert.NotEqual(t, ForToken("abc", "salt"), ForToken("abd", "salt"))
}
