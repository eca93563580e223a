package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maketen/go-server/internal/board"
	"github.com/maketen/go-server/internal/rng"
)

// findTen locates the first clearable rectangle, the same way the
// solvability check scans.
func findTen(b board.Board) (board.Rect, bool) {
	occupied := []int{}
	for i, v := range b.Tiles {
		if v != 0 {
			occupied = append(occupied, i)
		}
	}
	for i := 0; i < len(occupied); i++ {
		for j := i + 1; j < len(occupied); j++ {
			r := board.NewRect(occupied[i]/b.Width, occupied[i]%b.Width,
				occupied[j]/b.Width, occupied[j]%b.Width)
			if b.RectSum(r) == 10 {
				return r, true
			}
		}
	}
	return board.Rect{}, false
}

func TestNewSessionGeneratesSolvableBoard(t *testing.T) {
	s := New(1, rng.New(11), false, 0, 0)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, s.Rows*s.Cols, len(s.Board.Tiles))
	assert.True(t, s.Board.IsSolvable())
	assert.False(t, s.Degraded)
}

func TestNewSessionHonorsLayoutShape(t *testing.T) {
	s := New(1, rng.New(11), false, 2, 6)
	assert.Equal(t, 2, s.Board.Height)
	assert.Equal(t, 6, s.Board.Width)
}

func TestNewSessionRejectsTooSmallShape(t *testing.T) {
	// 2x2 cannot hold 12 tiles; the shape falls back to a square-ish fit.
	s := New(1, rng.New(11), false, 2, 2)
	assert.GreaterOrEqual(t, s.Rows*s.Cols, s.TileCount)
}

func TestApplyClearAccepts(t *testing.T) {
	s := New(1, rng.New(3), false, 0, 0)
	r, ok := findTen(s.Board)
	require.True(t, ok)

	removed := s.Board.CountNonZero(r)
	out, err := s.ApplyClear(r)
	require.NoError(t, err)
	assert.Equal(t, removed, out.Removed)
	assert.Equal(t, removed, out.Score)
	assert.Equal(t, 1, s.Clears)
	assert.Zero(t, out.Board.RectSum(r), "cleared cells are empty")
}

func TestApplyClearRejectsWrongSum(t *testing.T) {
	s := New(1, rng.New(3), false, 0, 0)
	before := s.Board
	// A single occupied cell holds at most 9 and can never be accepted.
	_, err := s.ApplyClear(board.NewRect(0, 0, 0, 0))
	assert.ErrorIs(t, err, board.ErrNotTen)
	assert.Equal(t, before, s.Board, "rejected selections leave the board alone")
	assert.Zero(t, s.Clears)
}

func TestApplyClearStateTransitions(t *testing.T) {
	s := New(1, rng.New(8), false, 0, 0)
	for i := 0; i < 100; i++ {
		r, ok := findTen(s.Board)
		if !ok {
			break
		}
		out, err := s.ApplyClear(r)
		require.NoError(t, err)
		switch out.State {
		case StateCleared:
			assert.True(t, s.Board.Cleared())
			return
		case StateStuck:
			assert.True(t, s.Stuck)
			assert.False(t, s.Board.IsSolvable())
			assert.False(t, s.Board.Cleared())
			return
		case StatePlaying:
			assert.True(t, s.Board.IsSolvable())
		}
	}
}

func TestChallengeRegeneratesOnEveryClear(t *testing.T) {
	s := New(0, rng.New(21), true, 0, 0)
	occupiedBefore := len(s.Board.Tiles) - countZero(s.Board)
	require.Equal(t, s.TileCount, occupiedBefore)

	r, ok := findTen(s.Board)
	require.True(t, ok)
	out, err := s.ApplyClear(r)
	require.NoError(t, err)

	assert.Equal(t, StatePlaying, out.State)
	assert.Equal(t, s.TileCount, len(s.Board.Tiles)-countZero(s.Board),
		"challenge board is fully repopulated after a clear")
	assert.Greater(t, s.Score, 0)
}

func TestRescueReplacesBoard(t *testing.T) {
	s := New(1, rng.New(13), false, 0, 0)
	s.Stuck = true
	b := s.Rescue()
	assert.False(t, s.Stuck)
	assert.True(t, b.IsSolvable())
	assert.Equal(t, b, s.Board)
}

func TestSessionSeedChainDeterministic(t *testing.T) {
	a := New(2, rng.New(77), false, 0, 0)
	b := New(2, rng.New(77), false, 0, 0)
	require.Equal(t, a.Board, b.Board)

	a.Rescue()
	b.Rescue()
	assert.Equal(t, a.Board, b.Board, "regeneration follows the same seed chain")
}

func countZero(b board.Board) int {
	n := 0
	for _, v := range b.Tiles {
		if v == 0 {
			n++
		}
	}
	return n
}
