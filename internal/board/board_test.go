package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fromRows builds a board from row slices, for readable fixtures.
func fromRows(rows ...[]int) Board {
	b := New(len(rows[0]), len(rows))
	for r, row := range rows {
		for c, v := range row {
			b.Tiles[r*b.Width+c] = v
		}
	}
	return b
}

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(3, 4, 1, 2)
	assert.Equal(t, Rect{StartRow: 1, StartCol: 2, EndRow: 3, EndCol: 4}, r)
}

func TestRectSumInclusiveBox(t *testing.T) {
	b := fromRows(
		[]int{1, 2, 3},
		[]int{4, 0, 6},
		[]int{7, 8, 9},
	)
	assert.Equal(t, 1, b.RectSum(NewRect(0, 0, 0, 0)))
	assert.Equal(t, 3, b.RectSum(NewRect(0, 0, 0, 1)))
	// Empty cell inside the box contributes nothing.
	assert.Equal(t, 13, b.RectSum(NewRect(0, 0, 1, 1)))
	assert.Equal(t, 40, b.RectSum(NewRect(0, 0, 2, 2)))
	// Corners given in reverse order still mean the same box.
	assert.Equal(t, b.RectSum(NewRect(2, 2, 0, 0)), b.RectSum(NewRect(0, 0, 2, 2)))
}

func TestClearAcceptsExactTen(t *testing.T) {
	b := fromRows(
		[]int{1, 9, 3},
		[]int{4, 5, 6},
	)
	next, err := b.Clear(NewRect(0, 0, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, next.At(0, 0))
	assert.Zero(t, next.At(0, 1))
	assert.Equal(t, 3, next.At(0, 2), "cells outside the box are untouched")
	// Receiver is immutable.
	assert.Equal(t, 1, b.At(0, 0))
	assert.Equal(t, 9, b.At(0, 1))
}

func TestClearRejectsWrongSum(t *testing.T) {
	b := fromRows([]int{3, 4})
	_, err := b.Clear(NewRect(0, 0, 0, 1))
	assert.ErrorIs(t, err, ErrNotTen)
	// A single cell can never reach ten.
	_, err = b.Clear(NewRect(0, 0, 0, 0))
	assert.ErrorIs(t, err, ErrNotTen)
}

func TestClearRejectsOutOfRange(t *testing.T) {
	b := fromRows([]int{1, 9})
	_, err := b.Clear(Rect{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 1})
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.Clear(Rect{StartRow: -1, StartCol: 0, EndRow: 0, EndCol: 0})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestClearedAndNonZeroSum(t *testing.T) {
	b := fromRows([]int{5, 5})
	assert.False(t, b.Cleared())
	assert.Equal(t, 10, b.NonZeroSum())

	next, err := b.Clear(NewRect(0, 0, 0, 1))
	require.NoError(t, err)
	assert.True(t, next.Cleared())
	assert.Zero(t, next.NonZeroSum())
}

func TestIsSolvableRowPair(t *testing.T) {
	b := fromRows([]int{1, 9, 5})
	assert.True(t, b.IsSolvable())
}

func TestIsSolvableEmptyCornerBox(t *testing.T) {
	// The only ten is the 2x2 box spanned by the off-diagonal cells.
	b := fromRows(
		[]int{0, 1},
		[]int{9, 0},
	)
	assert.True(t, b.IsSolvable())
}

func TestIsSolvableFalse(t *testing.T) {
	// No rectangle sums to ten anywhere: all nines.
	b := fromRows(
		[]int{9, 9},
		[]int{9, 9},
	)
	assert.False(t, b.IsSolvable())

	assert.False(t, New(3, 3).IsSolvable(), "empty board has nothing to clear")
}
