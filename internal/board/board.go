// internal/board/board.go
//
// Board value type and the game's single clearing rule.
// A Board is a rectangular grid of digits 0–9 where 0 marks an empty cell.
// The only way to remove tiles is to select an axis-aligned rectangle whose
// contained values sum to exactly ten; Clear returns a new Board rather than
// mutating in place, so a session's history is a chain of immutable values.

package board

import "errors"

var (
	// ErrNotTen rejects a selection whose contents do not sum to ten.
	ErrNotTen = errors.New("selection does not sum to ten")
	// ErrOutOfRange rejects a selection outside the grid.
	ErrOutOfRange = errors.New("selection out of range")
)

// Board is a generated puzzle instance. Tiles is row-major and always holds
// exactly Width*Height entries.
type Board struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Tiles  []int `json:"tiles"`
}

// Rect is an inclusive axis-aligned selection between two corner cells.
// This is the shape reported by the gesture layer after a drag.
type Rect struct {
	StartRow int `json:"startRow"`
	StartCol int `json:"startCol"`
	EndRow   int `json:"endRow"`
	EndCol   int `json:"endCol"`
}

// NewRect builds a normalized Rect (start <= end on both axes) from any two
// corner cells.
func NewRect(r1, c1, r2, c2 int) Rect {
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	return Rect{StartRow: r1, StartCol: c1, EndRow: r2, EndCol: c2}
}

// Normalize returns the rect with corners ordered start <= end.
func (r Rect) Normalize() Rect {
	return NewRect(r.StartRow, r.StartCol, r.EndRow, r.EndCol)
}

// New returns an empty board of the given dimensions.
func New(width, height int) Board {
	return Board{Width: width, Height: height, Tiles: make([]int, width*height)}
}

// At returns the value at (row, col), or 0 outside the grid.
func (b Board) At(row, col int) int {
	if row < 0 || row >= b.Height || col < 0 || col >= b.Width {
		return 0
	}
	return b.Tiles[row*b.Width+col]
}

// inRange reports whether the rect lies fully inside the grid.
func (b Board) inRange(r Rect) bool {
	return r.StartRow >= 0 && r.StartCol >= 0 &&
		r.EndRow < b.Height && r.EndCol < b.Width &&
		r.StartRow <= r.EndRow && r.StartCol <= r.EndCol
}

// RectSum sums every value inside the rect's inclusive bounding box.
// Empty cells contribute nothing. This is the authoritative rule the
// presentation layer must replicate when validating a drag selection.
func (b Board) RectSum(r Rect) int {
	r = r.Normalize()
	sum := 0
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			sum += b.At(row, col)
		}
	}
	return sum
}

// CountNonZero returns the number of occupied cells inside the rect.
func (b Board) CountNonZero(r Rect) int {
	r = r.Normalize()
	n := 0
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			if b.At(row, col) != 0 {
				n++
			}
		}
	}
	return n
}

// Clear validates the selection and returns a new Board with the rect's
// cells set to empty. The receiver is never modified.
func (b Board) Clear(r Rect) (Board, error) {
	r = r.Normalize()
	if !b.inRange(r) {
		return b, ErrOutOfRange
	}
	if b.RectSum(r) != 10 {
		return b, ErrNotTen
	}
	tiles := make([]int, len(b.Tiles))
	copy(tiles, b.Tiles)
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			tiles[row*b.Width+col] = 0
		}
	}
	return Board{Width: b.Width, Height: b.Height, Tiles: tiles}, nil
}

// Cleared reports whether no occupied cells remain (level complete).
func (b Board) Cleared() bool {
	for _, v := range b.Tiles {
		if v != 0 {
			return false
		}
	}
	return true
}

// NonZeroSum totals every occupied cell; on non-challenge boards this is
// always a multiple of ten.
func (b Board) NonZeroSum() int {
	sum := 0
	for _, v := range b.Tiles {
		sum += v
	}
	return sum
}
