// internal/board/solvable.go
//
// Solvability check: does at least one clearable rectangle exist?
// Used as the post-generation acceptance gate and again after every clear
// to detect a stuck board that needs the rescue flow.

package board

// IsSolvable reports whether some axis-aligned rectangle sums to exactly
// ten. It scans every unordered pair of occupied cells, treats the pair as
// opposite corners of an inclusive bounding box, and sums the box; the first
// hit wins. Tile counts are capped by the difficulty resolver, so the
// combinatorial scan stays cheap.
func (b Board) IsSolvable() bool {
	occupied := make([]int, 0, len(b.Tiles))
	for i, v := range b.Tiles {
		if v != 0 {
			occupied = append(occupied, i)
		}
	}
	for i := 0; i < len(occupied); i++ {
		r1, c1 := occupied[i]/b.Width, occupied[i]%b.Width
		for j := i + 1; j < len(occupied); j++ {
			r2, c2 := occupied[j]/b.Width, occupied[j]%b.Width
			if b.RectSum(NewRect(r1, c1, r2, c2)) == 10 {
				return true
			}
		}
	}
	return false
}
