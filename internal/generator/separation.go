// internal/generator/separation.go
//
// Large-digit separation pass: a local-search heuristic that swaps 7/8/9
// tiles apart when two identical ones sit in neighboring cells. Swaps are
// staged against an immutable snapshot and applied atomically per round;
// a round that fails to reduce the conflict count is reverted and ends the
// search. Best-effort only; boards with remaining conflicts are still valid.

package generator

import "github.com/maketen/go-server/internal/rng"

// separateLargeDigits runs bounded rounds of staged swaps over the placed
// region. Stops when no conflicts remain, no improving round exists, or the
// round budget runs out.
func separateLargeDigits(tiles []int, rows, cols, tileCount int, st rng.State, res *Result) rng.State {
	for round := 0; round < maxSeparationRounds; round++ {
		before := conflictCount(tiles, rows, cols, tileCount)
		if before == 0 {
			return st
		}

		snapshot := make([]int, len(tiles))
		copy(snapshot, tiles)
		var swaps [][2]int
		swaps, st = stageSwaps(snapshot, rows, cols, tileCount, st)
		if len(swaps) == 0 {
			res.SeparationStalled = true
			return st
		}
		for _, sw := range swaps {
			snapshot[sw[0]], snapshot[sw[1]] = snapshot[sw[1]], snapshot[sw[0]]
		}

		// Staged swaps were scored independently; verify the combined
		// effect and revert the whole round if they interfered.
		if conflictCount(snapshot, rows, cols, tileCount) >= before {
			res.SeparationStalled = true
			return st
		}
		copy(tiles, snapshot)
	}
	if conflictCount(tiles, rows, cols, tileCount) > 0 {
		res.SeparationStalled = true
	}
	return st
}

// stageSwaps proposes non-overlapping swaps, each individually reducing the
// conflict count when applied to the snapshot alone. Cells are visited in
// shuffled order so successive rounds do not keep chasing the same corner.
func stageSwaps(snapshot []int, rows, cols, tileCount int, st rng.State) ([][2]int, rng.State) {
	order := make([]int, tileCount)
	for i := range order {
		order[i] = i
	}
	for i := tileCount - 1; i > 0; i-- {
		var j int
		j, st = st.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	base := conflictCount(snapshot, rows, cols, tileCount)
	used := make(map[int]bool)
	var swaps [][2]int

	for _, i := range order {
		if used[i] || snapshot[i] < 7 || !hasConflict(snapshot, rows, cols, tileCount, i) {
			continue
		}
		for j := 0; j < tileCount; j++ {
			if j == i || used[j] || snapshot[j] < 7 || snapshot[j] == snapshot[i] {
				continue
			}
			snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
			better := conflictCount(snapshot, rows, cols, tileCount) < base
			snapshot[i], snapshot[j] = snapshot[j], snapshot[i]
			if better {
				swaps = append(swaps, [2]int{i, j})
				used[i], used[j] = true, true
				break
			}
		}
	}
	return swaps, st
}

// conflictCount totals orthogonal adjacencies of identical large digits.
// Each adjacency is counted once via its right and down neighbors.
func conflictCount(tiles []int, rows, cols, tileCount int) int {
	n := 0
	for i := 0; i < tileCount; i++ {
		if tiles[i] < 7 {
			continue
		}
		r, c := i/cols, i%cols
		if c+1 < cols && i+1 < tileCount && tiles[i+1] == tiles[i] {
			n++
		}
		if r+1 < rows && i+cols < tileCount && tiles[i+cols] == tiles[i] {
			n++
		}
	}
	return n
}

// hasConflict reports whether cell i neighbors an identical large digit.
func hasConflict(tiles []int, rows, cols, tileCount, i int) bool {
	r, c := i/cols, i%cols
	neighbors := [4][2]int{{r - 1, c}, {r + 1, c}, {r, c - 1}, {r, c + 1}}
	for _, nb := range neighbors {
		nr, nc := nb[0], nb[1]
		if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
			continue
		}
		nidx := nr*cols + nc
		if nidx < tileCount && tiles[nidx] == tiles[i] {
			return true
		}
	}
	return false
}
