// internal/generator/placement.go
//
// Number placement for a single board attempt.
// Pipeline, in order:
//   1. adjacent pairing: seed sum-to-ten pairs in neighboring cells;
//   2. scattered pairing: remaining pair quota at arbitrary cells;
//   3. remainder fill: balance the leftover cells so the board total is a
//      multiple of ten;
//   4. large-digit separation: local-search swaps that pull identical big
//      digits apart.
// Every loop is bounded by an explicit attempt cap; on exhaustion a pass
// stops and reports a degraded Result instead of erroring. Solvability is
// checked downstream, not here.

package generator

import (
	"math"

	"github.com/maketen/go-server/internal/difficulty"
	"github.com/maketen/go-server/internal/rng"
)

// Attempt caps for the bounded passes.
const (
	adjacentAttemptsPerPair = 30
	maxAdjustPasses         = 12
	maxSeparationRounds     = 8
)

// pairTemplates are the sum-to-ten digit pairs the generator seeds.
var pairTemplates = [5][2]int{{1, 9}, {2, 8}, {3, 7}, {4, 6}, {5, 5}}

// Result reports how close a placement run came to its ideal targets.
// A degraded result is still a usable board; the solvability gate is the
// real correctness check.
type Result struct {
	PairsPlaced       int
	AdjacentPlaced    int
	PairsShort        bool // pair quota unmet within the attempt budget
	FillStalled       bool // remainder adjustment hit its pass cap
	SeparationStalled bool // separation budget ran out with conflicts left
}

// OK reports whether every pass reached its ideal target.
func (r Result) OK() bool {
	return !r.PairsShort && !r.FillStalled && !r.SeparationStalled
}

// PlaceNumbers fills a rows x cols grid with tileCount digits according to
// the difficulty profile. The first tileCount row-major cells receive
// values; any over-allocated cells stay empty.
func PlaceNumbers(rows, cols, tileCount int, p difficulty.Profile, st rng.State) ([]int, rng.State, Result) {
	tiles := make([]int, rows*cols)
	if tileCount > len(tiles) {
		tileCount = len(tiles)
	}
	var res Result

	pairCount := int(float64(tileCount/2) * p.PairRatio)
	adjacentCount := int(float64(pairCount) * p.AdjacentRatio)

	st = placeAdjacentPairs(tiles, cols, tileCount, adjacentCount, p, st, &res)
	st = placeScatteredPairs(tiles, tileCount, pairCount, p, st, &res)
	st = fillRemainder(tiles, tileCount, p, st, &res)
	st = separateLargeDigits(tiles, rows, cols, tileCount, st, &res)

	return tiles, st, res
}

// pickTemplate draws a sum-to-ten pair by sampling one anchor digit from
// the profile's class distribution and taking its ten-complement. A small
// or large anchor yields a small/large pair, a medium anchor a pure-medium
// one, so the profile's class mix directly shapes which templates appear.
func pickTemplate(p difficulty.Profile, st rng.State) ([2]int, rng.State) {
	wSmall := int(p.Small * 1000)
	wMedium := int(p.Medium * 1000)
	total := wSmall + wMedium + int(p.Large*1000)
	if total == 0 {
		idx, next := st.Intn(len(pairTemplates))
		return pairTemplates[idx], next
	}
	draw, st := st.Intn(total)
	classLo := 1
	switch {
	case draw < wSmall:
	case draw < wSmall+wMedium:
		classLo = 4
	default:
		classLo = 7
	}
	off, st := st.Intn(3)
	d := classLo + off
	if d > 5 {
		d = 10 - d
	}
	return [2]int{d, 10 - d}, st
}

// placeAdjacentPairs seeds up to target pairs in orthogonally neighboring
// cells. Each pair gets a capped number of random placement attempts; the
// pass stops early once a pair's budget runs out.
func placeAdjacentPairs(tiles []int, cols, tileCount, target int, p difficulty.Profile, st rng.State, res *Result) rng.State {
	dirs := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	rows := len(tiles) / cols

	for res.AdjacentPlaced < target {
		placed := false
		for attempt := 0; attempt < adjacentAttemptsPerPair && !placed; attempt++ {
			var tpl [2]int
			tpl, st = pickTemplate(p, st)
			var idx, d0 int
			idx, st = st.Intn(tileCount)
			if tiles[idx] != 0 {
				continue
			}
			d0, st = st.Intn(4)
			r, c := idx/cols, idx%cols
			for k := 0; k < 4; k++ {
				d := dirs[(d0+k)%4]
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				nidx := nr*cols + nc
				if nidx >= tileCount || tiles[nidx] != 0 {
					continue
				}
				tiles[idx], tiles[nidx] = tpl[0], tpl[1]
				placed = true
				break
			}
		}
		if !placed {
			res.PairsShort = true
			return st
		}
		res.AdjacentPlaced++
		res.PairsPlaced++
	}
	return st
}

// placeScatteredPairs fills the rest of the pair quota at two arbitrary
// empty cells, no adjacency required.
func placeScatteredPairs(tiles []int, tileCount, pairTarget int, p difficulty.Profile, st rng.State, res *Result) rng.State {
	for res.PairsPlaced < pairTarget {
		empties := emptyIndices(tiles, tileCount)
		if len(empties) < 2 {
			res.PairsShort = true
			return st
		}
		var tpl [2]int
		tpl, st = pickTemplate(p, st)
		var i, j int
		i, st = st.Intn(len(empties))
		j, st = st.Intn(len(empties) - 1)
		if j >= i {
			j++
		}
		tiles[empties[i]], tiles[empties[j]] = tpl[0], tpl[1]
		res.PairsPlaced++
	}
	return st
}

// fillRemainder assigns the cells not consumed by pairs so the total board
// sum is a multiple of ten. The target sum is the multiple of ten nearest
// n times the band's profile-weighted mean digit, so the fill carries the
// profile's class skew: small totals early, large totals late. The band
// widens to [1,9] when it cannot reach any multiple of ten. Values are
// distributed evenly and then adjusted by one, cell by cell, until the
// target is hit. A bounded sum-preserving shuffle afterwards keeps the
// remainder cells from all looking identical.
func fillRemainder(tiles []int, tileCount int, p difficulty.Profile, st rng.State, res *Result) rng.State {
	empties := emptyIndices(tiles, tileCount)
	n := len(empties)
	if n == 0 {
		return st
	}

	lo, hi := clampBand(p.FillMin, p.FillMax)
	if ((n*lo+9)/10)*10 > n*hi {
		lo, hi = 1, 9
	}
	target := int(math.Round(float64(n)*bandMean(lo, hi, p)/10)) * 10
	if min := ((n*lo + 9) / 10) * 10; target < min {
		target = min
	}
	if max := (n * hi / 10) * 10; target > max {
		target = max
	}
	if target < n*lo || target > n*hi {
		// No multiple of ten fits even the widest band; settle for the
		// closest total the band allows.
		res.FillStalled = true
		target = (n * hi / 10) * 10
		if target < n*lo {
			target = n * lo
		}
	}

	base := target / n
	for _, idx := range empties {
		tiles[idx] = base
	}
	deficit := target - base*n
	for pass := 0; pass < maxAdjustPasses && deficit > 0; pass++ {
		for _, idx := range empties {
			if deficit == 0 {
				break
			}
			if tiles[idx] < hi {
				tiles[idx]++
				deficit--
			}
		}
	}
	if deficit > 0 {
		res.FillStalled = true
	}

	// Sum-preserving jitter within the band.
	for k := 0; k < 2*n; k++ {
		var i, j int
		i, st = st.Intn(n)
		j, st = st.Intn(n)
		if i == j {
			continue
		}
		if tiles[empties[i]] < hi && tiles[empties[j]] > lo {
			tiles[empties[i]]++
			tiles[empties[j]]--
		}
	}
	return st
}

// bandMean is the mean digit over [lo,hi], each digit weighted by the
// ratio of its class. Unweighted midpoint when the profile zeroes out the
// whole band.
func bandMean(lo, hi int, p difficulty.Profile) float64 {
	var sum, w float64
	for d := lo; d <= hi; d++ {
		r := p.ClassRatio(d)
		sum += float64(d) * r
		w += r
	}
	if w == 0 {
		return float64(lo+hi) / 2
	}
	return sum / w
}

// clampBand keeps the fill band inside [1,9] with lo <= hi.
func clampBand(lo, hi int) (int, int) {
	if lo < 1 {
		lo = 1
	}
	if hi > 9 {
		hi = 9
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// emptyIndices lists the unfilled cells inside the placed region.
func emptyIndices(tiles []int, tileCount int) []int {
	out := make([]int, 0, tileCount)
	for i := 0; i < tileCount; i++ {
		if tiles[i] == 0 {
			out = append(out, i)
		}
	}
	return out
}
