// internal/generator/generator.go
//
// Board generation with the solvability acceptance gate.
// Generate resolves difficulty and grid shape for a level (or challenge
// mode) and runs number placement; a freshly placed board that fails the
// solvability check is discarded and regenerated with the advanced seed
// state, up to a small retry cap. After the cap the last board is accepted
// anyway and flagged, deferring recovery to the runtime rescue flow.

package generator

import (
	"github.com/rs/zerolog/log"

	"github.com/maketen/go-server/internal/board"
	"github.com/maketen/go-server/internal/difficulty"
	"github.com/maketen/go-server/internal/layout"
	"github.com/maketen/go-server/internal/rng"
)

// maxRegenAttempts caps whole-board regenerations on unsolvable output.
const maxRegenAttempts = 5

// Stats describes how a board was produced.
type Stats struct {
	Attempts   int    // placement attempts consumed (1 = first try accepted)
	Unsolvable bool   // true when the retry cap ran out and the board was accepted anyway
	TileCount  int    // occupied cells requested
	Place      Result // outcome of the accepted board's placement passes
}

// Generate builds a board for a level from a seed state. Challenge mode
// ignores the level and uses the fixed challenge configuration. The grid
// shape targets a square aspect; callers with real display bounds should
// resolve the shape themselves and use GenerateOn.
func Generate(level int, st rng.State, challenge bool) (board.Board, rng.State, Stats) {
	tileCount, prof := difficulty.Resolve(level)
	if challenge {
		tileCount, prof = difficulty.ResolveChallenge()
	}
	rows, cols := layout.SolveGridDims(tileCount, 1.0)
	return GenerateOn(rows, cols, tileCount, prof, st)
}

// GenerateOn builds a board on an already-resolved grid shape, running the
// placement pipeline under the solvability gate.
func GenerateOn(rows, cols, tileCount int, prof difficulty.Profile, st rng.State) (board.Board, rng.State, Stats) {
	stats := Stats{TileCount: tileCount}
	var b board.Board
	for attempt := 1; attempt <= maxRegenAttempts; attempt++ {
		var tiles []int
		var res Result
		tiles, st, res = PlaceNumbers(rows, cols, tileCount, prof, st)
		b = board.Board{Width: cols, Height: rows, Tiles: tiles}
		stats.Attempts = attempt
		stats.Place = res

		if sum := b.NonZeroSum(); sum%10 != 0 {
			// The remainder fill should make this impossible; a hit here is
			// a logic defect, not a runtime condition to tolerate silently.
			log.Warn().Int("sum", sum).Int("tiles", tileCount).Msg("board sum not a multiple of ten")
		}
		if b.IsSolvable() {
			return b, st, stats
		}
	}
	stats.Unsolvable = true
	log.Warn().Int("tiles", tileCount).Int("attempts", stats.Attempts).Msg("accepting unsolvable board after retry cap")
	return b, st, stats
}
