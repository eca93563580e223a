// internal/game/engine.go
//
// Game engine for a single make-ten session.
// Responsibilities:
//   - Create sessions with a resolved grid shape and a first generated board.
//   - Validate and apply rectangle selections (the sum-to-ten rule).
//   - Track state transitions: playing → cleared / stuck.
//   - Regenerate boards: on every clear in challenge mode, and on rescue.
//
// Notes:
//   - Board values are immutable; each clear swaps in a new Board.
//   - The seed state is threaded through every regeneration, so a session
//     replays identically from its initial seed.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/maketen/go-server/internal/board"
	"github.com/maketen/go-server/internal/difficulty"
	"github.com/maketen/go-server/internal/generator"
	"github.com/maketen/go-server/internal/layout"
	"github.com/maketen/go-server/internal/rng"
)

// New constructs a session and generates its first board.
// rows/cols may come from a display-fitted layout; when unset (or too small
// for the tile count) the shape is resolved for a square aspect.
func New(level int, seed rng.State, challenge bool, rows, cols int) *Session {
	tileCount, prof := difficulty.Resolve(level)
	if challenge {
		tileCount, prof = difficulty.ResolveChallenge()
	}
	if rows <= 0 || cols <= 0 || rows*cols < tileCount {
		rows, cols = layout.SolveGridDims(tileCount, 1.0)
	}

	s := &Session{
		ID:        randomID(),
		Level:     level,
		Challenge: challenge,
		Rows:      rows,
		Cols:      cols,
		TileCount: tileCount,
		Profile:   prof,
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}
	s.regenerate()
	return s
}

// ApplyClear validates and applies a selection, producing the next board.
//
// Rules:
//   - The selection's inclusive bounding box must sum to exactly ten;
//     anything else is rejected with no state change.
//   - Challenge mode regenerates a fresh board after every accepted clear.
//   - Otherwise: an emptied board is "cleared"; a board with no remaining
//     clearable rectangle is "stuck" (the rescue choice belongs to the
//     caller); anything else stays "playing".
func (s *Session) ApplyClear(r board.Rect) (ClearOutcome, error) {
	removed := s.Board.CountNonZero(r)
	next, err := s.Board.Clear(r)
	if err != nil {
		return ClearOutcome{}, err
	}
	s.Board = next
	s.Clears++
	s.Score += removed

	if s.Challenge {
		s.regenerate()
		return ClearOutcome{Removed: removed, State: StatePlaying, Board: s.Board, Score: s.Score}, nil
	}

	state := StatePlaying
	switch {
	case next.Cleared():
		state = StateCleared
	case !next.IsSolvable():
		s.Stuck = true
		state = StateStuck
	}
	return ClearOutcome{Removed: removed, State: state, Board: s.Board, Score: s.Score}, nil
}

// Rescue replaces a stuck board with a freshly generated one. This is the
// "regenerate" arm of the rescue choice; "exit" is simply discarding the
// session.
func (s *Session) Rescue() board.Board {
	s.regenerate()
	s.Stuck = false
	return s.Board
}

// regenerate builds the next board from the session's seed chain.
func (s *Session) regenerate() {
	b, seed, stats := generator.GenerateOn(s.Rows, s.Cols, s.TileCount, s.Profile, s.Seed)
	s.Board = b
	s.Seed = seed
	s.Degraded = stats.Unsolvable
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
