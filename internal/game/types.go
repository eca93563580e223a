// internal/game/types.go
//
// Core type definitions for the make-ten game engine.
// Defines:
//   - Session: state for a single in-progress game (one board at a time).
//   - ClearOutcome: result of applying a rectangle selection.

package game

import (
	"time"

	"github.com/maketen/go-server/internal/board"
	"github.com/maketen/go-server/internal/difficulty"
	"github.com/maketen/go-server/internal/rng"
)

// Session state strings reported to the presentation layer.
const (
	StatePlaying = "playing"
	StateCleared = "cleared" // no occupied cells remain (level complete)
	StateStuck   = "stuck"   // no clearable rectangle left; rescue decision is external
)

// Session holds the state of a single game. Only one board is active per
// session; clears replace Board with a new value rather than mutating it.
type Session struct {
	ID        string             // Unique session identifier (random hex string).
	Level     int                // Level the session was started for.
	Challenge bool               // Challenge mode: fixed size, regenerates on every clear.
	Rows      int                // Grid rows resolved at session start.
	Cols      int                // Grid cols resolved at session start.
	TileCount int                // Occupied cells per generated board.
	Profile   difficulty.Profile // Tuning used for every (re)generation.
	Board     board.Board        // Current board value.
	Seed      rng.State          // Seed state after the latest generation.
	Score     int                // Total tiles removed.
	Clears    int                // Accepted selections so far.
	Stuck     bool               // True once the board has no clearable rectangle.
	Degraded  bool               // Last generation was accepted past the solvability retry cap.
	CreatedAt time.Time
}

// ClearOutcome reports the effect of one accepted selection.
type ClearOutcome struct {
	Removed int         // Tiles removed by the selection.
	State   string      // StatePlaying, StateCleared, or StateStuck.
	Board   board.Board // Board after the selection.
	Score   int         // Session score after the selection.
}
