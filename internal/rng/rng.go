// internal/rng/rng.go
//
// Deterministic seed source for board generation.
// Responsibilities:
//   - State: a value-type PRNG (SplitMix64) threaded explicitly through calls;
//     every draw returns the value and the advanced state, so two boards built
//     from the same State are bit-for-bit identical.
//   - ForLevel / ForToken: derive a reproducible State from a level number or
//     a minted challenge token using HMAC(salt, key), so the same level (or
//     token) always replays the same board.

package rng

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// State is the seed source's entire internal state. It is a plain value:
// callers keep the State returned by each draw and pass it to the next call.
type State struct {
	v uint64
}

// New returns a State seeded with the given value.
func New(seed uint64) State {
	return State{v: seed}
}

// Next advances the stream one step and returns a 64-bit draw plus the new
// state. SplitMix64 finalizer over a Weyl sequence.
func (s State) Next() (uint64, State) {
	s.v += 0x9E3779B97F4A7C15
	z := s.v
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return z, s
}

// Intn returns a draw in [0, n) and the advanced state.
// n <= 0 returns 0 without advancing.
func (s State) Intn(n int) (int, State) {
	if n <= 0 {
		return 0, s
	}
	v, next := s.Next()
	return int(v % uint64(n)), next
}

// ForLevel derives a reproducible State for a level number using
// HMAC-SHA256(salt, "level:N") truncated to the first 8 bytes.
func ForLevel(level int, salt string) State {
	return derive("level:"+strconv.Itoa(level), salt)
}

// ForToken derives a reproducible State from a minted challenge token, so a
// challenge board can be rebuilt from the token alone.
func ForToken(token, salt string) State {
	return derive("token:"+token, salt)
}

func derive(key, salt string) State {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(key))
	sum := h.Sum(nil)
	return State{v: binary.BigEndian.Uint64(sum[:8])}
}
