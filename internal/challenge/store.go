// internal/challenge/store.go
//
// Sqlite persistence for settled challenge runs. One row per token id
// (INSERT OR IGNORE makes settling idempotent); the leaderboard groups by
// UTC day and orders best score first, ties broken by elapsed time then
// insertion order.

package challenge

import (
	"context"
	"database/sql"
	"time"
)

// Result is one settled challenge run.
type Result struct {
	TokenID   string `json:"tokenId"`
	Day       string `json:"day"`
	Score     int    `json:"score"`
	Clears    int    `json:"clears"`
	ElapsedMs int    `json:"elapsedMs"`
}

// DayKey returns YYYY-MM-DD in UTC, the leaderboard grouping key.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadySettled reports whether a result row exists for the token.
func (s *Store) AlreadySettled(ctx context.Context, tokenID string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM challenge_results WHERE token_id=?",
		tokenID,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a run once; a token can only settle a single result.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO challenge_results(token_id, day, score, clears, elapsed_ms)
		 VALUES(?,?,?,?,?)`, r.TokenID, r.Day, r.Score, r.Clears, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry.
type LBRow struct {
	TokenID   string `json:"tokenId"`
	Score     int    `json:"score"`
	Clears    int    `json:"clears"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the top runs for a day, best score first.
func (s *Store) Leaderboard(ctx context.Context, day string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT token_id, score, clears, elapsed_ms
		 FROM challenge_results
		 WHERE day=?
		 ORDER BY score DESC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, day, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.TokenID, &r.Score, &r.Clears, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
