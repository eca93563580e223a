// internal/httpserver/routes_challenge.go
//
// HTTP routes for challenge mode.
// Exposes four endpoints under /challenge:
//   - POST /challenge/new         → mint a signed token and start a run
//   - POST /challenge/clear       → apply a selection (board regenerates per clear)
//   - POST /challenge/result      → settle a finished run (token verified)
//   - GET  /challenge/leaderboard → top runs for a day
//
// A run is identified by its token; the token string seeds board generation,
// so the same token always replays the same sequence of boards. Results are
// persisted to sqlite once per token.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/maketen/go-server/internal/board"
	"github.com/maketen/go-server/internal/challenge"
	"github.com/maketen/go-server/internal/difficulty"
	"github.com/maketen/go-server/internal/game"
	"github.com/maketen/go-server/internal/layout"
	"github.com/maketen/go-server/internal/rng"
)

// tokenTTL bounds how long a minted challenge run stays settleable.
const tokenTTL = 24 * time.Hour

// challengeServer wraps dependencies for /challenge endpoints.
type challengeServer struct {
	srv   *Server
	store *challenge.Store
}

// mountChallenge registers all /challenge routes.
func (s *Server) mountChallenge(r chi.Router) {
	cs := &challengeServer{srv: s, store: challenge.NewStore(s.db)}
	r.Route("/challenge", func(r chi.Router) {
		r.Post("/new", cs.handleNew)
		r.Post("/clear", s.handleClear)
		r.Post("/result", cs.handleResult)
		r.Get("/leaderboard", cs.handleLeaderboard)
	})
}

// -----------------------------------------------------------------------------
// /challenge/new

type challengeNewReq struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
type challengeNewRes struct {
	Token  string         `json:"token"`
	GameID string         `json:"gameId"`
	Board  board.Board    `json:"board"`
	Layout *layout.Layout `json:"layout,omitempty"`
}

// handleNew mints a token, derives the seed from it, and starts a challenge
// session on the fixed challenge board size.
func (cs *challengeServer) handleNew(w http.ResponseWriter, r *http.Request) {
	var req challengeNewReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	tileCount, _ := difficulty.ResolveChallenge()
	token, err := challenge.Mint(cs.srv.secret, tileCount, tokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("mint challenge token")
		http.Error(w, `{"error":"mint_failed"}`, http.StatusInternalServerError)
		return
	}

	var lay *layout.Layout
	rows, cols := 0, 0
	if req.Width > 0 && req.Height > 0 {
		l := layout.Compute(tileCount, req.Width, req.Height, cs.srv.cfg)
		lay = &l
		rows, cols = l.Rows, l.Cols
	}

	sess := game.New(0, rng.ForToken(token, cs.srv.salt), true, rows, cols)
	if err := cs.srv.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(challengeNewRes{Token: token, GameID: sess.ID, Board: sess.Board, Layout: lay})
}

// -----------------------------------------------------------------------------
// /challenge/result

type resultReq struct {
	Token     string `json:"token"`
	Score     int    `json:"score"`
	Clears    int    `json:"clears"`
	ElapsedMs int    `json:"elapsedMs"`
}
type resultRes struct {
	Settled bool   `json:"settled"`
	Day     string `json:"day"`
}

// handleResult verifies the token and records the run once. Replays of an
// already-settled token report Settled=false without error.
func (cs *challengeServer) handleResult(w http.ResponseWriter, r *http.Request) {
	var req resultReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	claims, err := challenge.Parse(cs.srv.secret, req.Token)
	if err != nil {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
		return
	}

	day := challenge.DayKey(time.Now())
	if played, err := cs.store.AlreadySettled(r.Context(), claims.ID); err == nil && played {
		_ = json.NewEncoder(w).Encode(resultRes{Settled: false, Day: day})
		return
	}
	if err := cs.store.InsertResult(r.Context(), challenge.Result{
		TokenID: claims.ID, Day: day,
		Score: req.Score, Clears: req.Clears, ElapsedMs: req.ElapsedMs,
	}); err != nil {
		log.Warn().Err(err).Str("token", claims.ID).Msg("insert challenge result")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(resultRes{Settled: true, Day: day})
}

// -----------------------------------------------------------------------------
// /challenge/leaderboard

type lbRes struct {
	Day string            `json:"day"`
	Top []challenge.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given day (default today).
func (cs *challengeServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if day == "" {
		day = challenge.DayKey(time.Now())
	}
	rows, err := cs.store.Leaderboard(r.Context(), day, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Day: day, Top: rows})
}
