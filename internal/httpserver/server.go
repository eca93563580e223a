// internal/httpserver/server.go
//
// HTTP wiring for the make-ten board server.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/difficulty".
//   - Game endpoints: POST /game/new, /game/clear, /game/rescue.
//   - Layout endpoint: POST /layout (pure geometry, no session).
//   - Challenge endpoints: mounted under /challenge.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - The engine itself is pure; everything stateful lives in the session
//     store and the sqlite challenge results table.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/maketen/go-server/internal/board"
	"github.com/maketen/go-server/internal/difficulty"
	"github.com/maketen/go-server/internal/game"
	"github.com/maketen/go-server/internal/layout"
	"github.com/maketen/go-server/internal/rng"
	"github.com/maketen/go-server/internal/store"
)

// Server bundles router, session store, DB handle, and resolved config.
type Server struct {
	r      *chi.Mux
	store  store.Store
	db     *sql.DB
	cfg    layout.Config
	salt   string // seed derivation salt (SEED_SALT)
	secret string // challenge token signing secret (JWT_SECRET)
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		store:  st,
		db:     db,
		cfg:    layoutConfigFromEnv(),
		salt:   getEnv("SEED_SALT", "local_dev_salt"),
		secret: getEnv("JWT_SECRET", "dev_secret_change_me"),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"maketen-go","endpoints":["/health","POST /game/new","POST /game/clear","POST /layout","/challenge/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/difficulty", func(w http.ResponseWriter, r *http.Request) {
		type row struct {
			MinLevel  int `json:"minLevel"`
			TileCount int `json:"tileCount"`
		}
		out := []row{}
		for _, b := range difficulty.Brackets() {
			out = append(out, row{MinLevel: b[0], TileCount: b[1]})
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	// Game endpoints
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/clear", s.handleClear)
	s.r.Post("/game/rescue", s.handleRescue)

	// Pure layout computation
	s.r.Post("/layout", s.handleLayout)

	// Challenge mode
	s.mountChallenge(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
// Width/Height are the display bounds reserved for the board (after UI
// chrome); when provided, the board's grid shape follows the fitted layout.
type newGameReq struct {
	Level  int     `json:"level"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
type newGameRes struct {
	GameID   string         `json:"gameId"`
	Board    board.Board    `json:"board"`
	Layout   *layout.Layout `json:"layout,omitempty"`
	Degraded bool           `json:"degraded,omitempty"`
}

// handleNewGame resolves difficulty for the level, fits a layout when
// bounds are supplied, generates the first board, and stores the session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Level < 1 {
		req.Level = 1
	}

	tileCount, _ := difficulty.Resolve(req.Level)
	var lay *layout.Layout
	rows, cols := 0, 0
	if req.Width > 0 && req.Height > 0 {
		l := layout.Compute(tileCount, req.Width, req.Height, s.cfg)
		lay = &l
		rows, cols = l.Rows, l.Cols
	}

	sess := game.New(req.Level, rng.ForLevel(req.Level, s.salt), false, rows, cols)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, Board: sess.Board, Layout: lay, Degraded: sess.Degraded})
}

// clearReq/Res payloads for POST /game/clear.
type clearReq struct {
	GameID string     `json:"gameId"`
	Rect   board.Rect `json:"rect"`
}
type clearRes struct {
	Accepted bool        `json:"accepted"`
	Removed  int         `json:"removed"`
	State    string      `json:"state"` // "playing" | "cleared" | "stuck"
	Score    int         `json:"score"`
	Board    board.Board `json:"board"`
}

// handleClear applies a drag-selected rectangle to a session's board.
// A selection that does not sum to ten is a normal rejection, not an HTTP
// error: Accepted=false with the unchanged board.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req clearReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	outcome, err := sess.ApplyClear(req.Rect)
	if errors.Is(err, board.ErrNotTen) || errors.Is(err, board.ErrOutOfRange) {
		_ = json.NewEncoder(w).Encode(clearRes{
			Accepted: false, State: StateOf(sess), Score: sess.Score, Board: sess.Board,
		})
		return
	}
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(clearRes{
		Accepted: true, Removed: outcome.Removed, State: outcome.State,
		Score: outcome.Score, Board: outcome.Board,
	})
}

// rescueReq/Res payloads for POST /game/rescue.
type rescueReq struct {
	GameID string `json:"gameId"`
}
type rescueRes struct {
	Board    board.Board `json:"board"`
	Degraded bool        `json:"degraded,omitempty"`
}

// handleRescue regenerates a stuck session's board. The decision to rescue
// (vs. abandoning the session) is the client's; the server only executes it.
func (s *Server) handleRescue(w http.ResponseWriter, r *http.Request) {
	var req rescueReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	b := sess.Rescue()
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rescueRes{Board: b, Degraded: sess.Degraded})
}

// StateOf reports a session's coarse state string.
func StateOf(s *game.Session) string {
	switch {
	case s.Board.Cleared():
		return game.StateCleared
	case s.Stuck:
		return game.StateStuck
	}
	return game.StatePlaying
}

// ------------------------------ LAYOUT -------------------------------------

// layoutReq is the payload for POST /layout. TileCount wins over Level when
// both are set; bounds are required.
type layoutReq struct {
	Level     int     `json:"level"`
	TileCount int     `json:"tileCount"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// handleLayout computes a fitted layout without touching any session.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		http.Error(w, `{"error":"bounds_required"}`, http.StatusBadRequest)
		return
	}
	tileCount := req.TileCount
	if tileCount <= 0 {
		tileCount, _ = difficulty.Resolve(req.Level)
	}
	_ = json.NewEncoder(w).Encode(layout.Compute(tileCount, req.Width, req.Height, s.cfg))
}

// ------------------------------- small util --------------------------------

// layoutConfigFromEnv resolves the fitting constants, allowing env overrides
// for the display-dependent ones.
func layoutConfigFromEnv() layout.Config {
	cfg := layout.DefaultConfig()
	if v, err := strconv.ParseFloat(os.Getenv("MIN_TILE_SIZE"), 64); err == nil && v > 0 {
		cfg.MinTileSize = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("TILE_GAP"), 64); err == nil && v >= 0 {
		cfg.Gap = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("BOARD_PADDING"), 64); err == nil && v >= 0 {
		cfg.Padding = v
	}
	return cfg
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
