// Package server is the scoring service word fall talks to when it plays
// against a remote scorer. It evaluates removed words with the scoring
// rules, hands out word pools and keeps the leaderboard.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/flashread/wordfall/internal/scoring"
	"github.com/flashread/wordfall/internal/storage"
)

// Leaderboard is the part of the store the leaderboard reads.
type Leaderboard interface {
	TopScoresFor(gameID, difficulty string, limit int) ([]storage.ScoreEntry, error)
}

// Scorer evaluates requests, serves word pools and records results.
type Scorer interface {
	scoring.Backend
	scoring.ResultSink
}

// Server holds the handlers' dependencies.
type Server struct {
	scorer  Scorer
	board   Leaderboard
	logger  *log.Logger
	session atomic.Int64
}

// New creates a server. board may be nil, in which case the leaderboard
// is always empty.
func New(scorer Scorer, board Leaderboard, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{scorer: scorer, board: board, logger: logger}
}

// Routes configures all routes and returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recovery(s.logger))
	r.Use(Logger(s.logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/task2", func(r chi.Router) {
			r.Post("/points", s.handlePoints)
			r.Post("/words", s.handleWords)
			r.Post("/score", s.handleScore)
		})
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(s.logger, w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("scorer listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handlePoints handles POST /api/task2/points
func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	var req scoring.Request
	if !s.decode(w, r, &req) {
		return
	}
	if req.TaskID != scoring.TaskPoints {
		respondError(s.logger, w, http.StatusBadRequest, "unexpected taskId "+strconv.Itoa(req.TaskID))
		return
	}
	if req.CollectedWord == "" {
		respondError(s.logger, w, http.StatusBadRequest, "collectedWord is required")
		return
	}

	resp, err := s.scorer.Score(r.Context(), req)
	if err != nil {
		s.logger.Error("scoring failed", "word", req.CollectedWord, "err", err)
		respondError(s.logger, w, http.StatusInternalServerError, "scoring failed")
		return
	}
	resp.Session = int(s.session.Load())
	respondJSON(s.logger, w, http.StatusOK, resp)
}

// handleWords handles POST /api/task2/words. Every pool request opens a new
// session number.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	var req scoring.WordsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.TaskID != scoring.TaskWords {
		respondError(s.logger, w, http.StatusBadRequest, "unexpected taskId "+strconv.Itoa(req.TaskID))
		return
	}
	if req.Theme == "" {
		respondError(s.logger, w, http.StatusBadRequest, "theme is required")
		return
	}

	words, err := s.scorer.Words(r.Context(), req.Theme)
	if err != nil {
		s.logger.Error("word pool failed", "theme", req.Theme, "err", err)
		respondError(s.logger, w, http.StatusInternalServerError, "word pool unavailable")
		return
	}
	if words == nil {
		words = []string{}
	}
	respondJSON(s.logger, w, http.StatusOK, scoring.WordsResponse{
		Session:   int(s.session.Add(1)),
		WordArray: words,
	})
}

// handleScore handles POST /api/task2/score
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var res scoring.FinalResult
	if !s.decode(w, r, &res) {
		return
	}
	if res.Player == "" {
		res.Player = "anonymous"
	}

	if err := s.scorer.SubmitResult(r.Context(), res); err != nil {
		s.logger.Error("result not saved", "player", res.Player, "err", err)
		respondError(s.logger, w, http.StatusInternalServerError, "result not saved")
		return
	}
	s.logger.Info("result saved", "player", res.Player, "points", res.Points, "difficulty", res.Difficulty)
	respondJSON(s.logger, w, http.StatusCreated, map[string]string{"status": "saved"})
}

// handleLeaderboard handles GET /api/leaderboard?limit=N&difficulty=D
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(s.logger, w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = min(n, 100)
	}

	entries := []scoring.LeaderboardEntry{}
	if s.board == nil {
		respondJSON(s.logger, w, http.StatusOK, entries)
		return
	}

	scores, err := s.board.TopScoresFor(scoring.GameID, r.URL.Query().Get("difficulty"), limit)
	if err != nil {
		s.logger.Error("leaderboard query failed", "err", err)
		respondError(s.logger, w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	for _, sc := range scores {
		entries = append(entries, scoring.LeaderboardEntry{
			Player:       sc.Player,
			Points:       sc.Score,
			CorrectWords: sc.CorrectWords,
			Difficulty:   sc.Difficulty,
			Theme:        sc.Theme,
			CreatedAt:    sc.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	respondJSON(s.logger, w, http.StatusOK, entries)
}

const maxBody = 1 << 20

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		respondError(s.logger, w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// respondJSON writes a JSON response. Encoding failures go to logger.
func respondJSON(logger *log.Logger, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("encoding JSON", "status", status, "err", err)
	}
}

// respondError writes an error JSON response
func respondError(logger *log.Logger, w http.ResponseWriter, status int, message string) {
	respondJSON(logger, w, status, map[string]string{"error": message})
}
