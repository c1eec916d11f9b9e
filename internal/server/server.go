package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"tapebot/internal/constants"
	"tapebot/internal/repository"
	"tapebot/internal/store"
)

// GameServer exposes the persisted game state and the scrape-run
// history as a read-only JSON API. State is re-read per request so a
// scrape run finishing on the side is picked up immediately.
type GameServer struct {
	store  *store.Store
	runs   *repository.RunLogRepository
	logger zerolog.Logger
}

func NewGameServer(store *store.Store, runs *repository.RunLogRepository, logger zerolog.Logger) *GameServer {
	return &GameServer{store: store, runs: runs, logger: logger}
}

func (s *GameServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/game", s.handleGame)
	mux.HandleFunc("GET /api/daily", s.handleDaily)
	mux.HandleFunc("GET /api/runs", s.handleRuns)
}

func (s *GameServer) handleGame(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.store.Load())
}

func (s *GameServer) handleDaily(w http.ResponseWriter, r *http.Request) {
	state := s.store.Load()
	if state.DailyFighter.Name == "" {
		http.Error(w, `{"error":"no daily fighter selected"}`, http.StatusNotFound)
		return
	}
	s.writeJSON(w, state.DailyFighter)
}

func (s *GameServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.runs.ListRecent(r.Context(), constants.RunHistoryLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("could not list scrape runs")
		http.Error(w, `{"error":"could not list runs"}`, http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []repository.ScrapeRun{}
	}
	s.writeJSON(w, runs)
}

func (s *GameServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("could not encode response")
	}
}
