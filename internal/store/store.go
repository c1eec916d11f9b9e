package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"tapebot/internal/config"
	"tapebot/internal/domain"
)

// Store persists the game state as a single JSON document. The document
// is what the frontend consumes directly, so its shape is part of the
// public interface.
type Store struct {
	path   string
	logger zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) *Store {
	return &Store{path: cfg.OutputFile, logger: logger}
}

// Load reads the persisted state. A missing or unreadable file is a
// fresh start, never an error: losing history is recoverable, aborting
// the run is not.
func (s *Store) Load() *domain.GameState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("could not read game state, starting fresh")
		}
		return domain.NewGameState()
	}

	state := &domain.GameState{}
	if err := json.Unmarshal(data, state); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("could not decode game state, starting fresh")
		return domain.NewGameState()
	}

	state.Normalize()
	s.logger.Info().
		Str("path", s.path).
		Int("fighters", len(state.FighterData)).
		Int("past_fighters", len(state.PastFighters)).
		Msg("loaded game state")
	return state
}

// Save writes a complete snapshot. The write goes through a temp file
// and rename so a crash mid-write never leaves a truncated document.
func (s *Store) Save(state *domain.GameState) error {
	data, err := json.MarshalIndent(state, "", "    ")
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write game state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace game state: %w", err)
	}

	s.logger.Info().
		Str("path", s.path).
		Int("fighters", len(state.FighterData)).
		Msg("saved game state")
	return nil
}
