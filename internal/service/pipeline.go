package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"tapebot/internal/repository"
	"tapebot/internal/store"
)

// Pipeline sequences one full scrape run: load state, refresh rankings
// and stats, rotate the daily pick, save, and record a run summary.
// It always completes and persists whatever state it reached; per-item
// failures only degrade data completeness.
type Pipeline struct {
	store    *store.Store
	refresh  *RefreshService
	rotation *RotationService
	runs     *repository.RunLogRepository
	logger   zerolog.Logger
}

func NewPipeline(
	store *store.Store,
	refresh *RefreshService,
	rotation *RotationService,
	runs *repository.RunLogRepository,
	logger zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		store:    store,
		refresh:  refresh,
		rotation: rotation,
		runs:     runs,
		logger:   logger,
	}
}

func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now().UTC()
	p.logger.Info().Msg("starting scrape run")

	state := p.store.Load()
	summary := p.refresh.Run(ctx, state)

	chosen, err := p.rotation.Select(state)
	if err != nil && !errors.Is(err, ErrNoEligibleFighter) {
		p.logger.Error().Err(err).Msg("daily selection failed")
	}

	if err := p.store.Save(state); err != nil {
		p.logger.Error().Err(err).Msg("could not save game state")
		return err
	}

	run := repository.ScrapeRun{
		StartedAt:     started,
		FinishedAt:    time.Now().UTC(),
		RosterEntries: summary.RosterEntries,
		Rescraped:     summary.Rescraped,
		Failed:        summary.Failed,
		DailyFighter:  chosen.Name,
	}
	if err := p.runs.Insert(ctx, run); err != nil {
		p.logger.Warn().Err(err).Msg("could not record scrape run")
	}

	p.logger.Info().
		Int("roster_entries", summary.RosterEntries).
		Int("rescraped", summary.Rescraped).
		Int("failed", summary.Failed).
		Str("daily_fighter", chosen.Name).
		Dur("elapsed", time.Since(started)).
		Msg("scrape run complete")
	return nil
}
