package service

import (
	"context"
	"errors"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"tapebot/internal/config"
	"tapebot/internal/domain"
	"tapebot/internal/scrape"
)

// Fetcher is the page-fetching collaborator. Failures are non-fatal and
// degrade the caller to "no data for this page".
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// RefreshSummary counts what a refresh pass did, for the run log.
type RefreshSummary struct {
	RosterEntries int
	Rescraped     int
	Failed        int
}

// RefreshService walks the current roster and decides, per fighter,
// whether the stored record is complete enough or must be rescraped.
// A stale record always beats data loss: any rescrape failure keeps
// the prior record untouched.
type RefreshService struct {
	cfg      *config.Config
	fetcher  Fetcher
	rankings *scrape.RankingsParser
	stats    *scrape.StatsExtractor
	logger   zerolog.Logger

	sleep func(time.Duration)
}

func NewRefreshService(
	cfg *config.Config,
	fetcher Fetcher,
	rankings *scrape.RankingsParser,
	stats *scrape.StatsExtractor,
	logger zerolog.Logger,
) *RefreshService {
	return &RefreshService{
		cfg:      cfg,
		fetcher:  fetcher,
		rankings: rankings,
		stats:    stats,
		logger:   logger,
		sleep:    time.Sleep,
	}
}

// Run refreshes state.FighterData from the live rankings. Every error is
// absorbed here; the summary reports how much data survived.
func (s *RefreshService) Run(ctx context.Context, state *domain.GameState) RefreshSummary {
	var summary RefreshSummary

	doc, err := s.fetcher.Fetch(ctx, s.cfg.RankingsURL)
	if err != nil {
		s.logger.Error().Err(err).Msg("could not fetch rankings page, keeping existing data")
		return summary
	}

	entries, err := s.rankings.Parse(doc)
	if err != nil {
		if errors.Is(err, scrape.ErrNoDivisions) {
			s.logger.Error().Err(err).Msg("rankings page yielded no divisions")
		} else {
			s.logger.Error().Err(err).Msg("rankings parse failed")
		}
		return summary
	}

	order, index := indexEntries(entries)
	summary.RosterEntries = len(order)
	s.logger.Info().
		Int("entries", len(entries)).
		Int("unique_fighters", len(order)).
		Msg("rankings scraped")

	for i, name := range order {
		entry := index[name]
		existing, ok := state.FighterData[name]

		if !s.needsRescrape(existing, ok) {
			// no network call, but keep division movement current
			existing.Division = entry.Division
			existing.Rank = entry.Rank
			existing.ProfileURL = entry.ProfileURL
			state.FighterData[name] = existing
			continue
		}

		summary.Rescraped++
		s.logger.Info().
			Int("position", i+1).
			Int("total", len(order)).
			Str("name", name).
			Msg("rescraping fighter")

		fighter, err := s.rescrape(ctx, entry)
		if err != nil {
			summary.Failed++
			s.logger.Warn().Err(err).Str("name", name).Msg("rescrape failed, keeping prior record")
		} else {
			fighter.Division = entry.Division
			fighter.Rank = entry.Rank
			state.FighterData[name] = fighter
		}

		if s.cfg.RequestDelay > 0 {
			s.sleep(s.cfg.RequestDelay)
		}
	}

	return summary
}

// needsRescrape is driven purely by the current completeness of stored
// data, which makes interrupted runs resumable for free.
func (s *RefreshService) needsRescrape(existing domain.Fighter, ok bool) bool {
	if !ok {
		return true
	}
	if !existing.HasRecord() {
		return true
	}
	if existing.PictureURL == "" {
		return true
	}
	return !scrape.MatchesName(existing.PictureURL, existing.Name)
}

func (s *RefreshService) rescrape(ctx context.Context, entry domain.RankingEntry) (domain.Fighter, error) {
	if entry.ProfileURL == "" {
		return domain.Fighter{}, scrape.ErrMissingProfile
	}
	doc, err := s.fetcher.Fetch(ctx, entry.ProfileURL)
	if err != nil {
		return domain.Fighter{}, err
	}
	return s.stats.Extract(entry.Name, entry.ProfileURL, doc)
}

// indexEntries builds a last-one-wins index keyed by name while keeping
// first-seen scan order, mirroring ordered-map insertion semantics.
func indexEntries(entries []domain.RankingEntry) ([]string, map[string]domain.RankingEntry) {
	order := make([]string, 0, len(entries))
	index := make(map[string]domain.RankingEntry, len(entries))
	for _, entry := range entries {
		if _, seen := index[entry.Name]; !seen {
			order = append(order, entry.Name)
		}
		index[entry.Name] = entry
	}
	return order, index
}
