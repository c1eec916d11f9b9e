package service

import (
	"errors"
	"math/rand"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"tapebot/internal/config"
	"tapebot/internal/domain"
)

// ErrNoEligibleFighter means no stored fighter can be picked even after
// an amnesty reset; the rotation leaves state untouched.
var ErrNoEligibleFighter = errors.New("no eligible fighter to select")

// RotationService picks the next daily fighter: uniformly at random from
// the pool of fighters that carry a record and have not been picked
// within the sliding no-repeat window.
type RotationService struct {
	cfg    *config.Config
	rng    *rand.Rand
	logger zerolog.Logger

	now func() time.Time
}

func NewRotationService(cfg *config.Config, rng *rand.Rand, logger zerolog.Logger) *RotationService {
	return &RotationService{
		cfg:    cfg,
		rng:    rng,
		logger: logger,
		now:    time.Now,
	}
}

// NewRand seeds the selection source; injected so tests can pin it.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Select installs a new daily fighter and maintains the no-repeat
// history. When every candidate sits in the history, the window is
// cleared (full amnesty) and selection retries over the whole pool.
func (s *RotationService) Select(state *domain.GameState) (domain.Fighter, error) {
	if len(state.FighterData) == 0 {
		s.logger.Error().Msg("no fighter data available for daily selection")
		return domain.Fighter{}, ErrNoEligibleFighter
	}

	// the previous pick joins the history before it is overwritten, which
	// also keeps it out of the eligible set; mutations happen on a local
	// copy so a failed selection leaves state untouched
	past := slices.Clone(state.PastFighters)
	if prev := state.DailyFighter.Name; prev != "" && !slices.Contains(past, prev) {
		past = append(past, prev)
	}

	eligible := eligibleNames(state.FighterData, past)
	if len(eligible) == 0 {
		eligible = eligibleNames(state.FighterData, nil)
		if len(eligible) == 0 {
			s.logger.Error().Msg("no fighter with a record available for daily selection")
			return domain.Fighter{}, ErrNoEligibleFighter
		}
		s.logger.Warn().Msg("all eligible fighters used recently, resetting history")
		// the amnesty clears the window but the most recent daily still
		// seeds it, so it stays held out on the next call
		past = []string{}
		if prev := state.DailyFighter.Name; prev != "" {
			past = append(past, prev)
		}
	}

	chosenName := eligible[s.rng.Intn(len(eligible))]

	// keep only the last K entries, evicting oldest first
	if excess := len(past) - s.cfg.HistoryLimit; excess > 0 {
		past = past[excess:]
	}
	state.PastFighters = past

	chosen := state.FighterData[chosenName]
	chosen.SelectedDate = s.now().UTC()
	state.FighterData[chosenName] = chosen
	state.DailyFighter = chosen

	s.logger.Info().
		Str("name", chosenName).
		Int("eligible", len(eligible)).
		Int("past_fighters", len(state.PastFighters)).
		Msg("daily fighter selected")
	return chosen, nil
}

// eligibleNames returns candidates in stable sorted order so a seeded
// random source makes selection deterministic.
func eligibleNames(pool map[string]domain.Fighter, past []string) []string {
	var names []string
	for name, fighter := range pool {
		if !fighter.HasRecord() {
			continue
		}
		if slices.Contains(past, name) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
