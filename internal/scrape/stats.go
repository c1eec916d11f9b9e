package scrape

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"tapebot/internal/domain"
)

var (
	// ErrMissingProfile means there was no profile document to extract from.
	ErrMissingProfile = errors.New("no profile document")
	// ErrInsufficientFields means no real stat beyond Name/Picture_URL
	// survived extraction, so the result is discarded.
	ErrInsufficientFields = errors.New("not enough fields extracted")
)

// fieldStrategy is one target field with its ordered selector fallbacks.
// The first selector yielding non-empty trimmed text wins. The list is
// data-driven so new layouts only add selectors, not control flow.
type fieldStrategy struct {
	field     string
	selectors []string
}

var statStrategies = []fieldStrategy{
	{field: "Record", selectors: []string{
		"div.c-bio__row--record p.c-bio__text",
		"span.c-hero__headline-suffix",
		"p.c-bio__text",
	}},
	{field: "SLpM", selectors: []string{
		"div[data-stat='slpm'] div.c-overlap__stats-value",
		"div.c-stat-compare__group:nth-of-type(1) dd",
	}},
	{field: "SApM", selectors: []string{
		"div[data-stat='sapm'] div.c-overlap__stats-value",
		"div.c-stat-compare__group:nth-of-type(2) dd",
	}},
	{field: "TDAvg", selectors: []string{
		"div[data-stat='td-avg'] div.c-overlap__stats-value",
		"div.c-stat-compare__group:nth-of-type(3) dd",
	}},
	{field: "SubAvg", selectors: []string{
		"div[data-stat='sub-avg'] div.c-overlap__stats-value",
		"div.c-stat-compare__group:nth-of-type(4) dd",
	}},
}

// fight-time value lives inside a labeled detail list item rather than
// at a stable selector of its own.
var fightTimeItemSelector = "li.c-overlap__list-item, li.c-view-details__item"
var fightTimeValueSelector = "span.c-overlap__number, span.c-view-details__value"

// StatsExtractor pulls a fighter's stat fields out of a profile document
// using ordered fallback strategies, dropping anything unresolvable.
type StatsExtractor struct {
	images *ImageResolver
	logger zerolog.Logger
}

func NewStatsExtractor(images *ImageResolver, logger zerolog.Logger) *StatsExtractor {
	return &StatsExtractor{images: images, logger: logger}
}

// Extract builds a Fighter from the profile document. Sentinel and empty
// fields are dropped; Name is always retained. The extraction fails with
// ErrInsufficientFields when nothing real survived.
func (e *StatsExtractor) Extract(name, profileURL string, doc *goquery.Document) (domain.Fighter, error) {
	if doc == nil {
		return domain.Fighter{}, ErrMissingProfile
	}

	raw := map[string]string{}
	for _, strat := range statStrategies {
		raw[strat.field] = firstText(doc, strat.selectors)
	}

	fightTime := findFightTime(doc)

	fighter := domain.Fighter{
		Name:             name,
		ProfileURL:       profileURL,
		PictureURL:       e.images.Resolve(doc, name),
		Record:           cleanStat(raw["Record"]),
		SLpM:             cleanStat(raw["SLpM"]),
		SApM:             cleanStat(raw["SApM"]),
		TDAvg:            cleanStat(raw["TDAvg"]),
		SubAvg:           cleanStat(raw["SubAvg"]),
		FightTime:        cleanStat(fightTime),
		FightTimeSeconds: TimeToSeconds(fightTime),
	}

	if fighter.StatCount() == 0 {
		e.logger.Warn().Str("name", name).Msg("extraction yielded no usable stats")
		return domain.Fighter{}, ErrInsufficientFields
	}

	e.logger.Debug().
		Str("name", name).
		Int("stat_fields", fighter.StatCount()).
		Msg("stats extracted")
	return fighter, nil
}

// firstText evaluates selectors in priority order and returns the first
// non-empty trimmed text, else the unknown sentinel.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return domain.Unknown
}

// findFightTime scans the overlap/detail list items for the average
// fight time label and reads its value span.
func findFightTime(doc *goquery.Document) string {
	result := domain.Unknown
	doc.Find(fightTimeItemSelector).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if !strings.Contains(li.Text(), "Avg. Fight Time") {
			return true
		}
		if val := strings.TrimSpace(li.Find(fightTimeValueSelector).First().Text()); val != "" {
			result = val
			return false
		}
		return true
	})
	return result
}

// cleanStat drops empty, sentinel, and placeholder values.
func cleanStat(v string) string {
	switch v {
	case "", domain.Unknown, "-":
		return ""
	}
	return v
}

// TimeToSeconds converts an "MM:SS" duration to total seconds. Anything
// malformed, empty, or sentinel converts to 0; it never fails.
func TimeToSeconds(v string) int {
	v = strings.TrimSpace(v)
	switch v {
	case "", "-", domain.Unknown, "N/A":
		return 0
	}
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return minutes*60 + seconds
}
