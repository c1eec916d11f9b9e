package scrape

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"tapebot/internal/domain"
)

// ErrNoDivisions means neither division-block strategy matched anything.
// The run continues with zero roster entries.
var ErrNoDivisions = errors.New("no division blocks found on rankings page")

// divisionBlockSelectors are tried in order; the first one that yields
// any blocks wins. The site has shipped both layouts.
var divisionBlockSelectors = []string{
	"div.view-grouping",
	"div.c-rankings__content > div.c-rankings__division",
}

// RankingsParser turns the rankings listing document into an ordered
// sequence of ranking entries, one per champion or ranked fighter in
// every men's division.
type RankingsParser struct {
	baseURL string
	logger  zerolog.Logger
}

func NewRankingsParser(baseURL string, logger zerolog.Logger) *RankingsParser {
	return &RankingsParser{baseURL: baseURL, logger: logger}
}

func (p *RankingsParser) Parse(doc *goquery.Document) ([]domain.RankingEntry, error) {
	var blocks *goquery.Selection
	for _, sel := range divisionBlockSelectors {
		blocks = doc.Find(sel)
		if blocks.Length() > 0 {
			break
		}
	}
	if blocks == nil || blocks.Length() == 0 {
		return nil, ErrNoDivisions
	}

	var entries []domain.RankingEntry
	blocks.Each(func(_ int, block *goquery.Selection) {
		division := p.divisionName(block)

		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(division)), "women") {
			p.logger.Debug().Str("division", division).Msg("skipping women's division")
			return
		}

		table := block.Find("table").First()
		if table.Length() == 0 {
			p.logger.Debug().Str("division", division).Msg("no table in division block")
			return
		}

		found := 0
		if champ, ok := p.champion(table, division); ok {
			entries = append(entries, champ)
			found++
		}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			entry, ok := p.rankedRow(row, division)
			if !ok {
				return
			}
			entries = append(entries, entry)
			found++
		})

		p.logger.Debug().Str("division", division).Int("fighters", found).Msg("division parsed")
	})

	return entries, nil
}

// divisionName resolves the division label with ordered fallbacks:
// explicit grouping header, table-caption heading, then a fixed default.
func (p *RankingsParser) divisionName(block *goquery.Selection) string {
	if text := strings.TrimSpace(block.Find("div.view-grouping-header").First().Text()); text != "" {
		return text
	}
	if text := strings.TrimSpace(block.Find("table caption h4").First().Text()); text != "" {
		return text
	}
	return "Unknown Division"
}

func (p *RankingsParser) champion(table *goquery.Selection, division string) (domain.RankingEntry, bool) {
	anchor := table.Find("caption h5 a").First()
	if anchor.Length() == 0 {
		return domain.RankingEntry{}, false
	}
	name := strings.TrimSpace(anchor.Text())
	if name == "" {
		return domain.RankingEntry{}, false
	}
	href, _ := anchor.Attr("href")
	return domain.RankingEntry{
		Name:       name,
		Division:   division,
		Rank:       "C",
		ProfileURL: p.absoluteURL(href),
	}, true
}

func (p *RankingsParser) rankedRow(row *goquery.Selection, division string) (domain.RankingEntry, bool) {
	rankCell := row.Find("td:nth-of-type(1)").First()
	nameAnchor := row.Find("td:nth-of-type(2) a").First()
	if rankCell.Length() == 0 || nameAnchor.Length() == 0 {
		return domain.RankingEntry{}, false
	}

	rank := strings.TrimSpace(rankCell.Text())
	name := strings.TrimSpace(nameAnchor.Text())
	if name == "" || !acceptableRank(rank) {
		return domain.RankingEntry{}, false
	}

	href, _ := nameAnchor.Attr("href")
	return domain.RankingEntry{
		Name:       name,
		Division:   division,
		Rank:       rank,
		ProfileURL: p.absoluteURL(href),
	}, true
}

// acceptableRank admits numeric ranks plus the "P4P" and "C" markers.
// Everything else ("NR", interim notes, empty cells) is skipped.
func acceptableRank(rank string) bool {
	if rank == "" {
		return false
	}
	if first, _ := utf8.DecodeRuneInString(rank); unicode.IsDigit(first) {
		return true
	}
	upper := strings.ToUpper(rank)
	return upper == "P4P" || upper == "C"
}

func (p *RankingsParser) absoluteURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return p.baseURL + href
	}
	return href
}
