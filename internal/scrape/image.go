package scrape

import (
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"tapebot/internal/domain"
)

// athleteCardImageSelector locates the listing-card images on a profile
// page. The first two entries ("slot A" and "slot B") are adjacent card
// images, not a guaranteed photo of this fighter; matching below is a
// positional heuristic.
const athleteCardImageSelector = "div.c-listing-athlete-flipcard__back img"

// ImageResolver disambiguates a fighter's photo between the two fixed
// card-image slots using name-token matching against the filename.
type ImageResolver struct {
	logger zerolog.Logger
}

func NewImageResolver(logger zerolog.Logger) *ImageResolver {
	return &ImageResolver{logger: logger}
}

// Resolve returns the best candidate photo URL for the named fighter.
// Slot A wins if its filename matches the name, then slot B; a
// non-matching slot A is still returned over nothing, and the unknown
// sentinel only when slot A is absent entirely. A wrong-but-present
// image is preferred over no image.
func (r *ImageResolver) Resolve(doc *goquery.Document, name string) string {
	candidates := doc.Find(athleteCardImageSelector)
	slotA, _ := candidates.Eq(0).Attr("src")
	slotB, _ := candidates.Eq(1).Attr("src")

	if slotA != "" && MatchesName(slotA, name) {
		return slotA
	}
	if slotB != "" && MatchesName(slotB, name) {
		return slotB
	}
	if slotA != "" {
		r.logger.Debug().Str("name", name).Str("url", slotA).Msg("falling back to non-matching slot A image")
		return slotA
	}
	return domain.Unknown
}

// MatchesName reports whether every whitespace-delimited token of the
// fighter's name appears in the candidate URL's filename, after both
// sides are lowercased and stripped of non-alphabetic characters.
func MatchesName(rawURL, name string) bool {
	filename := normalizeAlpha(path.Base(rawURL))
	if filename == "" {
		return false
	}
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		token = normalizeAlpha(token)
		if token == "" {
			continue
		}
		if !strings.Contains(filename, token) {
			return false
		}
	}
	return true
}

func normalizeAlpha(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
