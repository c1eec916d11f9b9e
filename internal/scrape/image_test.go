package scrape

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"tapebot/internal/domain"
)

func TestMatchesName(t *testing.T) {
	cases := []struct {
		url  string
		name string
		want bool
	}{
		{"https://cdn.example.com/images/jiri-prochazka-123.png", "Jiri Prochazka", true},
		{"https://cdn.example.com/images/other-fighter.png", "Jiri Prochazka", false},
		{"https://cdn.example.com/images/PROCHAZKA_JIRI.png", "Jiri Prochazka", true},
		{"https://cdn.example.com/images/jon-jones.png", "Jon Jones", true},
		// "jon" is a substring of "jones", so the bare surname still matches
		{"https://cdn.example.com/images/jones.png", "Jon Jones", true},
		{"https://cdn.example.com/images/jon.png", "Jon Jones", false},
		{"unknown", "Jon Jones", false},
		{"", "Jon Jones", false},
		{"https://cdn.example.com/images/jones.png", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchesName(tc.url, tc.name), "url %q name %q", tc.url, tc.name)
	}
}

func imageDoc(t *testing.T, srcs ...string) string {
	t.Helper()
	html := "<html><body>"
	for _, src := range srcs {
		html += fmt.Sprintf(`<div class="c-listing-athlete-flipcard__back"><img src=%q/></div>`, src)
	}
	return html + "</body></html>"
}

func TestResolveImage(t *testing.T) {
	resolver := NewImageResolver(zerolog.Nop())

	t.Run("slot A matches", func(t *testing.T) {
		doc := parseFixture(t, imageDoc(t,
			"https://cdn.example.com/jiri-prochazka.png",
			"https://cdn.example.com/aleksandar-rakic.png",
		))
		assert.Equal(t, "https://cdn.example.com/jiri-prochazka.png", resolver.Resolve(doc, "Jiri Prochazka"))
	})

	t.Run("slot B matches when A does not", func(t *testing.T) {
		doc := parseFixture(t, imageDoc(t,
			"https://cdn.example.com/aleksandar-rakic.png",
			"https://cdn.example.com/jiri-prochazka.png",
		))
		assert.Equal(t, "https://cdn.example.com/jiri-prochazka.png", resolver.Resolve(doc, "Jiri Prochazka"))
	})

	t.Run("falls back to slot A on double mismatch", func(t *testing.T) {
		doc := parseFixture(t, imageDoc(t,
			"https://cdn.example.com/somebody-else.png",
			"https://cdn.example.com/another-person.png",
		))
		assert.Equal(t, "https://cdn.example.com/somebody-else.png", resolver.Resolve(doc, "Jiri Prochazka"))
	})

	t.Run("unknown when no candidates", func(t *testing.T) {
		doc := parseFixture(t, imageDoc(t))
		assert.Equal(t, domain.Unknown, resolver.Resolve(doc, "Jiri Prochazka"))
	})
}
