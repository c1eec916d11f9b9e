package scrape

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapebot/internal/domain"
)

const profileFixture = `
<html><body>
<div class="c-hero">
  <span class="c-hero__headline-suffix">27-1-0 (W-L-D)</span>
</div>
<div class="c-bio__row--record"><p class="c-bio__text">27-1-0</p></div>
<div class="c-listing-athlete-flipcard__back">
  <img src="https://dmxg5wxfqgb4u.cloudfront.net/images/jiri-prochazka-123.png"/>
</div>
<div class="c-listing-athlete-flipcard__back">
  <img src="https://dmxg5wxfqgb4u.cloudfront.net/images/other-fighter.png"/>
</div>
<div data-stat="slpm"><div class="c-overlap__stats-value">6.29</div></div>
<div data-stat="sapm"><div class="c-overlap__stats-value">4.26</div></div>
<div data-stat="td-avg"><div class="c-overlap__stats-value">0.81</div></div>
<div data-stat="sub-avg"><div class="c-overlap__stats-value">0.3</div></div>
<ul>
  <li class="c-overlap__list-item">Fights Won 30</li>
  <li class="c-overlap__list-item">Avg. Fight Time <span class="c-overlap__number">9:58</span></li>
</ul>
</body></html>`

const legacyProfileFixture = `
<html><body>
<p class="c-bio__text">15-3-0</p>
<div class="c-stat-compare__group"><dd>3.10</dd></div>
<div class="c-stat-compare__group"><dd>2.44</dd></div>
<div class="c-stat-compare__group"><dd>1.50</dd></div>
<div class="c-stat-compare__group"><dd>-</dd></div>
<li class="c-view-details__item">Avg. Fight Time <span class="c-view-details__value">12:34</span></li>
</body></html>`

func newExtractor() *StatsExtractor {
	return NewStatsExtractor(NewImageResolver(zerolog.Nop()), zerolog.Nop())
}

func TestExtractStats(t *testing.T) {
	doc := parseFixture(t, profileFixture)
	fighter, err := newExtractor().Extract("Jiri Prochazka", "https://www.ufc.com/athlete/jiri-prochazka", doc)
	require.NoError(t, err)

	assert.Equal(t, "Jiri Prochazka", fighter.Name)
	assert.Equal(t, "https://www.ufc.com/athlete/jiri-prochazka", fighter.ProfileURL)
	assert.Equal(t, "https://dmxg5wxfqgb4u.cloudfront.net/images/jiri-prochazka-123.png", fighter.PictureURL)
	assert.Equal(t, "27-1-0", fighter.Record)
	assert.Equal(t, "6.29", fighter.SLpM)
	assert.Equal(t, "4.26", fighter.SApM)
	assert.Equal(t, "0.81", fighter.TDAvg)
	assert.Equal(t, "0.3", fighter.SubAvg)
	assert.Equal(t, "9:58", fighter.FightTime)
	assert.Equal(t, 598, fighter.FightTimeSeconds)
}

func TestExtractStatsFallbackSelectors(t *testing.T) {
	doc := parseFixture(t, legacyProfileFixture)
	fighter, err := newExtractor().Extract("Some Fighter", "https://www.ufc.com/athlete/some-fighter", doc)
	require.NoError(t, err)

	assert.Equal(t, "15-3-0", fighter.Record)
	assert.Equal(t, "3.10", fighter.SLpM)
	assert.Equal(t, "2.44", fighter.SApM)
	assert.Equal(t, "1.50", fighter.TDAvg)
	// placeholder values are dropped entirely
	assert.Empty(t, fighter.SubAvg)
	assert.Equal(t, "12:34", fighter.FightTime)
	assert.Equal(t, 754, fighter.FightTimeSeconds)

	// no card images on the page at all
	assert.Equal(t, domain.Unknown, fighter.PictureURL)
}

func TestExtractStatsMissingProfile(t *testing.T) {
	_, err := newExtractor().Extract("Some Fighter", "", nil)
	require.ErrorIs(t, err, ErrMissingProfile)
}

func TestExtractStatsInsufficientFields(t *testing.T) {
	doc := parseFixture(t, `<html><body><p>nothing useful here</p></body></html>`)
	_, err := newExtractor().Extract("Some Fighter", "https://www.ufc.com/athlete/some-fighter", doc)
	require.ErrorIs(t, err, ErrInsufficientFields)
}

func TestTimeToSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12:34", 754},
		{"9:58", 598},
		{"0:00", 0},
		{"", 0},
		{"bad", 0},
		{"1:2:3", 0},
		{"-", 0},
		{"unknown", 0},
		{"N/A", 0},
		{"xx:yy", 0},
		{" 15:00 ", 900},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TimeToSeconds(tc.in), "input %q", tc.in)
	}
}
