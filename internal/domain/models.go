package domain

import (
	"time"
)

// Unknown is the sentinel used for fields the scraper could not resolve.
// It is persisted as-is for Picture_URL but stripped from stat fields.
const Unknown = "unknown"

// RankingEntry is one row of the rankings page: a fighter's position in a
// single division. Rank is either a positive integer as text, "C" for the
// division champion, or "P4P" for the pound-for-pound list.
type RankingEntry struct {
	Name       string
	Division   string
	Rank       string
	ProfileURL string
}

// Fighter is the persisted per-athlete record. JSON keys match the
// game_data.json document consumed by the frontend; stat fields that
// could not be scraped are omitted entirely rather than stored empty.
type Fighter struct {
	Name             string    `json:"Name,omitempty"`
	Division         string    `json:"Division,omitempty"`
	Rank             string    `json:"Rank,omitempty"`
	ProfileURL       string    `json:"Profile_URL,omitempty"`
	PictureURL       string    `json:"Picture_URL,omitempty"`
	Record           string    `json:"Record,omitempty"`
	SLpM             string    `json:"SLpM,omitempty"`
	SApM             string    `json:"SApM,omitempty"`
	TDAvg            string    `json:"TD_Avg,omitempty"`
	SubAvg           string    `json:"Sub_Avg,omitempty"`
	FightTime        string    `json:"Fight_Time,omitempty"`
	FightTimeSeconds int       `json:"Fight_Time_Seconds"`
	SelectedDate     time.Time `json:"Selected_Date,omitzero"`
}

// HasRecord reports whether the fighter carries a win-loss record.
// Fighters without one are never eligible for the daily pick.
func (f Fighter) HasRecord() bool {
	return f.Record != ""
}

// StatCount returns how many real stat fields survived extraction,
// not counting Name and Picture_URL.
func (f Fighter) StatCount() int {
	n := 0
	for _, v := range []string{f.Record, f.SLpM, f.SApM, f.TDAvg, f.SubAvg, f.FightTime} {
		if v != "" {
			n++
		}
	}
	return n
}

// GameState is the full persisted document: the current daily fighter,
// a bounded no-repeat history of past daily picks, and every scraped
// fighter keyed by display name.
type GameState struct {
	DailyFighter Fighter            `json:"daily_fighter"`
	PastFighters []string           `json:"past_fighters"`
	FighterData  map[string]Fighter `json:"fighter_data"`
}

// NewGameState returns an empty but fully initialized state.
func NewGameState() *GameState {
	return &GameState{
		PastFighters: []string{},
		FighterData:  map[string]Fighter{},
	}
}

// Normalize fills in any top-level fields a loaded document was missing.
func (s *GameState) Normalize() {
	if s.PastFighters == nil {
		s.PastFighters = []string{}
	}
	if s.FighterData == nil {
		s.FighterData = map[string]Fighter{}
	}
}
