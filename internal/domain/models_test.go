package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatCount(t *testing.T) {
	assert.Equal(t, 0, Fighter{Name: "Alpha", PictureURL: "unknown"}.StatCount())
	assert.Equal(t, 1, Fighter{Name: "Alpha", Record: "10-2-0"}.StatCount())
	assert.Equal(t, 3, Fighter{
		Name:      "Alpha",
		Record:    "10-2-0",
		SLpM:      "4.5",
		FightTime: "11:20",
	}.StatCount())
}

func TestHasRecord(t *testing.T) {
	assert.False(t, Fighter{Name: "Alpha"}.HasRecord())
	assert.True(t, Fighter{Name: "Alpha", Record: "0-0-0"}.HasRecord())
}

func TestNormalize(t *testing.T) {
	state := &GameState{}
	state.Normalize()
	assert.NotNil(t, state.PastFighters)
	assert.NotNil(t, state.FighterData)
}
