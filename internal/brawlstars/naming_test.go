package brawlstars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"trophyChange", "trophy_change"},
		{"highestTrophies", "highest_trophies"},
		{"3vs3Victories", "3vs3_victories"},
		{"isQualifiedFromChampionshipChallenge", "is_qualified_from_championship_challenge"},
		{"name", "name"},
		{"already_snake", "already_snake"},
		{"badgeID", "badge_id"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CamelToSnake(tt.input))
		})
	}
}

func TestHumanizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"brawlBall", "Brawl Ball"},
		{"gemGrab", "Gem Grab"},
		{"soloShowdown", "Solo Showdown"},
		{"vicePresident", "Vice President"},
		{"accessDenied", "Access Denied"},
		{"knockout", "Knockout"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanizeKey(tt.input))
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Shelly", TitleCase("SHELLY"))
	assert.Equal(t, "Shelly", TitleCase("shelly"))
	assert.Equal(t, "El Primo", TitleCase("EL PRIMO"))
}
