package tui

import (
	"time"

	"github.com/steviee/go-bstats/internal/brawlstars"
)

// tickMsg is sent every second to update countdowns
type tickMsg time.Time

// dashboardLoadedMsg is sent when rotation and rankings are loaded
type dashboardLoadedMsg struct {
	rotation []brawlstars.Rotation
	leaders  []brawlstars.LeaderboardEntry
	err      error
}

// clearErrorMsg is sent to clear the error message
type clearErrorMsg struct{}
