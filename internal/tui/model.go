package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// Source provides the data shown on the dashboard. *brawlstars.Client
// satisfies it.
type Source interface {
	GetEventRotation(ctx context.Context, opts ...brawlstars.CallOption) ([]brawlstars.Rotation, error)
	GetLeaderboard(ctx context.Context, opts brawlstars.LeaderboardOptions) ([]brawlstars.LeaderboardEntry, error)
}

// Options configures the dashboard.
type Options struct {
	RefreshInterval time.Duration
	Region          string
	Limit           int
}

// view identifies the visible panel
type view int

const (
	viewRotation view = iota
	viewLeaderboard
)

// Model is the bubbletea model for the TUI dashboard
type Model struct {
	rotation    []brawlstars.Rotation
	leaders     []brawlstars.LeaderboardEntry
	view        view
	selectedIdx int
	now         time.Time
	lastUpdate  time.Time
	err         error
	loading     bool
	width       int
	height      int
	source      Source
	opts        Options
	ctx         context.Context
	quitting    bool
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, source Source, opts Options) *Model {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 5 * time.Minute
	}
	if opts.Region == "" {
		opts.Region = brawlstars.GlobalRegion
	}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}

	return &Model{
		rotation: []brawlstars.Rotation{},
		leaders:  []brawlstars.LeaderboardEntry{},
		now:      time.Now(),
		loading:  true,
		source:   source,
		opts:     opts,
		ctx:      ctx,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		loadDashboardCmd(m.ctx, m.source, m.opts, false),
	)
}

// tickCmd returns a command that sends a tick message every second
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadDashboardCmd returns a command that loads rotation and rankings
func loadDashboardCmd(ctx context.Context, source Source, opts Options, force bool) tea.Cmd {
	return func() tea.Msg {
		rotation, leaders, err := loadDashboard(ctx, source, opts, force)
		return dashboardLoadedMsg{
			rotation: rotation,
			leaders:  leaders,
			err:      err,
		}
	}
}

// clearErrorCmd returns a command that clears the error message after a delay
func clearErrorCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// needsRefresh reports whether the data is older than the refresh interval.
func (m Model) needsRefresh() bool {
	return !m.loading && m.now.Sub(m.lastUpdate) >= m.opts.RefreshInterval
}

// rows returns the number of rows in the visible panel.
func (m Model) rows() int {
	if m.view == viewLeaderboard {
		return len(m.leaders)
	}
	return len(m.rotation)
}
