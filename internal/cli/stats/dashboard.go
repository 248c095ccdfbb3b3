package stats

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/steviee/go-bstats/internal/tui"
)

// NewDashboardCommand creates the dashboard command
func NewDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive dashboard with event rotation and rankings",
		Long: `Launch an interactive TUI dashboard that shows the current event rotation
with time left per slot and the top players of a region.

The dashboard refreshes on the interval set by dashboard.refresh_interval.

Keyboard shortcuts:
  Tab         Switch between rotation and rankings
  ↑/k         Move selection up
  ↓/j         Move selection down
  r           Refresh now, bypassing the cache
  q/Ctrl+C    Quit dashboard`,
		Example: `  # Launch the dashboard
  bstats dashboard`,
		Aliases: []string{"ui"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context())
		},
	}

	return cmd
}

func runDashboard(ctx context.Context) error {
	cfg, err := Settings()
	if err != nil {
		return err
	}

	api, err := Connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = api.Close() }()

	model := tui.NewModel(ctx, api, tui.Options{
		RefreshInterval: cfg.Dashboard.RefreshInterval,
		Region:          cfg.Dashboard.Region,
		Limit:           cfg.Dashboard.Limit,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}

	return nil
}
