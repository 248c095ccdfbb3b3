package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.now = time.Time(msg)
		if m.needsRefresh() {
			m.loading = true
			return m, tea.Batch(tickCmd(), loadDashboardCmd(m.ctx, m.source, m.opts, false))
		}
		return m, tickCmd()

	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			// Retry on the next interval rather than on every tick.
			m.lastUpdate = m.now
			slog.Error("failed to load dashboard", "error", msg.err)
			return m, clearErrorCmd()
		}

		m.rotation = msg.rotation
		m.leaders = msg.leaders
		m.lastUpdate = m.now
		m.clampSelection()
		return m, nil

	case clearErrorMsg:
		m.err = nil
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "tab", "left", "right", "h", "l":
		if m.view == viewRotation {
			m.view = viewLeaderboard
		} else {
			m.view = viewRotation
		}
		m.selectedIdx = 0
		return m, nil

	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, loadDashboardCmd(m.ctx, m.source, m.opts, true)
	}

	if m.rows() == 0 {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}
	case "down", "j":
		if m.selectedIdx < m.rows()-1 {
			m.selectedIdx++
		}
	}

	return m, nil
}

func (m *Model) clampSelection() {
	switch {
	case m.rows() == 0:
		m.selectedIdx = 0
	case m.selectedIdx >= m.rows():
		m.selectedIdx = m.rows() - 1
	}
}
