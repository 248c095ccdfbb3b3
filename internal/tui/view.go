package tui

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Dashboard closed.\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.loading && m.rows() == 0:
		b.WriteString("Loading...\n")
	case m.view == viewRotation && len(m.rotation) == 0:
		b.WriteString("No events in rotation.\n")
	case m.view == viewLeaderboard && len(m.leaders) == 0:
		b.WriteString("No rankings available.\n")
	case m.view == viewRotation:
		b.WriteString(m.renderRotation())
	default:
		b.WriteString(m.renderLeaderboard())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", m.err)))
	}

	return b.String()
}

// renderHeader renders the dashboard header
func (m Model) renderHeader() string {
	title := "bstats Dashboard"
	lastUpdate := "Last Update: -"
	if !m.lastUpdate.IsZero() {
		lastUpdate = fmt.Sprintf("Last Update: %s", m.lastUpdate.Format("15:04:05"))
	}

	totalWidth := 80
	if m.width > 0 {
		totalWidth = m.width
	}

	spacing := max(1, totalWidth-len(title)-len(lastUpdate)-4)

	var b strings.Builder
	b.WriteString("╭")
	b.WriteString(strings.Repeat("─", totalWidth-2))
	b.WriteString("╮\n")

	headerText := fmt.Sprintf(" %s%s%s ", title, strings.Repeat(" ", spacing), lastUpdate)
	b.WriteString("│")
	b.WriteString(headerStyle.Render(headerText))
	b.WriteString("│\n")

	b.WriteString("╰")
	b.WriteString(strings.Repeat("─", totalWidth-2))
	b.WriteString("╯")

	return b.String()
}

// renderTabs renders the panel selector
func (m Model) renderTabs() string {
	rotation := inactiveTabStyle.Render("Event Rotation")
	leaders := inactiveTabStyle.Render(fmt.Sprintf("Top %d (%s)", m.opts.Limit, strings.ToUpper(m.opts.Region)))
	if m.view == viewRotation {
		rotation = activeTabStyle.Render("Event Rotation")
	} else {
		leaders = activeTabStyle.Render(fmt.Sprintf("Top %d (%s)", m.opts.Limit, strings.ToUpper(m.opts.Region)))
	}
	return rotation + "   " + leaders
}

// renderRotation renders the event slots with time left
func (m Model) renderRotation() string {
	var b strings.Builder

	modeWidth, mapWidth := len("MODE"), len("MAP")
	for _, r := range m.rotation {
		modeWidth = max(modeWidth, len(r.Event.ModeName()))
		mapWidth = max(mapWidth, len(r.Event.Map))
	}

	header := fmt.Sprintf("  %-*s  %-*s  %-12s  %s", modeWidth, "MODE", mapWidth, "MAP", "TIME LEFT", "ENDS IN")
	b.WriteString(tableHeaderStyle.Render(header))
	b.WriteString("\n")

	for i, r := range m.rotation {
		row := fmt.Sprintf("%-*s  %-*s  ", modeWidth, r.Event.ModeName(), mapWidth, r.Event.Map)
		bar := renderProgressBar(slotFraction(r, m), 12)
		ends := endsIn(r, m)

		if i == m.selectedIdx {
			b.WriteString(selectedRowStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString(bar + "  " + ends + "\n")
	}

	return b.String()
}

// renderLeaderboard renders the rankings with a trophy curve
func (m Model) renderLeaderboard() string {
	var b strings.Builder

	nameWidth := len("NAME")
	for _, e := range m.leaders {
		nameWidth = max(nameWidth, len(e.Name))
	}

	header := fmt.Sprintf("  %4s  %-*s  %-12s  %8s  %s", "RANK", nameWidth, "NAME", "TAG", "TROPHIES", "CLUB")
	b.WriteString(tableHeaderStyle.Render(header))
	b.WriteString("\n")

	trophies := make([]float64, 0, len(m.leaders))
	for i, e := range m.leaders {
		club := "-"
		if e.Club != nil && e.Club.Name != "" {
			club = e.Club.Name
		}

		rank := rankStyle(e.Rank).Render(fmt.Sprintf("%4d", e.Rank))
		row := fmt.Sprintf("%-*s  %-12s  %8d  %s", nameWidth, e.Name, e.Tag, e.Trophies, club)
		if i == m.selectedIdx {
			b.WriteString(selectedRowStyle.Render("> ") + rank + "  " + selectedRowStyle.Render(row))
		} else {
			b.WriteString("  " + rank + "  " + row)
		}
		b.WriteString("\n")

		trophies = append(trophies, float64(e.Trophies))
	}

	// Rank 1 on the right so the curve rises.
	for i, j := 0, len(trophies)-1; i < j; i, j = i+1, j-1 {
		trophies[i], trophies[j] = trophies[j], trophies[i]
	}
	b.WriteString("\n  Trophy curve: ")
	b.WriteString(renderSparkline(trophies, len(trophies)))
	b.WriteString("\n")

	return b.String()
}

// renderFooter renders the dashboard footer with action help
func (m Model) renderFooter() string {
	refresh := units.HumanDuration(m.opts.RefreshInterval)
	return footerStyle.Render(fmt.Sprintf("[tab] switch  [↑/↓] navigate  [r]efresh  [q]uit   auto-refresh every %s", strings.ToLower(refresh)))
}

// slotFraction returns the share of a slot's duration still remaining.
func slotFraction(r brawlstars.Rotation, m Model) float64 {
	total := r.EndTime.Sub(r.StartTime.Time)
	if total <= 0 {
		return 0
	}
	return float64(r.Remaining(m.now)) / float64(total)
}

func endsIn(r brawlstars.Rotation, m Model) string {
	if r.EndTime.IsZero() {
		return "-"
	}
	remaining := r.Remaining(m.now)
	if remaining <= 0 {
		return "ended"
	}
	return units.HumanDuration(remaining)
}
