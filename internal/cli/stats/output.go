package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"
	"github.com/steviee/go-bstats/internal/brawlstars"
)

// Output is the JSON envelope written in --json mode.
type Output struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#F5A623")).
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	victoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	defeatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

// writeJSON writes data inside a success envelope.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Output{Status: "success", Data: data}); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}

// outputError writes the error envelope in JSON mode and returns err so the
// command still exits non-zero.
func outputError(w io.Writer, jsonMode bool, err error) error {
	if jsonMode {
		out := Output{Status: "error", Error: err.Error(), Kind: errorKind(err)}
		_ = json.NewEncoder(w).Encode(out)
	}
	return err
}

// errorKind names the failure class for scripts.
func errorKind(err error) string {
	kinds := []struct {
		target error
		name   string
	}{
		{brawlstars.ErrMissingToken, "missing_token"},
		{brawlstars.ErrInvalidTag, "invalid_tag"},
		{brawlstars.ErrValidation, "validation"},
		{brawlstars.ErrForbidden, "forbidden"},
		{brawlstars.ErrNotFound, "not_found"},
		{brawlstars.ErrRateLimited, "rate_limited"},
		{brawlstars.ErrServerError, "server_error"},
		{brawlstars.ErrServiceUnavailable, "service_unavailable"},
		{brawlstars.ErrNotInClub, "not_in_club"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return k.name
		}
	}
	return ""
}

// renderTable lays out rows in aligned columns with a styled header.
// Columns listed in right are right-aligned.
func renderTable(headers []string, rows [][]string, right ...int) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	alignRight := make(map[int]bool, len(right))
	for _, i := range right {
		alignRight[i] = true
	}

	pad := func(i int, s string) string {
		style := lipgloss.NewStyle().Width(widths[i])
		if alignRight[i] {
			style = style.Align(lipgloss.Right)
		}
		return style.Render(s)
	}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = tableHeaderStyle.Render(pad(i, h))
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteString("\n")

	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(i, cell)
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFields renders label/value pairs, one per line.
func renderFields(fields [][2]string) string {
	width := 0
	for _, f := range fields {
		if w := lipgloss.Width(f[0]); w > width {
			width = w
		}
	}

	var b strings.Builder
	for _, f := range fields {
		label := lipgloss.NewStyle().Width(width + 2).Render(f[0] + ":")
		b.WriteString(labelStyle.Render(label))
		b.WriteString(f[1])
		b.WriteString("\n")
	}
	return b.String()
}

// compactCount formats large counts such as trophies, e.g. 31250 as "31.25k".
func compactCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return units.CustomSize("%.4g%s", float64(n), 1000.0, []string{"", "k", "M", "B"})
}

// resultStyle colours a battle result.
func resultStyle(result string) lipgloss.Style {
	switch result {
	case "victory":
		return victoryStyle
	case "defeat":
		return defeatStyle
	default:
		return lipgloss.NewStyle()
	}
}
