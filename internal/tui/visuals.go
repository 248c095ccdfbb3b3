package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline characters from low to high
var sparklineChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderSparkline creates a sparkline from values, keeping the last width
// values and padding short input with the lowest bar.
func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("▁", width)
	}

	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}

	var result strings.Builder
	if pad := width - len(values); pad > 0 {
		result.WriteString(strings.Repeat("▁", pad))
	}
	for _, v := range values {
		index := int((v - lo) / span * float64(len(sparklineChars)-1))
		index = max(0, min(index, len(sparklineChars)-1))
		result.WriteRune(sparklineChars[index])
	}

	return result.String()
}

// renderProgressBar draws a bar for a fraction in [0,1].
func renderProgressBar(fraction float64, width int) string {
	fraction = math.Max(0, math.Min(1, fraction))

	filledWidth := int(math.Round(fraction * float64(width)))
	filled := strings.Repeat("█", filledWidth)
	empty := strings.Repeat("░", width-filledWidth)

	return lipgloss.NewStyle().
		Foreground(remainingColor(1 - fraction)).
		Render(filled + empty)
}

// remainingColor turns red as a slot runs out.
func remainingColor(left float64) lipgloss.Color {
	switch {
	case left <= 0.1:
		return lipgloss.Color("#FF0000")
	case left <= 0.3:
		return lipgloss.Color("#FFA500")
	default:
		return lipgloss.Color("#00FF00")
	}
}
