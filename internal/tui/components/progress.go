package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a loading bar with a percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")
	return bar.ViewAs(pct) + space + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// Segment is one colored part of a stacked bar.
type Segment struct {
	Value float64
	Color lipgloss.Color
}

// StackedBar renders segments as one bar scaled so that peak fills width.
// Negative values and zero-width remainders are dropped.
func StackedBar(segments []Segment, peak float64, width int) string {
	t := theme.Active
	if peak <= 0 || width <= 0 {
		return lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", max(width, 0)))
	}

	var b strings.Builder
	used := 0
	var acc float64
	for _, s := range segments {
		if s.Value <= 0 {
			continue
		}
		acc += s.Value
		// Cumulative rounding keeps the total length proportional.
		end := min(int(acc/peak*float64(width)+0.5), width)
		if end <= used {
			continue
		}
		style := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
		b.WriteString(style.Render(strings.Repeat("█", end-used)))
		used = end
	}
	b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", width-used)))
	return b.String()
}
