package components

import (
	"strings"

	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// right-aligned status text on the right.
func RenderStatusBar(width int, hints, status string, warn bool) string {
	t := theme.Active
	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	right := base
	if warn {
		right = right.Foreground(t.Warning)
	}

	left := base.Render(" " + hints)
	rightStr := right.Render(status + " ")
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(rightStr), 0)
	return left + base.Render(strings.Repeat(" ", gap)) + rightStr
}
