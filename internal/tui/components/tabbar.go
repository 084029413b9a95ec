package components

import (
	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Projects", Key: 'p', KeyPos: 0},
	{Name: "Compare", Key: 'c', KeyPos: 0},
}

const tabSeparator = "│"

// renderTab draws one tab with one column of padding on each side.
func renderTab(tab Tab, active bool) string {
	t := theme.Active
	pad := lipgloss.NewStyle().Background(t.Surface).Padding(0, 1)

	if active {
		return pad.Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true).Render(tab.Name)
	}

	name := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	key := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Underline(true)
	label := name.Render(tab.Name[:tab.KeyPos]) +
		key.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
		name.Render(tab.Name[tab.KeyPos+1:])
	return pad.Render(label)
}

// TabVisualWidth returns the rendered width of a tab so mouse hit-testing
// can follow RenderTabBar exactly.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render(tabSeparator)

	var row string
	for i, tab := range Tabs {
		if i > 0 {
			row += sep
		}
		row += renderTab(tab, i == activeIdx)
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
