package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	if len(widths) != 3 || widths[0] != 34 || widths[1] != 33 || widths[2] != 33 {
		t.Errorf("LayoutRow(100, 3) = %v", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowPadsToTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4", 22)

	joined := CardRow([]string{tall, short})
	lines := strings.Split(joined, "\n")
	if len(lines) != lipgloss.Height(tall) {
		t.Errorf("joined height = %d, want %d", len(lines), lipgloss.Height(tall))
	}

	// Lines below the short card must still be styled, not bare terminal.
	for i := lipgloss.Height(short); i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI styling", i)
		}
	}
}

func TestMetricRowWidth(t *testing.T) {
	row := MetricRow([]Metric{
		{Label: "Total", Value: "$12,000"},
		{Label: "Peak", Value: "2.5 FTE", Detail: "Mar 2025"},
	}, 60)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d width = %d, want 60", i, w)
		}
	}
}

func TestTabBarWidths(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 80)
		if w := lipgloss.Width(bar); w != 80 {
			t.Errorf("active=%d bar width = %d, want 80", active, w)
		}
		for i, tab := range Tabs {
			want := len(tab.Name) + 2
			if got := TabVisualWidth(tab, i == active); got != want {
				t.Errorf("tab %s width = %d, want %d", tab.Name, got, want)
			}
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('p') != 1 || TabIdxByKey('z') != -1 {
		t.Errorf("TabIdxByKey mismatch")
	}
}

func TestStackedBar(t *testing.T) {
	segs := []Segment{
		{Value: 50, Color: theme.Active.Internal},
		{Value: 25, Color: theme.Active.External},
		{Value: -5, Color: theme.Active.Tools},
	}
	bar := StackedBar(segs, 100, 20)
	if w := lipgloss.Width(bar); w != 20 {
		t.Errorf("width = %d, want 20", w)
	}
	if n := strings.Count(bar, "█"); n != 15 {
		t.Errorf("filled cells = %d, want 15", n)
	}
	if n := strings.Count(StackedBar(segs, 0, 10), "█"); n != 0 {
		t.Errorf("zero peak filled %d cells", n)
	}
}

func TestStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(70, "[?]help  [q]uit", "3 projects", false)
	if w := lipgloss.Width(bar); w != 70 {
		t.Errorf("width = %d, want 70", w)
	}
}
