package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/tui/components"
	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	const numW = 11
	const cols = 5
	nameW := max(inner-cols*(numW+1), 10)

	var total float64
	for _, r := range a.comparison {
		total += r.TotalCost
	}

	format := func(cells ...string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "%-*s", nameW, truncStr(cells[0], nameW))
		for _, c := range cells[1:] {
			fmt.Fprintf(&b, " %*s", numW, c)
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(format("Project", "Total", "Share", "Duration", "Per Month", "Resources")))
	for _, r := range a.comparison {
		perMonth := "-"
		if r.DurationMonths > 0 {
			perMonth = cli.FormatCost(r.CostPerMonth)
		}
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(format(
			r.Name,
			cli.FormatCost(r.TotalCost),
			cli.FormatShare(r.TotalCost, total),
			cli.FormatMonths(r.DurationMonths),
			perMonth,
			fmt.Sprintf("%d", r.ResourceCount),
		)))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Sorted by %s · [s] next order", pipeline.SortOrders[a.sortIdx])))

	return components.ContentCard("Compare", b.String(), cw)
}
