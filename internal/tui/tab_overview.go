package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/tui/components"
	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const monthLabelWidth = 9 // "Jan 2025 "

func (a App) renderOverviewTab(cw, h int) string {
	agg := a.agg
	months := len(a.timeline)

	span := "undated"
	avg := "-"
	peak := "-"
	peakDetail := ""
	if months > 0 {
		span = fmt.Sprintf("%s to %s", a.timeline[0].Label, a.timeline[months-1].Label)
		avg = cli.FormatCost(agg.TotalPortfolioCost / float64(months))
		peak = cli.FormatFTE(agg.PeakResourceDemand.FTE)
		peakDetail = agg.PeakResourceDemand.Label
	}

	metrics := components.MetricRow([]components.Metric{
		{Label: "Portfolio Cost", Value: cli.FormatCost(agg.TotalPortfolioCost),
			Detail: "incl. " + cli.FormatCost(agg.CostBreakdown.Contingency) + " contingency"},
		{Label: "Avg / Month", Value: avg, Detail: cli.FormatMonths(months)},
		{Label: "Peak Demand", Value: peak, Detail: peakDetail},
		{Label: "Projects", Value: fmt.Sprintf("%d", len(a.projects)), Detail: span},
	}, cw)

	widths := components.LayoutRow(cw, 3)
	leftW := widths[0] + widths[1]
	rightW := widths[2]
	rows := max(h-lipgloss.Height(metrics)-3, 1)

	left := components.ContentCard("Monthly Costs", a.monthlyChart(components.CardInnerWidth(leftW), rows), leftW)
	right := components.ContentCard("Cost Breakdown", a.breakdownBody(), rightW)

	return metrics + "\n" + components.CardRow([]string{left, right})
}

// monthlyChart draws one stacked bar per unified month, colored by category.
func (a App) monthlyChart(width, rows int) string {
	t := theme.Active
	months := a.agg.MonthlyCosts
	if len(months) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No dated projects")
	}

	peak := 0.0
	for _, m := range months {
		peak = max(peak, m.Total)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	peakStyle := valueStyle.Foreground(t.Warning).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	const valueW = 10
	barW := max(width-monthLabelWidth-valueW-2, 4)

	shown := months
	hidden := 0
	if len(months) > rows {
		shown = months[:max(rows-1, 1)]
		hidden = len(months) - len(shown)
	}

	var b strings.Builder
	for i, m := range shown {
		if i > 0 {
			b.WriteString("\n")
		}
		bar := components.StackedBar([]components.Segment{
			{Value: m.Internal, Color: t.Internal},
			{Value: m.External, Color: t.External},
			{Value: m.Tools, Color: t.Tools},
			{Value: m.Misc, Color: t.Misc},
		}, peak, barW)

		vs := valueStyle
		if m.Key == a.agg.PeakResourceDemand.Key {
			vs = peakStyle
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", monthLabelWidth, m.Label)))
		b.WriteString(bar)
		b.WriteString(space)
		b.WriteString(vs.Render(fmt.Sprintf("%*s", valueW, cli.FormatCompactCost(m.Total))))
	}
	if hidden > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("… %d more month(s)", hidden)))
	}
	return b.String()
}

func (a App) breakdownBody() string {
	t := theme.Active
	b := a.agg.CostBreakdown

	parts := []struct {
		label string
		value float64
		color lipgloss.Color
	}{
		{"Internal", b.Internal, t.Internal},
		{"External", b.External, t.External},
		{"Tools", b.Tools, t.Tools},
		{"Misc", b.Misc, t.Misc},
		{"Contingency", b.Contingency, t.TextMuted},
	}

	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var sb strings.Builder
	for _, p := range parts {
		swatch := lipgloss.NewStyle().Foreground(p.color).Background(t.Surface).Render("■ ")
		line := swatch + mutedStyle.Render(fmt.Sprintf("%-12s", p.label)) +
			valueStyle.Render(fmt.Sprintf("%10s", cli.FormatCost(p.value))) +
			mutedStyle.Render(fmt.Sprintf("%8s", cli.FormatShare(p.value, b.Total)))
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  %-12s", "Total")))
	sb.WriteString(valueStyle.Bold(true).Render(fmt.Sprintf("%10s", cli.FormatCost(b.Total))))
	return sb.String()
}
