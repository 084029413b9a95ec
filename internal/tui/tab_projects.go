package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/model"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/tui/components"
	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderProjectsTab(cw, h int) string {
	widths := components.LayoutRow(cw, 3)
	listW := widths[0]
	detailW := widths[1] + widths[2]
	rows := max(h-3, 1)

	list := components.ContentCard("Projects", a.projectList(components.CardInnerWidth(listW), rows), listW)
	p := a.projects[a.cursor]
	detail := components.ContentCard(p.Name(), a.projectDetail(p, components.CardInnerWidth(detailW)), detailW)
	return components.CardRow([]string{list, detail})
}

// projectList renders the selectable list, scrolled to keep the cursor visible.
func (a App) projectList(width, rows int) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	offset := 0
	if a.cursor >= rows {
		offset = a.cursor - rows + 1
	}
	end := min(offset+rows, len(a.projects))

	const costW = 9
	nameW := max(width-costW-1, 4)

	var b strings.Builder
	for i := offset; i < end; i++ {
		p := a.projects[i]
		name := fmt.Sprintf("%-*s", nameW, truncStr(p.Name(), nameW))
		cost := fmt.Sprintf(" %*s", costW, cli.FormatCompactCost(p.Costs.Total))
		if i == a.cursor {
			b.WriteString(selStyle.Render(name + cost))
		} else {
			b.WriteString(nameStyle.Render(name) + costStyle.Render(cost))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) projectDetail(p model.PortfolioProject, width int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	line := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value) + "\n"
	}

	timeline := pipeline.ProjectTimeline(p.Metadata)
	dates := "undated"
	if p.Metadata.StartDate != "" || p.Metadata.EndDate != "" {
		dates = fmt.Sprintf("%s to %s", orDash(p.Metadata.StartDate), orDash(p.Metadata.EndDate))
	}

	var b strings.Builder
	b.WriteString(line("File", p.FileName))
	b.WriteString(line("Dates", fmt.Sprintf("%s (%s)", dates, cli.FormatMonths(len(timeline)))))
	if p.Metadata.ProjectManager != "" {
		b.WriteString(line("Manager", p.Metadata.ProjectManager))
	}
	b.WriteString(line("Resources", fmt.Sprintf("%d internal, %d external",
		len(p.Resources.Internal), len(p.Resources.External))))
	b.WriteString("\n")

	c := p.Costs
	b.WriteString(line("Internal", cli.FormatCost(c.Internal.Total)))
	b.WriteString(line("External", cli.FormatCost(c.External.Total)))
	b.WriteString(line("Tools", cli.FormatCost(c.Tools.Total)))
	b.WriteString(line("Misc", cli.FormatCost(c.Misc.Total)))
	b.WriteString(line("Contingency", cli.FormatCost(c.Contingency)))
	b.WriteString(line("Total", cli.FormatCost(c.Total)))

	if len(timeline) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("No dates, so no monthly profile."))
		return b.String()
	}

	// Labor profile: internal + external by project month.
	peak := 0.0
	for i := range timeline {
		peak = max(peak, c.Internal.MonthlyBreakdown[i+1]+c.External.MonthlyBreakdown[i+1])
	}
	barW := max(width-monthLabelWidth-11, 4)

	b.WriteString("\n")
	b.WriteString(labelStyle.Bold(true).Render("Labor by month"))
	for i, m := range timeline {
		in := c.Internal.MonthlyBreakdown[i+1]
		ex := c.External.MonthlyBreakdown[i+1]
		bar := components.StackedBar([]components.Segment{
			{Value: in, Color: t.Internal},
			{Value: ex, Color: t.External},
		}, peak, barW)
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", monthLabelWidth, m.Label)))
		b.WriteString(bar)
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %9s", cli.FormatCompactCost(in+ex))))
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
