package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/model"

	"github.com/spf13/cobra"
)

var flagPortfolioCSV bool

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Monthly cost rollup across every project in the portfolio directory",
	RunE:  runPortfolio,
}

func init() {
	portfolioCmd.Flags().BoolVar(&flagPortfolioCSV, "csv", false, "Write monthly costs as CSV to stdout")
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, _ []string) error {
	eng := newEngine()
	result, err := loadPortfolio(cmd.Context(), eng)
	if err != nil {
		return err
	}

	if len(result.Projects) == 0 {
		fmt.Printf("\n  No project files found in %s.\n", portfolioDir())
		fmt.Println("  Point --portfolio-dir at a directory of .json or .yaml project files.")
		return nil
	}

	timeline := eng.UnifiedTimeline(result.Projects)
	agg := eng.PortfolioAggregate(result.Projects, timeline)

	if flagPortfolioCSV {
		return cli.WritePortfolioCSV(os.Stdout, agg)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PORTFOLIO  %d projects", len(result.Projects))))
	fmt.Println()

	span := "undated"
	if len(timeline) > 0 {
		span = fmt.Sprintf("%s to %s (%s)", timeline[0].Label, timeline[len(timeline)-1].Label, cli.FormatMonths(len(timeline)))
	}
	rows := [][]string{
		{"Projects", strconv.Itoa(len(result.Projects))},
		{"Timeline", span},
		{"Total cost", cli.FormatCost(agg.TotalPortfolioCost)},
	}
	if len(timeline) > 0 {
		rows = append(rows,
			[]string{"Avg per month", cli.FormatCost(agg.TotalPortfolioCost / float64(len(timeline)))},
			[]string{"Peak demand", fmt.Sprintf("%s in %s", cli.FormatFTE(agg.PeakResourceDemand.FTE), agg.PeakResourceDemand.Label)},
		)
	}
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	fmt.Println()

	if len(agg.MonthlyCosts) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Monthly Costs",
			Headers: []string{"Month", "Internal", "External", "Tools", "Misc", "Total", "Projects"},
			Rows:    monthlyRows(agg.MonthlyCosts),
		}))
		totals := make([]float64, len(agg.MonthlyCosts))
		for i, m := range agg.MonthlyCosts {
			totals[i] = m.Total
		}
		fmt.Printf("\n  Trend  %s\n\n", cli.RenderSparkline(totals))
	}

	renderBreakdown(agg.CostBreakdown)
	warnFileErrors(result)
	return nil
}

func monthlyRows(months []model.MonthlyCost) [][]string {
	rows := make([][]string, 0, len(months)+2)
	var sum model.MonthlyCost
	for i, m := range months {
		if i > 0 && m.Key[:4] != months[i-1].Key[:4] {
			rows = append(rows, cli.Separator)
		}
		rows = append(rows, []string{
			m.Label,
			cli.FormatCost(m.Internal),
			cli.FormatCost(m.External),
			cli.FormatCost(m.Tools),
			cli.FormatCost(m.Misc),
			cli.FormatCost(m.Total),
			strconv.Itoa(len(m.Projects)),
		})
		sum.Internal += m.Internal
		sum.External += m.External
		sum.Tools += m.Tools
		sum.Misc += m.Misc
		sum.Total += m.Total
	}
	rows = append(rows, cli.Separator, []string{
		"Total",
		cli.FormatCost(sum.Internal),
		cli.FormatCost(sum.External),
		cli.FormatCost(sum.Tools),
		cli.FormatCost(sum.Misc),
		cli.FormatCost(sum.Total),
		"",
	})
	return rows
}

func renderBreakdown(b model.CostBreakdown) {
	parts := []struct {
		label string
		value float64
	}{
		{"Internal", b.Internal},
		{"External", b.External},
		{"Tools", b.Tools},
		{"Misc", b.Misc},
		{"Contingency", b.Contingency},
	}
	peak := 0.0
	for _, p := range parts {
		peak = max(peak, p.value)
	}

	fmt.Println("  Cost Breakdown")
	for _, p := range parts {
		fmt.Printf("%s  %s\n",
			cli.RenderHorizontalBar(p.label, 12, p.value, peak, 30),
			cli.FormatShare(p.value, b.Total))
	}
	fmt.Printf("\n  %-12s %s\n\n", "Total", cli.FormatCost(b.Total))
}
