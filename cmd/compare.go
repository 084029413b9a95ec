package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagSort string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare portfolio projects by cost and duration",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&flagSort, "sort", "s", "",
		"Sort order: "+strings.Join(pipeline.SortOrders, ", ")+" (default from config)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	sortBy := flagSort
	if sortBy == "" {
		sortBy = appConfig.General.DefaultSort
	}
	if flagSort != "" && !slices.Contains(pipeline.SortOrders, flagSort) {
		return fmt.Errorf("unknown sort order %q (want one of %s)", flagSort, strings.Join(pipeline.SortOrders, ", "))
	}

	eng := newEngine()
	result, err := loadPortfolio(cmd.Context(), eng)
	if err != nil {
		return err
	}
	if len(result.Projects) == 0 {
		fmt.Printf("\n  No project files found in %s.\n", portfolioDir())
		return nil
	}

	rows := eng.CompareProjects(result.Projects, sortBy)

	var total float64
	for _, r := range rows {
		total += r.TotalCost
	}

	table := make([][]string, 0, len(rows)+2)
	for _, r := range rows {
		perMonth := "-"
		if r.DurationMonths > 0 {
			perMonth = cli.FormatCost(r.CostPerMonth)
		}
		table = append(table, []string{
			r.Name,
			cli.FormatCost(r.TotalCost),
			cli.FormatShare(r.TotalCost, total),
			cli.FormatMonths(r.DurationMonths),
			perMonth,
			strconv.Itoa(r.ResourceCount),
		})
	}
	table = append(table, cli.Separator, []string{"Total", cli.FormatCost(total), "", "", "", ""})

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COMPARE  by %s", sortBy)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Project", "Total", "Share", "Duration", "Per Month", "Resources"},
		Rows:    table,
	}))
	fmt.Println()

	warnFileErrors(result)
	return nil
}
