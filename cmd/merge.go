package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/model"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagMergeOutput      string
	flagMergeExtendDates bool
	flagMergeCosts       bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <current-file> <incoming-file>",
	Short: "Compare two project files and merge the incoming one into the current",
	Long: "Reports differing project dates and rate-card conflicts. With --output, writes the merged " +
		"document: existing rate cards win, new roles are appended.",
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&flagMergeOutput, "output", "o", "", "Write the merged project to this file (.json or .yaml)")
	mergeCmd.Flags().BoolVar(&flagMergeExtendDates, "extend-dates", false, "Widen the project dates to cover both files")
	mergeCmd.Flags().BoolVar(&flagMergeCosts, "costs", true, "Append the incoming cost records and risks")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(_ *cobra.Command, args []string) error {
	current, err := source.ReadFile(args[0])
	if err != nil {
		return err
	}
	incoming, err := source.ReadFile(args[1])
	if err != nil {
		return err
	}

	dates := pipeline.CompareProjectDates(current.ProjectInfo, incoming.ProjectInfo)
	conflicts := pipeline.FindRateCardConflicts(current.RateCards, incoming.RateCards)

	fmt.Println()
	fmt.Println(cli.RenderTitle("MERGE"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Dates",
		Headers: []string{"", "Current", "Incoming", "Combined"},
		Rows: [][]string{
			{"Start", orDash(current.ProjectInfo.StartDate), orDash(incoming.ProjectInfo.StartDate), orDash(dates.EarliestStart)},
			{"End", orDash(current.ProjectInfo.EndDate), orDash(incoming.ProjectInfo.EndDate), orDash(dates.LatestEnd)},
		},
	}))
	if dates.StartDiffers || dates.EndDiffers {
		fmt.Println(cli.RenderWarning("project dates differ; use --extend-dates to cover both"))
	}
	fmt.Println()

	if len(conflicts) > 0 {
		rows := make([][]string, 0, len(conflicts))
		for _, c := range conflicts {
			rows = append(rows, []string{
				c.Role,
				describeCard(c.Existing),
				describeCard(c.Incoming),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Rate Card Conflicts (current kept)",
			Headers: []string{"Role", "Current", "Incoming"},
			Rows:    rows,
		}))
		fmt.Println()
	} else {
		fmt.Println("  No rate card conflicts.")
		fmt.Println()
	}

	merged := mergeProjects(current, incoming, dates)
	fmt.Printf("  Rate cards: %d current + %d new\n",
		len(current.RateCards), len(merged.RateCards)-len(current.RateCards))

	eng := newEngine()
	before := eng.Summarize(args[0], current, appConfig.Forecast.ContingencyPercent).Costs.Total
	after := eng.Summarize(args[0], merged, appConfig.Forecast.ContingencyPercent).Costs.Total
	fmt.Printf("  Estimated total: %s -> %s (%s)\n", cli.FormatCost(before), cli.FormatCost(after), cli.FormatDelta(after, before))

	if flagMergeOutput == "" {
		fmt.Println("  Dry run; pass --output to write the merged project.")
		fmt.Println()
		return nil
	}

	format, ok := source.FormatOf(flagMergeOutput)
	if !ok {
		return fmt.Errorf("writing %s: %w", flagMergeOutput, source.ErrUnsupportedFormat)
	}
	body, err := source.Encode(merged, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagMergeOutput, body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagMergeOutput, err)
	}
	fmt.Printf("  Wrote %s\n\n", flagMergeOutput)
	return nil
}

// mergeProjects folds incoming into a copy of current per the merge flags.
func mergeProjects(current, incoming model.ProjectData, dates pipeline.DateComparison) model.ProjectData {
	merged := current
	merged.RateCards = pipeline.MergeRateCards(current.RateCards, incoming.RateCards)

	if flagMergeExtendDates {
		merged.ProjectInfo.StartDate = dates.EarliestStart
		merged.ProjectInfo.EndDate = dates.LatestEnd
	}

	if flagMergeCosts {
		merged.InternalResources = append(append([]model.InternalResource(nil), current.InternalResources...), incoming.InternalResources...)
		merged.VendorCosts = append(append([]model.VendorCost(nil), current.VendorCosts...), incoming.VendorCosts...)
		merged.ToolCosts = append(append([]model.ToolCost(nil), current.ToolCosts...), incoming.ToolCosts...)
		merged.MiscCosts = append(append([]model.MiscCost(nil), current.MiscCosts...), incoming.MiscCosts...)
		merged.Risks = append(append([]model.Risk(nil), current.Risks...), incoming.Risks...)
	}
	return merged
}

func describeCard(c model.RateCard) string {
	return fmt.Sprintf("%s/day (%s)", cli.FormatCost(c.Rate.Float()), c.Category)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
