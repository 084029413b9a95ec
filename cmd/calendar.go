package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/costplan/internal/cli"

	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar <start-date> <end-date>",
	Short: "Show the month calendar a project date range produces",
	Args:  cobra.ExactArgs(2),
	RunE:  runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(_ *cobra.Command, args []string) error {
	info := newEngine().Calendar(args[0], args[1])

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CALENDAR  %s to %s", args[0], args[1])))
	fmt.Println()

	rows := make([][]string, 0, info.Count+len(info.YearGroups))
	i := 0
	for g, group := range info.YearGroups {
		if g > 0 {
			rows = append(rows, cli.Separator)
		}
		for range group.Count {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				info.MonthKeys[i],
				info.Months[i],
				strconv.Itoa(group.Year),
			})
			i++
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Key", "Month", "Year"},
		Rows:    rows,
	}))
	fmt.Printf("\n  %s across %d year(s)\n\n", cli.FormatMonths(info.Count), len(info.YearGroups))
	return nil
}
