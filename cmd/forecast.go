package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/config"
	applog "github.com/theirongolddev/costplan/internal/log"
	"github.com/theirongolddev/costplan/internal/model"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/source"

	"github.com/spf13/cobra"
)

var flagForecastCSV bool

var forecastCmd = &cobra.Command{
	Use:   "forecast <project-file>",
	Short: "Month-by-month cost forecast of one project",
	Args:  cobra.ExactArgs(1),
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().BoolVar(&flagForecastCSV, "csv", false, "Write the forecast as CSV to stdout")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, args []string) error {
	eng := newEngine()

	data, err := source.ReadFile(args[0])
	if err != nil {
		return err
	}

	data, unpriced := config.ResolveDailyRates(data, config.RateCards(appConfig))
	for _, role := range unpriced {
		eng.Log.Warn("no rate card for role, costed at 0", "role", role, applog.FieldPath, args[0])
	}

	info := eng.Calendar(data.ProjectInfo.StartDate, data.ProjectInfo.EndDate)
	forecast := eng.ProjectForecast(data, info)
	forecast = convertForecast(eng, forecast, data.Currency)

	if flagForecastCSV {
		return cli.WriteForecastCSV(os.Stdout, info, forecast)
	}

	name := data.ProjectInfo.ProjectName
	if name == "" {
		name = args[0]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  %s", name)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Internal", "Vendor", "Tools", "Misc", "Total"},
		Rows:    forecastRows(info, forecast),
	}))
	fmt.Println()

	pct := appConfig.Forecast.ContingencyPercent
	if data.ContingencyPercentage != nil {
		pct = data.ContingencyPercentage.Float()
	}
	contingency := forecast.GrandTotal * pct / 100

	rows := [][]string{
		{"Months", cli.FormatNumber(int64(info.Count))},
		{"Subtotal", cli.FormatCost(forecast.GrandTotal)},
		{fmt.Sprintf("Contingency (%.0f%%)", pct), cli.FormatCost(contingency)},
		{"Total", cli.FormatCost(forecast.GrandTotal + contingency)},
		cli.Separator,
		{"Internal share", cli.FormatShare(forecast.Totals.Internal, forecast.GrandTotal)},
		{"Vendor share", cli.FormatShare(forecast.Totals.Vendor, forecast.GrandTotal)},
		{"Tools share", cli.FormatShare(forecast.Totals.Tool, forecast.GrandTotal)},
		{"Misc share", cli.FormatShare(forecast.Totals.Misc, forecast.GrandTotal)},
	}

	if len(data.Risks) > 0 {
		rs := pipeline.RiskSummary(data.Risks)
		rows = append(rows,
			cli.Separator,
			[]string{"Risks", fmt.Sprintf("%d (%d high)", rs.Count, rs.HighRisk)},
			[]string{"Max risk score", fmt.Sprintf("%.0f", rs.MaxScore)},
			[]string{"Mitigation", cli.FormatCost(rs.TotalMitigation)},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	return nil
}

// forecastRows renders one row per month with a rule between years.
func forecastRows(info model.MonthInfo, f model.ProjectForecast) [][]string {
	rows := make([][]string, 0, info.Count+len(info.YearGroups)+1)
	i := 0
	for g, group := range info.YearGroups {
		if g > 0 {
			rows = append(rows, cli.Separator)
		}
		for range group.Count {
			rows = append(rows, []string{
				info.Months[i],
				cli.FormatCost(f.InternalMonthly[i]),
				cli.FormatCost(f.VendorMonthly[i]),
				cli.FormatCost(f.ToolMonthly[i]),
				cli.FormatCost(f.MiscMonthly[i]),
				cli.FormatCost(f.MonthTotal(i)),
			})
			i++
		}
	}
	rows = append(rows, cli.Separator, []string{
		"Total",
		cli.FormatCost(f.Totals.Internal),
		cli.FormatCost(f.Totals.Vendor),
		cli.FormatCost(f.Totals.Tool),
		cli.FormatCost(f.Totals.Misc),
		cli.FormatCost(f.GrandTotal),
	})
	return rows
}

// convertForecast re-expresses a forecast in the display currency using the
// document's exchange rates. Without rates the forecast is shown as saved.
func convertForecast(eng *pipeline.Engine, f model.ProjectForecast, settings *model.CurrencySettings) model.ProjectForecast {
	to := displayCurrency()
	if settings == nil || settings.PrimaryCurrency == "" {
		return f
	}
	from := strings.ToUpper(settings.PrimaryCurrency)
	if from == to {
		return f
	}

	conv, err := pipeline.Converter(from, to, *settings)
	if err != nil {
		eng.Log.Warn("showing amounts in document currency", applog.FieldError, err)
		cli.CurrencySymbol = symbolFor(from)
		return f
	}

	series := func(xs []float64) []float64 {
		out := make([]float64, len(xs))
		for i, v := range xs {
			out[i] = conv(v)
		}
		return out
	}
	out := model.ProjectForecast{
		InternalMonthly: series(f.InternalMonthly),
		VendorMonthly:   series(f.VendorMonthly),
		ToolMonthly:     series(f.ToolMonthly),
		MiscMonthly:     series(f.MiscMonthly),
		GrandTotal:      conv(f.GrandTotal),
	}
	out.Totals.Internal = conv(f.Totals.Internal)
	out.Totals.Vendor = conv(f.Totals.Vendor)
	out.Totals.Tool = conv(f.Totals.Tool)
	out.Totals.Misc = conv(f.Totals.Misc)
	return out
}
