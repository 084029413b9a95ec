package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/theirongolddev/costplan/internal/model"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteForecastCSV writes one row per calendar month followed by a total row.
func WriteForecastCSV(w io.Writer, info model.MonthInfo, f model.ProjectForecast) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "label", "internal", "vendor", "tools", "misc", "total"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i := 0; i < info.Count && i < len(f.InternalMonthly); i++ {
		row := []string{
			info.MonthKeys[i],
			info.Months[i],
			money(f.InternalMonthly[i]),
			money(f.VendorMonthly[i]),
			money(f.ToolMonthly[i]),
			money(f.MiscMonthly[i]),
			money(f.MonthTotal(i)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	total := []string{
		"total", "",
		money(f.Totals.Internal),
		money(f.Totals.Vendor),
		money(f.Totals.Tool),
		money(f.Totals.Misc),
		money(f.GrandTotal),
	}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WritePortfolioCSV writes one row per unified-timeline month.
func WritePortfolioCSV(w io.Writer, agg model.PortfolioAggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "label", "internal", "external", "tools", "misc", "total", "projects"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, m := range agg.MonthlyCosts {
		row := []string{
			m.Key,
			m.Label,
			money(m.Internal),
			money(m.External),
			money(m.Tools),
			money(m.Misc),
			money(m.Total),
			strconv.Itoa(len(m.Projects)),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
