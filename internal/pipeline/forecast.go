package pipeline

import (
	"github.com/theirongolddev/costplan/internal/model"
)

// ProjectForecast computes the per-month cost series and totals of one
// project over the given calendar.
//
// Internal cost is days × dailyRate per month, vendor cost is read
// directly, tool charges are placed by DistributeTool, and each misc item
// is spread evenly over the calendar.
func (e *Engine) ProjectForecast(data model.ProjectData, info model.MonthInfo) model.ProjectForecast {
	n := info.Count
	f := model.ProjectForecast{
		InternalMonthly: make([]float64, n),
		VendorMonthly:   make([]float64, n),
		ToolMonthly:     make([]float64, n),
		MiscMonthly:     make([]float64, n),
	}
	if n == 0 {
		return f
	}

	for _, r := range data.InternalResources {
		for i, key := range info.MonthKeys[:n] {
			f.InternalMonthly[i] += ResourceMonthCost(r, key)
		}
	}

	for _, v := range data.VendorCosts {
		for i, key := range info.MonthKeys[:n] {
			f.VendorMonthly[i] += VendorMonthCost(v, key)
		}
	}

	projectStart, _ := ParseDate(data.ProjectInfo.StartDate)
	for _, t := range data.ToolCosts {
		for i, v := range e.DistributeTool(t, info, projectStart) {
			f.ToolMonthly[i] += v
		}
	}

	for _, m := range data.MiscCosts {
		share := m.Cost.Float() / float64(n)
		for i := range f.MiscMonthly {
			f.MiscMonthly[i] += share
		}
	}

	f.Totals = model.ForecastTotals{
		Internal: sum(f.InternalMonthly),
		Vendor:   sum(f.VendorMonthly),
		Tool:     sum(f.ToolMonthly),
		Misc:     sum(f.MiscMonthly),
	}
	f.GrandTotal = f.Totals.Sum()
	return f
}

// ProjectMiscTotal is the flat sum of misc item costs. The portfolio view
// uses this figure rather than a calendar-distributed one.
func ProjectMiscTotal(items []model.MiscCost) float64 {
	var total float64
	for _, m := range items {
		total += m.Cost.Float()
	}
	return total
}

// PortfolioMiscMonthlySpread is the per-month misc charge a project
// contributes to the portfolio timeline.
func PortfolioMiscMonthlySpread(total float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	return total / float64(months)
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}
