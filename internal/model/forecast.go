package model

import "time"

// YearGroup is a contiguous run of calendar months sharing one year.
type YearGroup struct {
	Year   int
	Months []string // month keys
	Count  int
}

// MonthInfo is the derived month-by-month calendar of one project.
// MonthKeys[i] is always "month"+(i+1); it is the join key between the
// calendar and every cost record.
type MonthInfo struct {
	Months     []string // display labels
	MonthKeys  []string
	YearGroups []YearGroup
	Count      int
}

// ForecastTotals holds per-category sums of a project forecast.
type ForecastTotals struct {
	Internal float64
	Vendor   float64
	Tool     float64
	Misc     float64
}

// Sum returns the sum of all categories.
func (t ForecastTotals) Sum() float64 {
	return t.Internal + t.Vendor + t.Tool + t.Misc
}

// ProjectForecast is the per-month cost forecast of one project. All four
// monthly slices have the calendar's Count elements.
type ProjectForecast struct {
	InternalMonthly []float64
	VendorMonthly   []float64
	ToolMonthly     []float64
	MiscMonthly     []float64
	Totals          ForecastTotals
	GrandTotal      float64
}

// MonthTotal returns the all-category cost of calendar month i (0-based).
func (f ProjectForecast) MonthTotal(i int) float64 {
	if i < 0 || i >= len(f.InternalMonthly) {
		return 0
	}
	return f.InternalMonthly[i] + f.VendorMonthly[i] + f.ToolMonthly[i] + f.MiscMonthly[i]
}

// TimelineEntry is one real calendar month on a portfolio timeline.
type TimelineEntry struct {
	Key   string // "YYYY-MM"
	Date  time.Time
	Label string
	Year  int
	Month int // 1-12
}
