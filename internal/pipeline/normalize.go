package pipeline

import (
	"math"
	"strconv"

	"github.com/theirongolddev/costplan/internal/model"
)

// MonthValue reads one month's value from a cost record's period fields.
// A monthly field ("month5") wins whenever it is present, even if zero.
// Otherwise the legacy quarter covering the month is used: quarter
// ceil(n/3), so month13 and later map to quarters that older files never
// carried and read as 0. Each month is resolved independently, so a
// record may mix monthly and quarterly fields.
func MonthValue(alloc model.Allocation, monthKey string) float64 {
	if v, ok := alloc[monthKey]; ok {
		return finite(v)
	}
	n := monthNumber(monthKey)
	if n == 0 {
		return 0
	}
	quarter := (n + 2) / 3
	return finite(alloc["q"+strconv.Itoa(quarter)])
}

// ResourceMonthCost is a resource's labour cost for one month.
func ResourceMonthCost(r model.InternalResource, monthKey string) float64 {
	return MonthValue(r.Days, monthKey) * r.DailyRate.Float()
}

// VendorMonthCost is a vendor line's cost for one month.
func VendorMonthCost(v model.VendorCost, monthKey string) float64 {
	return MonthValue(v.Costs, monthKey)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
