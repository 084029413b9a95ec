package pipeline

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/costplan/internal/model"
)

// PortfolioAggregate rolls loaded projects up onto a unified timeline.
//
// Each project is placed on its own timeline: the i-th month of the
// project takes internal and external cost from its monthly breakdown at
// index i+1, while tools and misc are spread evenly over its duration.
// A month lists only the projects with a non-zero cost in it. Totals and
// the category breakdown include every project, dated or not.
// Peak resource demand is the month with the highest estimated FTE; ties
// keep the earlier month.
func (e *Engine) PortfolioAggregate(projects []model.PortfolioProject, timeline []model.TimelineEntry) model.PortfolioAggregate {
	agg := model.PortfolioAggregate{
		MonthlyCosts: make([]model.MonthlyCost, len(timeline)),
	}
	slots := make(map[string]int, len(timeline))
	fte := make([]float64, len(timeline))
	for i, entry := range timeline {
		agg.MonthlyCosts[i] = model.MonthlyCost{Key: entry.Key, Label: entry.Label}
		slots[entry.Key] = i
	}

	for _, p := range projects {
		c := p.Costs
		agg.TotalPortfolioCost += c.Total
		agg.CostBreakdown.Internal += c.Internal.Total
		agg.CostBreakdown.External += c.External.Total
		agg.CostBreakdown.Tools += c.Tools.Total
		agg.CostBreakdown.Misc += c.Misc.Total
		agg.CostBreakdown.Contingency += c.Contingency

		own := ProjectTimeline(p.Metadata)
		if len(own) == 0 {
			continue
		}
		toolsPerMonth := c.Tools.Total / float64(len(own))
		miscPerMonth := PortfolioMiscMonthlySpread(c.Misc.Total, len(own))

		for i, entry := range own {
			slot, ok := slots[entry.Key]
			if !ok {
				continue
			}
			idx := i + 1
			internal := c.Internal.MonthlyBreakdown[idx]
			external := c.External.MonthlyBreakdown[idx]
			cost := internal + external + toolsPerMonth + miscPerMonth

			mc := &agg.MonthlyCosts[slot]
			mc.Internal += internal
			mc.External += external
			mc.Tools += toolsPerMonth
			mc.Misc += miscPerMonth
			mc.Total += cost
			if cost != 0 {
				mc.Projects = append(mc.Projects, model.ProjectMonthCost{Name: p.Name(), Cost: cost})
			}

			fte[slot] += e.monthFTE(p, idx)
		}
	}

	b := &agg.CostBreakdown
	b.Total = b.Internal + b.External + b.Tools + b.Misc + b.Contingency

	peak := -1
	for i, v := range fte {
		if peak < 0 || v > fte[peak] {
			peak = i
		}
	}
	if peak >= 0 {
		agg.PeakResourceDemand = model.ResourceDemand{
			Key:   timeline[peak].Key,
			Label: timeline[peak].Label,
			FTE:   decimal.NewFromFloat(fte[peak]).Round(1).InexactFloat64(),
		}
	}
	return agg
}

// monthFTE estimates the staff load of one project month: allocated
// internal days over working days, plus vendor spend converted to
// consultant days at the external day rate.
func (e *Engine) monthFTE(p model.PortfolioProject, idx int) float64 {
	workingDays := e.WorkingDaysPerMonth
	if workingDays <= 0 {
		workingDays = DefaultWorkingDaysPerMonth
	}
	dayRate := e.ExternalDayRate
	if dayRate <= 0 {
		dayRate = DefaultExternalDayRate
	}

	key := MonthKey(idx)
	var days float64
	for _, r := range p.Resources.Internal {
		days += MonthValue(r.Days, key)
	}
	days += p.Costs.External.MonthlyBreakdown[idx] / dayRate
	return days / workingDays
}

// Sort orders accepted by CompareProjects.
const (
	SortCostDesc     = "cost-desc"
	SortCostAsc      = "cost-asc"
	SortDurationDesc = "duration-desc"
	SortDurationAsc  = "duration-asc"
	SortName         = "name"
)

// SortOrders lists the accepted comparison orders.
var SortOrders = []string{SortCostDesc, SortCostAsc, SortDurationDesc, SortDurationAsc, SortName}

// CompareProjects builds per-project comparison rows sorted by sortBy.
// Unknown orders fall back to cost-desc. Undated projects have a duration
// of 0 and a cost per month of 0.
func (e *Engine) CompareProjects(projects []model.PortfolioProject, sortBy string) []model.ProjectComparison {
	rows := make([]model.ProjectComparison, 0, len(projects))
	for _, p := range projects {
		duration := len(ProjectTimeline(p.Metadata))
		var perMonth float64
		if duration > 0 {
			perMonth = p.Costs.Total / float64(duration)
		} else {
			e.Log.Debug("project has no dated timeline, cost per month is 0", "project", p.Name())
		}
		rows = append(rows, model.ProjectComparison{
			ID:             p.ID,
			Name:           p.Name(),
			TotalCost:      p.Costs.Total,
			DurationMonths: duration,
			CostPerMonth:   perMonth,
			ResourceCount:  len(p.Resources.Internal) + len(p.Resources.External),
		})
	}

	var less func(a, b model.ProjectComparison) bool
	switch sortBy {
	case SortCostAsc:
		less = func(a, b model.ProjectComparison) bool { return a.TotalCost < b.TotalCost }
	case SortDurationDesc:
		less = func(a, b model.ProjectComparison) bool { return a.DurationMonths > b.DurationMonths }
	case SortDurationAsc:
		less = func(a, b model.ProjectComparison) bool { return a.DurationMonths < b.DurationMonths }
	case SortName:
		less = func(a, b model.ProjectComparison) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	default:
		if sortBy != SortCostDesc && sortBy != "" {
			e.Log.Debug("unknown sort order, using cost-desc", "sort", sortBy)
		}
		less = func(a, b model.ProjectComparison) bool { return a.TotalCost > b.TotalCost }
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	return rows
}
