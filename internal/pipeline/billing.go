package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/costplan/internal/model"
)

// DaysPerBucket is the width of a calendar bucket when placing dated tool
// charges. It approximates a month and drifts against real month lengths
// on long projects.
const DaysPerBucket = 30

// BillingSchedule places a periodic tool charge onto the monthly series
// between the inclusive bucket indices start and end.
type BillingSchedule interface {
	Apply(series []float64, charge float64, start, end int)
}

// OneTimeSchedule charges once, in the start bucket.
type OneTimeSchedule struct{}

func (OneTimeSchedule) Apply(series []float64, charge float64, start, _ int) {
	if start >= 0 && start < len(series) {
		series[start] += charge
	}
}

// StrideSchedule charges every Every buckets from start through end.
// Monthly billing is a stride of 1.
type StrideSchedule struct {
	Every int
}

func (s StrideSchedule) Apply(series []float64, charge float64, start, end int) {
	step := max(s.Every, 1)
	end = min(end, len(series)-1)
	for i := max(start, 0); i <= end; i += step {
		series[i] += charge
	}
}

var billingSchedules = map[model.BillingFrequency]BillingSchedule{
	model.OneTime:   OneTimeSchedule{},
	model.Monthly:   StrideSchedule{Every: 1},
	model.Quarterly: StrideSchedule{Every: 3},
	model.Annual:    StrideSchedule{Every: 12},
}

// ScheduleFor returns the schedule registered for a billing frequency.
func ScheduleFor(freq model.BillingFrequency) (BillingSchedule, error) {
	s, ok := billingSchedules[freq]
	if !ok {
		return nil, fmt.Errorf("unknown billing frequency: %q", freq)
	}
	return s, nil
}

// DistributeTool spreads one tool record across a project calendar.
//
// Legacy licences charge users × monthlyCost in each of the first
// duration months. Periodic records are placed by date: the start and end
// buckets are the 30-day offsets of the tool's dates from projectStart,
// clamped to the calendar. Without a project start or a tool start the
// charge begins in the first month; ongoing tools and tools without an
// end date run to the last month. Records matching neither shape, or with
// an unknown frequency, contribute nothing.
func (e *Engine) DistributeTool(tool model.ToolCost, info model.MonthInfo, projectStart time.Time) []float64 {
	series := make([]float64, info.Count)
	if info.Count == 0 {
		return series
	}

	billing, ok := tool.Billing()
	if !ok {
		e.Log.Debug("tool cost has no billing shape", "tool", tool.Tool)
		return series
	}

	switch b := billing.(type) {
	case model.LegacyBilling:
		charge := b.MonthlyCharge()
		last := min(b.Duration-1, info.Count-1)
		for i := 0; i <= last; i++ {
			series[i] += charge
		}
	case model.PeriodicBilling:
		schedule, err := ScheduleFor(b.Frequency)
		if err != nil {
			e.Log.Warn("skipping tool cost", "tool", tool.Tool, "err", err)
			return series
		}
		start, end := billingWindow(b, info.Count, projectStart)
		schedule.Apply(series, b.Charge(), start, end)
	}
	return series
}

func billingWindow(b model.PeriodicBilling, months int, projectStart time.Time) (start, end int) {
	last := months - 1
	end = last
	if projectStart.IsZero() {
		return 0, end
	}
	if t, ok := ParseDate(b.StartDate); ok {
		start = clamp(bucketOffset(projectStart, t), 0, last)
	}
	if !b.IsOngoing {
		if t, ok := ParseDate(b.EndDate); ok {
			end = clamp(bucketOffset(projectStart, t), 0, last)
		}
	}
	return start, end
}

// bucketOffset is floor(days between from and to / DaysPerBucket).
func bucketOffset(from, to time.Time) int {
	days := to.Sub(from).Hours() / 24
	return int(math.Floor(days / DaysPerBucket))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
