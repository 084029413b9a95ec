package pipeline

import (
	"strconv"
	"time"

	"github.com/theirongolddev/costplan/internal/model"
)

const (
	// MaxCalendarMonths bounds a single project's calendar.
	MaxCalendarMonths = 24

	defaultCalendarMonths = 4
	monthLabelLayout      = "Jan 2006"
)

// Calendar derives the month-by-month calendar of a project from its
// start and end dates. Missing or unparsable dates yield a synthetic
// four-month calendar; an end before the start yields a single synthetic
// month. The walk keeps the start's day of month, advances one calendar
// month at a time while the cursor is not after the end, and stops at
// MaxCalendarMonths. A start day missing from a shorter month is clamped
// to that month's last day, so Jan 31 is followed by Feb 28.
func (e *Engine) Calendar(startDate, endDate string) model.MonthInfo {
	start, okStart := ParseDate(startDate)
	end, okEnd := ParseDate(endDate)
	if !okStart || !okEnd {
		return e.syntheticCalendar(defaultCalendarMonths)
	}

	var info model.MonthInfo
	for month := monthFloor(start); ; month = month.AddDate(0, 1, 0) {
		cursor := onDay(month, start.Day())
		if cursor.After(end) {
			break
		}
		if info.Count == MaxCalendarMonths {
			e.Log.Warn("calendar truncated",
				"start", startDate,
				"end", endDate,
				"max_months", MaxCalendarMonths,
			)
			break
		}
		appendMonth(&info, cursor.Year(), cursor.Format(monthLabelLayout))
	}

	if info.Count == 0 {
		return e.syntheticCalendar(1)
	}
	return info
}

// onDay returns day of the month starting at first, clamped to the
// month's last day.
func onDay(first time.Time, day int) time.Time {
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(day, last)-1)
}

func (e *Engine) syntheticCalendar(months int) model.MonthInfo {
	year := e.Now().Year()
	var info model.MonthInfo
	for i := 1; i <= months; i++ {
		appendMonth(&info, year, "Month "+strconv.Itoa(i))
	}
	return info
}

// appendMonth adds one month, opening a new year group whenever the year
// changes from the previous month.
func appendMonth(info *model.MonthInfo, year int, label string) {
	info.Count++
	key := MonthKey(info.Count)
	info.Months = append(info.Months, label)
	info.MonthKeys = append(info.MonthKeys, key)

	last := len(info.YearGroups) - 1
	if last < 0 || info.YearGroups[last].Year != year {
		info.YearGroups = append(info.YearGroups, model.YearGroup{Year: year})
		last++
	}
	g := &info.YearGroups[last]
	g.Months = append(g.Months, key)
	g.Count++
}
