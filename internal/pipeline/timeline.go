package pipeline

import (
	"time"

	"github.com/theirongolddev/costplan/internal/model"
)

func monthFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func timelineBetween(start, end time.Time) []model.TimelineEntry {
	var out []model.TimelineEntry
	last := monthFloor(end)
	for d := monthFloor(start); !d.After(last); d = d.AddDate(0, 1, 0) {
		out = append(out, model.TimelineEntry{
			Key:   d.Format("2006-01"),
			Date:  d,
			Label: d.Format(monthLabelLayout),
			Year:  d.Year(),
			Month: int(d.Month()),
		})
	}
	return out
}

// ProjectTimeline lists the real calendar months a project spans, from
// the first of its start month through its end month. It is empty when
// either date is missing or the end precedes the start.
func ProjectTimeline(info model.ProjectInfo) []model.TimelineEntry {
	start, okStart := ParseDate(info.StartDate)
	end, okEnd := ParseDate(info.EndDate)
	if !okStart || !okEnd {
		return nil
	}
	return timelineBetween(start, end)
}

// UnifiedTimeline spans the earliest start to the latest end across all
// projects. Projects missing either date do not affect the bounds. The
// result is empty when no project is dated.
func (e *Engine) UnifiedTimeline(projects []model.PortfolioProject) []model.TimelineEntry {
	var earliest, latest time.Time
	for _, p := range projects {
		start, okStart := ParseDate(p.Metadata.StartDate)
		end, okEnd := ParseDate(p.Metadata.EndDate)
		if !okStart || !okEnd {
			e.Log.Debug("project left out of timeline bounds", "project", p.Name())
			continue
		}
		if earliest.IsZero() || start.Before(earliest) {
			earliest = start
		}
		if latest.IsZero() || end.After(latest) {
			latest = end
		}
	}
	if earliest.IsZero() {
		return nil
	}
	return timelineBetween(earliest, latest)
}
