package pipeline

import (
	"strings"

	"github.com/theirongolddev/costplan/internal/model"
)

// DateComparison reports how two projects' date ranges relate before a
// merge. Earliest and latest are empty when neither side has the date.
type DateComparison struct {
	EarliestStart string
	LatestEnd     string
	StartDiffers  bool
	EndDiffers    bool
}

// CompareProjectDates compares the date ranges of an open project and an
// incoming one.
func CompareProjectDates(current, incoming model.ProjectInfo) DateComparison {
	var dc DateComparison

	cs, okCS := ParseDate(current.StartDate)
	is, okIS := ParseDate(incoming.StartDate)
	switch {
	case okCS && okIS:
		dc.StartDiffers = !cs.Equal(is)
		dc.EarliestStart = current.StartDate
		if is.Before(cs) {
			dc.EarliestStart = incoming.StartDate
		}
	case okCS:
		dc.EarliestStart = current.StartDate
	case okIS:
		dc.EarliestStart = incoming.StartDate
	}

	ce, okCE := ParseDate(current.EndDate)
	ie, okIE := ParseDate(incoming.EndDate)
	switch {
	case okCE && okIE:
		dc.EndDiffers = !ce.Equal(ie)
		dc.LatestEnd = current.EndDate
		if ie.After(ce) {
			dc.LatestEnd = incoming.EndDate
		}
	case okCE:
		dc.LatestEnd = current.EndDate
	case okIE:
		dc.LatestEnd = incoming.EndDate
	}
	return dc
}

// RateCardConflict is a role defined by both sides with different terms.
type RateCardConflict struct {
	Role     string
	Existing model.RateCard
	Incoming model.RateCard
}

// FindRateCardConflicts matches roles case-insensitively and reports those
// whose rate or category differ.
func FindRateCardConflicts(existing, incoming []model.RateCard) []RateCardConflict {
	byRole := make(map[string]model.RateCard, len(existing))
	for _, c := range existing {
		byRole[strings.ToLower(c.Role)] = c
	}

	var conflicts []RateCardConflict
	for _, in := range incoming {
		cur, ok := byRole[strings.ToLower(in.Role)]
		if !ok {
			continue
		}
		if cur.Rate.Float() != in.Rate.Float() || cur.Category != in.Category {
			conflicts = append(conflicts, RateCardConflict{Role: cur.Role, Existing: cur, Incoming: in})
		}
	}
	return conflicts
}

// MergeRateCards keeps every existing card and appends incoming cards whose
// role is not already present. Role identity is exact here, so a role that
// differs only by case is appended.
func MergeRateCards(existing, incoming []model.RateCard) []model.RateCard {
	out := make([]model.RateCard, 0, len(existing)+len(incoming))
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, c := range existing {
		out = append(out, c)
		seen[c.Role] = true
	}
	for _, c := range incoming {
		if seen[c.Role] {
			continue
		}
		out = append(out, c)
		seen[c.Role] = true
	}
	return out
}
