package config

import (
	"sort"
	"strings"

	"github.com/theirongolddev/costplan/internal/model"
)

// Rate-card categories.
const (
	CategoryInternal = "Internal"
	CategoryExternal = "External"
)

// DefaultRateCards maps roles to their default daily rates.
var DefaultRateCards = map[string]model.RateCard{
	"Project Manager":    {Role: "Project Manager", Rate: 800, Category: CategoryInternal},
	"Business Analyst":   {Role: "Business Analyst", Rate: 650, Category: CategoryInternal},
	"Solution Architect": {Role: "Solution Architect", Rate: 950, Category: CategoryInternal},
	"Senior Developer":   {Role: "Senior Developer", Rate: 750, Category: CategoryInternal},
	"Developer":          {Role: "Developer", Rate: 600, Category: CategoryInternal},
	"QA Engineer":        {Role: "QA Engineer", Rate: 500, Category: CategoryInternal},
	"UX Designer":        {Role: "UX Designer", Rate: 650, Category: CategoryInternal},
	"Consultant":         {Role: "Consultant", Rate: 1200, Category: CategoryExternal},
	"Contractor":         {Role: "Contractor", Rate: 900, Category: CategoryExternal},
}

// RateCards returns the default table with the config's overrides applied,
// sorted by role. An override for an unknown role adds it; a missing
// category on a new role means Internal.
func RateCards(cfg Config) []model.RateCard {
	merged := make(map[string]model.RateCard, len(DefaultRateCards)+len(cfg.RateCards.Overrides))
	for role, card := range DefaultRateCards {
		merged[role] = card
	}
	for role, o := range cfg.RateCards.Overrides {
		card, ok := merged[role]
		if !ok {
			card = model.RateCard{Role: role, Category: CategoryInternal}
		}
		if o.Rate != nil {
			card.Rate = model.Number(*o.Rate)
		}
		if o.Category != "" {
			card.Category = o.Category
		}
		merged[role] = card
	}

	cards := make([]model.RateCard, 0, len(merged))
	for _, card := range merged {
		cards = append(cards, card)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Role < cards[j].Role })
	return cards
}

// normalizeRole folds case and whitespace for loose role matching.
// e.g., "  senior   developer " -> "senior developer"
func normalizeRole(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// LookupRate finds a role's card, trying an exact match before a
// case- and whitespace-insensitive one. Returns false if the role is unknown.
func LookupRate(cards []model.RateCard, role string) (model.RateCard, bool) {
	for _, c := range cards {
		if c.Role == role {
			return c, true
		}
	}
	want := normalizeRole(role)
	if want == "" {
		return model.RateCard{}, false
	}
	for _, c := range cards {
		if normalizeRole(c.Role) == want {
			return c, true
		}
	}
	return model.RateCard{}, false
}

// ResolveDailyRates fills in missing daily rates on internal resources. The
// resource's rate card name (or its role) is looked up in the document's own
// cards first, then in fallback. Returns a copy and the roles left unpriced.
func ResolveDailyRates(data model.ProjectData, fallback []model.RateCard) (model.ProjectData, []string) {
	resources := make([]model.InternalResource, len(data.InternalResources))
	copy(resources, data.InternalResources)

	var unpriced []string
	for i, r := range resources {
		if r.DailyRate.Float() != 0 {
			continue
		}
		name := r.RateCard
		if name == "" {
			name = r.Role
		}
		card, ok := LookupRate(data.RateCards, name)
		if !ok {
			card, ok = LookupRate(fallback, name)
		}
		if !ok {
			unpriced = append(unpriced, name)
			continue
		}
		resources[i].DailyRate = card.Rate
	}

	data.InternalResources = resources
	return data, unpriced
}
