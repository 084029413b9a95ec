package config

import (
	"testing"

	"github.com/theirongolddev/costplan/internal/model"
)

func TestRateCards_Overrides(t *testing.T) {
	rate := func(f float64) *float64 { return &f }

	cfg := DefaultConfig()
	cfg.RateCards.Overrides = map[string]RateCardOverride{
		"Developer":     {Rate: rate(640)},
		"Data Engineer": {Rate: rate(700)},
		"Contractor":    {Category: CategoryInternal},
	}
	cards := RateCards(cfg)

	if len(cards) != len(DefaultRateCards)+1 {
		t.Fatalf("cards = %d, want %d", len(cards), len(DefaultRateCards)+1)
	}
	for i := 1; i < len(cards); i++ {
		if cards[i-1].Role > cards[i].Role {
			t.Errorf("cards not sorted: %q before %q", cards[i-1].Role, cards[i].Role)
		}
	}

	dev, _ := LookupRate(cards, "Developer")
	if dev.Rate != 640 || dev.Category != CategoryInternal {
		t.Errorf("Developer = %+v, want 640 Internal", dev)
	}
	de, ok := LookupRate(cards, "Data Engineer")
	if !ok || de.Rate != 700 || de.Category != CategoryInternal {
		t.Errorf("Data Engineer = %+v, %v", de, ok)
	}
	con, _ := LookupRate(cards, "Contractor")
	if con.Rate != 900 || con.Category != CategoryInternal {
		t.Errorf("Contractor = %+v, want 900 Internal", con)
	}

	if DefaultRateCards["Developer"].Rate != 600 {
		t.Error("RateCards mutated the default table")
	}
}

func TestLookupRate(t *testing.T) {
	cards := []model.RateCard{
		{Role: "Senior Developer", Rate: 750},
		{Role: "senior developer", Rate: 1},
	}
	tests := []struct {
		role   string
		want   float64
		wantOK bool
	}{
		{"Senior Developer", 750, true},
		{"senior developer", 1, true}, // exact match wins
		{"  SENIOR   developer ", 750, true},
		{"Junior Developer", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := LookupRate(cards, tt.role)
		if ok != tt.wantOK || got.Rate.Float() != tt.want {
			t.Errorf("LookupRate(%q) = %v, %v; want %v, %v", tt.role, got.Rate, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveDailyRates(t *testing.T) {
	data := model.ProjectData{
		InternalResources: []model.InternalResource{
			{Role: "Developer", DailyRate: 550},
			{Role: "Developer"},
			{Role: "Lead", RateCard: "tech lead"},
			{Role: "Astronaut"},
		},
		RateCards: []model.RateCard{{Role: "Tech Lead", Rate: 880}},
	}
	fallback := RateCards(DefaultConfig())

	got, unpriced := ResolveDailyRates(data, fallback)

	want := []float64{550, 600, 880, 0}
	for i, w := range want {
		if r := got.InternalResources[i].DailyRate.Float(); r != w {
			t.Errorf("resource %d rate = %v, want %v", i, r, w)
		}
	}
	if len(unpriced) != 1 || unpriced[0] != "Astronaut" {
		t.Errorf("unpriced = %v, want [Astronaut]", unpriced)
	}
	if data.InternalResources[1].DailyRate != 0 {
		t.Error("input document was modified")
	}
}
