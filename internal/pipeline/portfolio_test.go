package pipeline

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/theirongolddev/costplan/internal/model"
)

func timelineKeys(entries []model.TimelineEntry) string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return strings.Join(keys, ",")
}

func dated(name, start, end string) model.PortfolioProject {
	return model.PortfolioProject{
		FileName: strings.ToLower(name) + ".json",
		Metadata: model.ProjectInfo{ProjectName: name, StartDate: start, EndDate: end},
	}
}

func TestUnifiedTimeline_Span(t *testing.T) {
	e, _ := testEngine(t)
	projects := []model.PortfolioProject{
		dated("A", "2025-01-20", "2025-03-03"),
		dated("B", "2025-02-01", "2025-05-31"),
		dated("Undated", "", ""),
		dated("HalfDated", "2019-01-01", ""),
	}

	got := e.UnifiedTimeline(projects)
	if want := "2025-01,2025-02,2025-03,2025-04,2025-05"; timelineKeys(got) != want {
		t.Errorf("timeline = %s, want %s", timelineKeys(got), want)
	}
	if got[0].Label != "Jan 2025" || got[0].Year != 2025 || got[0].Month != 1 {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[0].Date.Day() != 1 {
		t.Errorf("entry date %v not floored to the month", got[0].Date)
	}
}

func TestUnifiedTimeline_NoCap(t *testing.T) {
	e, _ := testEngine(t)
	got := e.UnifiedTimeline([]model.PortfolioProject{dated("Long", "2020-01-01", "2029-12-31")})
	if len(got) != 120 {
		t.Errorf("len = %d, want 120", len(got))
	}
}

func TestUnifiedTimeline_Empty(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.UnifiedTimeline([]model.PortfolioProject{dated("U", "", "")}); len(got) != 0 {
		t.Errorf("timeline = %v, want empty", got)
	}
}

func TestProjectTimeline(t *testing.T) {
	if got := timelineKeys(ProjectTimeline(model.ProjectInfo{StartDate: "2024-12-31", EndDate: "2025-01-01"})); got != "2024-12,2025-01" {
		t.Errorf("timeline = %s, want 2024-12,2025-01", got)
	}
	if got := ProjectTimeline(model.ProjectInfo{StartDate: "2025-05-01", EndDate: "2025-01-01"}); len(got) != 0 {
		t.Errorf("reversed dates gave %d months, want 0", len(got))
	}
}

// portfolioFixture returns two overlapping dated projects and one undated.
func portfolioFixture() []model.PortfolioProject {
	p1 := dated("Beta", "2025-01-01", "2025-02-28")
	p1.Costs = model.ProjectCosts{
		Internal:    model.CategoryCost{Total: 3000, MonthlyBreakdown: map[int]float64{1: 1000, 2: 2000}},
		External:    model.CategoryCost{Total: 500, MonthlyBreakdown: map[int]float64{1: 500, 2: 0}},
		Tools:       model.CategoryCost{Total: 200},
		Misc:        model.CategoryCost{Total: 100},
		Contingency: 50,
		Total:       3850,
	}
	p1.Resources.Internal = []model.InternalResource{{Days: model.Allocation{"month1": 11, "month2": 22}}}

	p2 := dated("alpha", "2025-02-10", "2025-03-05")
	p2.Costs = model.ProjectCosts{
		Internal: model.CategoryCost{Total: 600, MonthlyBreakdown: map[int]float64{1: 300, 2: 300}},
		External: model.CategoryCost{Total: 22000, MonthlyBreakdown: map[int]float64{1: 22000, 2: 0}},
		Total:    22600,
	}
	p2.Resources.Internal = []model.InternalResource{{Days: model.Allocation{}}}
	p2.Resources.External = []model.VendorCost{{Vendor: "Acme"}}

	p3 := model.PortfolioProject{FileName: "gamma.json"}
	p3.Costs = model.ProjectCosts{
		Internal: model.CategoryCost{Total: 999},
		Total:    999,
	}
	return []model.PortfolioProject{p1, p2, p3}
}

func TestPortfolioAggregate(t *testing.T) {
	e, _ := testEngine(t)
	projects := portfolioFixture()
	timeline := e.UnifiedTimeline(projects)
	if timelineKeys(timeline) != "2025-01,2025-02,2025-03" {
		t.Fatalf("timeline = %s", timelineKeys(timeline))
	}

	agg := e.PortfolioAggregate(projects, timeline)

	if agg.TotalPortfolioCost != 27449 {
		t.Errorf("TotalPortfolioCost = %v, want 27449", agg.TotalPortfolioCost)
	}
	b := agg.CostBreakdown
	if b.Internal != 4599 || b.External != 22500 || b.Tools != 200 || b.Misc != 100 || b.Contingency != 50 {
		t.Errorf("CostBreakdown = %+v", b)
	}
	if b.Total != 27449 {
		t.Errorf("CostBreakdown.Total = %v, want 27449", b.Total)
	}

	jan, _ := agg.Month("2025-01")
	if jan.Total != 1650 || jan.Tools != 100 || jan.Misc != 50 {
		t.Errorf("Jan = %+v, want total 1650 tools 100 misc 50", jan)
	}
	if len(jan.Projects) != 1 || jan.Projects[0].Name != "Beta" {
		t.Errorf("Jan projects = %+v, want [Beta]", jan.Projects)
	}

	feb, _ := agg.Month("2025-02")
	if feb.Total != 24450 || feb.Internal != 2300 || feb.External != 22000 {
		t.Errorf("Feb = %+v, want total 24450", feb)
	}
	if len(feb.Projects) != 2 {
		t.Errorf("Feb projects = %+v, want 2", feb.Projects)
	}

	mar, _ := agg.Month("2025-03")
	if mar.Total != 300 {
		t.Errorf("Mar total = %v, want 300", mar.Total)
	}

	peak := agg.PeakResourceDemand
	if peak.Key != "2025-02" || peak.Label != "Feb 2025" || peak.FTE != 2 {
		t.Errorf("PeakResourceDemand = %+v, want Feb 2025 at 2.0 FTE", peak)
	}
}

func TestPortfolioAggregate_IdleMonthListsNoProject(t *testing.T) {
	e, _ := testEngine(t)
	p := dated("Idle", "2025-03-01", "2025-04-30")
	p.Costs = model.ProjectCosts{
		Internal: model.CategoryCost{Total: 800, MonthlyBreakdown: map[int]float64{1: 800}},
		Total:    800,
	}
	projects := []model.PortfolioProject{p}

	agg := e.PortfolioAggregate(projects, e.UnifiedTimeline(projects))
	mar, _ := agg.Month("2025-03")
	if len(mar.Projects) != 1 || mar.Projects[0].Cost != 800 {
		t.Errorf("Mar projects = %+v, want [Idle 800]", mar.Projects)
	}
	apr, ok := agg.Month("2025-04")
	if !ok {
		t.Fatal("Apr missing from aggregate")
	}
	if len(apr.Projects) != 0 || apr.Total != 0 {
		t.Errorf("Apr = %+v, want no projects", apr)
	}
}

func TestPortfolioAggregate_PeakRoundsAndTies(t *testing.T) {
	e, _ := testEngine(t)
	p := dated("Even", "2025-01-01", "2025-03-31")
	p.Resources.Internal = []model.InternalResource{
		{Days: model.Allocation{"month1": 7, "month2": 7, "month3": 3}},
	}
	agg := e.PortfolioAggregate([]model.PortfolioProject{p}, e.UnifiedTimeline([]model.PortfolioProject{p}))

	// 7/22 = 0.318..., tie between Jan and Feb keeps Jan.
	if agg.PeakResourceDemand.Key != "2025-01" || agg.PeakResourceDemand.FTE != 0.3 {
		t.Errorf("PeakResourceDemand = %+v, want 2025-01 at 0.3", agg.PeakResourceDemand)
	}
}

func TestPortfolioAggregate_Empty(t *testing.T) {
	e, _ := testEngine(t)
	agg := e.PortfolioAggregate(nil, nil)
	if len(agg.MonthlyCosts) != 0 || agg.TotalPortfolioCost != 0 || agg.PeakResourceDemand.Key != "" {
		t.Errorf("empty aggregate = %+v", agg)
	}
}

func TestPortfolioAggregate_SummarizedScenario(t *testing.T) {
	e, _ := testEngine(t)
	p := e.Summarize("scenario.json", scenarioProject(), 0)
	projects := []model.PortfolioProject{p}
	agg := e.PortfolioAggregate(projects, e.UnifiedTimeline(projects))

	if len(agg.MonthlyCosts) != 4 {
		t.Fatalf("months = %d, want 4", len(agg.MonthlyCosts))
	}
	// Tools and misc are flattened to their per-month average here.
	want := []float64{7400, 400, 2900, 400}
	for i, mc := range agg.MonthlyCosts {
		if mc.Total != want[i] {
			t.Errorf("%s total = %v, want %v", mc.Key, mc.Total, want[i])
		}
	}
}

func compareNames(rows []model.ProjectComparison) string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	return strings.Join(names, ",")
}

func TestCompareProjects(t *testing.T) {
	e, logs := testEngine(t)
	projects := portfolioFixture()

	tests := []struct {
		sortBy string
		want   string
	}{
		{SortCostDesc, "alpha,Beta,gamma.json"},
		{SortCostAsc, "gamma.json,Beta,alpha"},
		{SortDurationDesc, "Beta,alpha,gamma.json"},
		{SortDurationAsc, "gamma.json,Beta,alpha"},
		{SortName, "alpha,Beta,gamma.json"},
		{"bogus", "alpha,Beta,gamma.json"},
		{"", "alpha,Beta,gamma.json"},
	}
	for _, tt := range tests {
		if got := compareNames(e.CompareProjects(projects, tt.sortBy)); got != tt.want {
			t.Errorf("CompareProjects(%q) = %s, want %s", tt.sortBy, got, tt.want)
		}
	}

	rows := e.CompareProjects(projects, SortName)
	beta, alpha, gamma := rows[1], rows[0], rows[2]
	if beta.DurationMonths != 2 || beta.CostPerMonth != 1925 || beta.ResourceCount != 1 {
		t.Errorf("Beta = %+v", beta)
	}
	if alpha.ResourceCount != 2 {
		t.Errorf("alpha ResourceCount = %d, want 2", alpha.ResourceCount)
	}
	if gamma.DurationMonths != 0 || gamma.CostPerMonth != 0 || gamma.TotalCost != 999 {
		t.Errorf("gamma = %+v, want zero duration and cost per month", gamma)
	}
	if !strings.Contains(logs.String(), "cost per month is 0") {
		t.Errorf("expected diagnostic for undated project, logs %q", logs.String())
	}
}

func TestSummarize(t *testing.T) {
	e, _ := testEngine(t)
	p := e.Summarize("scenario.json", scenarioProject(), 10)

	if p.Name() != "Scenario" || p.FileName != "scenario.json" {
		t.Errorf("identity = %q / %q", p.Name(), p.FileName)
	}
	id, err := uuid.Parse(p.ID)
	if err != nil || id.Version() != 5 {
		t.Errorf("ID %q is not a name-based uuid: %v", p.ID, err)
	}
	if p.ID != ProjectID("scenario.json") {
		t.Error("ID is not stable for the same file name")
	}

	c := p.Costs
	if c.Internal.Total != 7500 || c.External.Total != 2000 || c.Tools.Total != 1200 || c.Misc.Total != 400 {
		t.Errorf("category totals = %+v", c)
	}
	if c.Internal.MonthlyBreakdown[1] != 5000 || c.Internal.MonthlyBreakdown[3] != 2500 {
		t.Errorf("internal breakdown = %v", c.Internal.MonthlyBreakdown)
	}
	if c.Internal.Count != 1 || c.Tools.Count != 1 || c.Misc.Count != 1 {
		t.Errorf("counts = %d/%d/%d", c.Internal.Count, c.Tools.Count, c.Misc.Count)
	}
	if c.Contingency != 1110 || c.Total != 12210 {
		t.Errorf("contingency = %v total = %v, want 1110 / 12210", c.Contingency, c.Total)
	}

	data := scenarioProject()
	data.ContingencyPercentage = num(20)
	if got := e.Summarize("s.json", data, 10).Costs.Contingency; got != 2220 {
		t.Errorf("document contingency = %v, want 2220", got)
	}
}

func TestSummarize_PrepareDocument(t *testing.T) {
	e, _ := testEngine(t)
	e.PrepareDocument = func(d model.ProjectData) model.ProjectData {
		res := append([]model.InternalResource(nil), d.InternalResources...)
		for i := range res {
			res[i].DailyRate *= 2
		}
		d.InternalResources = res
		return d
	}

	data := scenarioProject()
	if got := e.Summarize("s.json", data, 0).Costs.Internal.Total; got != 15000 {
		t.Errorf("prepared internal total = %v, want 15000", got)
	}
	if data.InternalResources[0].DailyRate != 500 {
		t.Error("caller's document was modified")
	}
}

func TestRiskSummary(t *testing.T) {
	risks := []model.Risk{
		{Probability: 5, Impact: 4, MitigationCost: 100},
		{Probability: 3, Impact: 5, MitigationCost: 50},
		{Probability: 2, Impact: 2},
	}
	got := RiskSummary(risks)
	want := model.RiskSummary{Count: 3, HighRisk: 2, MaxScore: 20, TotalMitigation: 150}
	if got != want {
		t.Errorf("RiskSummary = %+v, want %+v", got, want)
	}
}
