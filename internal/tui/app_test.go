package tui

import (
	"strings"
	"testing"

	"github.com/theirongolddev/costplan/internal/config"
	applog "github.com/theirongolddev/costplan/internal/log"
	"github.com/theirongolddev/costplan/internal/model"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func testProjects(eng *pipeline.Engine) []model.PortfolioProject {
	docs := map[string]model.ProjectData{
		"apollo.json": {
			ProjectInfo: model.ProjectInfo{ProjectName: "Apollo", StartDate: "2025-01-01", EndDate: "2025-03-31"},
			InternalResources: []model.InternalResource{
				{Role: "Developer", DailyRate: 500, Days: model.Allocation{"month1": 10, "month2": 20}},
			},
		},
		"zephyr.json": {
			ProjectInfo: model.ProjectInfo{ProjectName: "Zephyr", StartDate: "2025-02-01", EndDate: "2025-02-28"},
			MiscCosts:   []model.MiscCost{{Item: "Kickoff", Cost: 50000}},
		},
	}
	var out []model.PortfolioProject
	for _, name := range []string{"apollo.json", "zephyr.json"} {
		out = append(out, eng.Summarize(name, docs[name], 10))
	}
	return out
}

func loadedApp(t *testing.T) App {
	t.Helper()
	eng := pipeline.NewEngine(pipeline.WithLogger(applog.Discard()))
	a := NewApp(Options{Engine: eng, PortfolioDir: "/tmp/portfolio", SortBy: pipeline.SortName})

	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(DataLoadedMsg{Result: &pipeline.LoadResult{Projects: testProjects(eng)}})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	var m tea.Model = a
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m.(App)
}

func TestDataLoadedComputesAggregate(t *testing.T) {
	a := loadedApp(t)
	if !a.loaded || len(a.projects) != 2 {
		t.Fatalf("loaded=%v projects=%d", a.loaded, len(a.projects))
	}
	if len(a.timeline) != 3 {
		t.Errorf("timeline = %d months, want 3", len(a.timeline))
	}
	if a.agg.TotalPortfolioCost == 0 {
		t.Error("aggregate not computed")
	}
	if a.comparison[0].Name != "Apollo" {
		t.Errorf("name sort first = %s, want Apollo", a.comparison[0].Name)
	}
}

func TestTabNavigation(t *testing.T) {
	a := loadedApp(t)

	a = press(t, a, "p")
	if a.activeTab != tabProjects {
		t.Errorf("after p: tab = %d", a.activeTab)
	}
	a = press(t, a, "right")
	if a.activeTab != tabCompare {
		t.Errorf("after right: tab = %d", a.activeTab)
	}
	a = press(t, a, "right")
	if a.activeTab != tabOverview {
		t.Errorf("right wraps: tab = %d", a.activeTab)
	}
	a = press(t, a, "left")
	if a.activeTab != tabCompare {
		t.Errorf("left wraps: tab = %d", a.activeTab)
	}
}

func TestProjectCursor(t *testing.T) {
	a := press(t, loadedApp(t), "p", "j", "j", "j")
	if a.cursor != 1 {
		t.Errorf("cursor = %d, want clamped at 1", a.cursor)
	}
	a = press(t, a, "g")
	if a.cursor != 0 {
		t.Errorf("cursor after g = %d", a.cursor)
	}
}

func TestCompareSortCycles(t *testing.T) {
	a := press(t, loadedApp(t), "c")
	start := a.sortIdx
	a = press(t, a, "s")
	if a.sortIdx != (start+1)%len(pipeline.SortOrders) {
		t.Errorf("sortIdx = %d after s", a.sortIdx)
	}
	// cost-desc follows name in the cycle; Zephyr is the bigger project.
	if pipeline.SortOrders[a.sortIdx] == pipeline.SortCostDesc && a.comparison[0].Name != "Zephyr" {
		t.Errorf("cost-desc first = %s", a.comparison[0].Name)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("x past tabs -> %d, want -1", got)
		}
	}
}

func TestViewFillsTerminal(t *testing.T) {
	a := loadedApp(t)
	for _, tab := range []string{"o", "p", "c"} {
		a = press(t, a, tab)
		view := a.View()
		lines := strings.Split(view, "\n")
		if len(lines) != 40 {
			t.Errorf("tab %s: %d lines, want 40", tab, len(lines))
		}
		if !strings.Contains(view, "Apollo") && tab != "o" {
			t.Errorf("tab %s does not mention Apollo", tab)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := loadedApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.View(), "too narrow") {
		t.Error("narrow terminal should show a warning")
	}
}

func TestEmptyPortfolio(t *testing.T) {
	eng := pipeline.NewEngine(pipeline.WithLogger(applog.Discard()))
	var m tea.Model = NewApp(Options{Engine: eng, PortfolioDir: "/nowhere"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(DataLoadedMsg{Result: &pipeline.LoadResult{}})
	if !strings.Contains(m.View(), "No project files found") {
		t.Error("empty portfolio message missing")
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := SetupValuesFrom(cfg)
	if vals.Currency != "USD" || vals.Contingency != "10" {
		t.Fatalf("seeded values = %+v", vals)
	}

	vals.Currency = "eur"
	vals.Contingency = " 12.5 "
	vals.DefaultSort = pipeline.SortDurationAsc
	vals.PortfolioDir = " ~/plans "
	if err := vals.Apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Currency.Primary != "EUR" || cfg.Currency.Symbol != "€" {
		t.Errorf("currency = %s %q", cfg.Currency.Primary, cfg.Currency.Symbol)
	}
	if cfg.Forecast.ContingencyPercent != 12.5 || cfg.General.PortfolioDir != "~/plans" {
		t.Errorf("cfg = %+v", cfg)
	}

	for _, bad := range []string{"abc", "-1", "101"} {
		vals.Contingency = bad
		if err := vals.Apply(&cfg); err == nil {
			t.Errorf("contingency %q accepted", bad)
		}
	}
}
