package pipeline

import (
	"fmt"
	"testing"

	"github.com/theirongolddev/costplan/internal/model"
)

// syntheticPortfolio builds n two-year projects with staggered starts.
func syntheticPortfolio(e *Engine, n int) []model.PortfolioProject {
	projects := make([]model.PortfolioProject, 0, n)
	for i := 0; i < n; i++ {
		data := scenarioProject()
		data.ProjectInfo.StartDate = fmt.Sprintf("20%02d-%02d-01", 24+i/12, i%12+1)
		data.ProjectInfo.EndDate = fmt.Sprintf("20%02d-%02d-01", 26+i/12, i%12+1)
		for m := 1; m <= MaxCalendarMonths; m++ {
			data.InternalResources[0].Days[MonthKey(m)] = float64(m % 7)
		}
		projects = append(projects, e.Summarize(fmt.Sprintf("p%03d.json", i), data, DefaultContingencyPercent))
	}
	return projects
}

func BenchmarkProjectForecast(b *testing.B) {
	e := NewEngine()
	data := scenarioProject()
	info := e.Calendar("2025-01-01", "2026-12-01")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.ProjectForecast(data, info)
	}
}

func BenchmarkPortfolioAggregate(b *testing.B) {
	e := NewEngine()
	projects := syntheticPortfolio(e, 50)
	timeline := e.UnifiedTimeline(projects)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.PortfolioAggregate(projects, timeline)
	}
}

func BenchmarkCompareProjects(b *testing.B) {
	e := NewEngine()
	projects := syntheticPortfolio(e, 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.CompareProjects(projects, SortName)
	}
}
