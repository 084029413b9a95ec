package pipeline

import (
	"github.com/google/uuid"

	"github.com/theirongolddev/costplan/internal/model"
)

// ProjectID derives a stable portfolio ID from a project's file name.
func ProjectID(fileName string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fileName)).String()
}

// Summarize turns a raw project document into its portfolio unit.
//
// Internal and external monthly breakdowns come from the project's own
// forecast and are keyed 1..count. Tools total the distributed tool
// charges; misc is the flat sum of misc items. Contingency is the
// document's contingencyPercentage of the subtotal, or contingencyPct
// when the document sets none. PrepareDocument, if set, runs first.
func (e *Engine) Summarize(fileName string, data model.ProjectData, contingencyPct float64) model.PortfolioProject {
	if e.PrepareDocument != nil {
		data = e.PrepareDocument(data)
	}
	info := e.Calendar(data.ProjectInfo.StartDate, data.ProjectInfo.EndDate)
	fc := e.ProjectForecast(data, info)

	costs := model.ProjectCosts{
		Internal: model.CategoryCost{
			Total:            fc.Totals.Internal,
			MonthlyBreakdown: indexByMonth(fc.InternalMonthly),
			Count:            len(data.InternalResources),
		},
		External: model.CategoryCost{
			Total:            fc.Totals.Vendor,
			MonthlyBreakdown: indexByMonth(fc.VendorMonthly),
			Count:            len(data.VendorCosts),
		},
		Tools: model.CategoryCost{
			Total: fc.Totals.Tool,
			Count: len(data.ToolCosts),
		},
		Misc: model.CategoryCost{
			Total: ProjectMiscTotal(data.MiscCosts),
			Count: len(data.MiscCosts),
		},
	}

	pct := contingencyPct
	if data.ContingencyPercentage != nil {
		pct = data.ContingencyPercentage.Float()
	}
	subtotal := costs.Internal.Total + costs.External.Total + costs.Tools.Total + costs.Misc.Total
	costs.Contingency = subtotal * pct / 100
	costs.Total = subtotal + costs.Contingency

	return model.PortfolioProject{
		ID:       ProjectID(fileName),
		FileName: fileName,
		Metadata: data.ProjectInfo,
		Costs:    costs,
		Resources: model.ProjectResources{
			Internal: data.InternalResources,
			External: data.VendorCosts,
		},
	}
}

func indexByMonth(series []float64) map[int]float64 {
	out := make(map[int]float64, len(series))
	for i, v := range series {
		out[i+1] = v
	}
	return out
}

// RiskSummary rolls up a risk register.
func RiskSummary(risks []model.Risk) model.RiskSummary {
	s := model.RiskSummary{Count: len(risks)}
	for _, r := range risks {
		score := r.Score()
		if score >= model.HighRiskScore {
			s.HighRisk++
		}
		if score > s.MaxScore {
			s.MaxScore = score
		}
		s.TotalMitigation += r.MitigationCost.Float()
	}
	return s
}
