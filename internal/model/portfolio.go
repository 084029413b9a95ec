package model

// CategoryCost is one cost category of a portfolio project.
// MonthlyBreakdown is keyed by 1-based month index within the project's
// own calendar, not by calendar key.
type CategoryCost struct {
	Total            float64
	MonthlyBreakdown map[int]float64
	Count            int
}

// ProjectCosts is the cost summary of a portfolio project.
type ProjectCosts struct {
	Internal    CategoryCost
	External    CategoryCost
	Tools       CategoryCost
	Misc        CategoryCost
	Contingency float64
	Total       float64
}

// ProjectResources keeps the raw staffing records needed for demand
// estimation.
type ProjectResources struct {
	Internal []InternalResource
	External []VendorCost
}

// PortfolioProject is one project file loaded into the portfolio view.
type PortfolioProject struct {
	ID        string
	FileName  string
	Metadata  ProjectInfo
	Costs     ProjectCosts
	Resources ProjectResources
}

// Name returns the display name, falling back to the file name.
func (p PortfolioProject) Name() string {
	if p.Metadata.ProjectName != "" {
		return p.Metadata.ProjectName
	}
	return p.FileName
}

// ProjectMonthCost is one project's contribution to a portfolio month.
type ProjectMonthCost struct {
	Name string
	Cost float64
}

// MonthlyCost is the cross-project cost of one unified-timeline month.
type MonthlyCost struct {
	Key      string
	Label    string
	Internal float64
	External float64
	Tools    float64
	Misc     float64
	Total    float64
	Projects []ProjectMonthCost
}

// CostBreakdown sums each category across all portfolio projects.
type CostBreakdown struct {
	Internal    float64
	External    float64
	Tools       float64
	Misc        float64
	Contingency float64
	Total       float64
}

// ResourceDemand is the month with the highest estimated FTE load.
type ResourceDemand struct {
	Key   string
	Label string
	FTE   float64
}

// PortfolioAggregate is the cross-project rollup.
type PortfolioAggregate struct {
	MonthlyCosts       []MonthlyCost
	TotalPortfolioCost float64
	CostBreakdown      CostBreakdown
	PeakResourceDemand ResourceDemand
}

// Month returns the monthly cost for a timeline key.
func (a PortfolioAggregate) Month(key string) (MonthlyCost, bool) {
	for _, m := range a.MonthlyCosts {
		if m.Key == key {
			return m, true
		}
	}
	return MonthlyCost{}, false
}

// ProjectComparison holds per-project comparison metrics.
type ProjectComparison struct {
	ID             string
	Name           string
	TotalCost      float64
	DurationMonths int
	CostPerMonth   float64
	ResourceCount  int
}
