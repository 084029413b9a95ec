package model

// Risk is a project risk rated 1–5 on probability and impact.
type Risk struct {
	ID             FlexID `json:"id"`
	Description    string `json:"description"`
	Probability    Number `json:"probability"`
	Impact         Number `json:"impact"`
	MitigationCost Number `json:"mitigationCost,omitempty"`
}

// Score is probability × impact (1–25).
func (r Risk) Score() float64 {
	return r.Probability.Float() * r.Impact.Float()
}

// RiskSummary rolls up a project's risk register.
type RiskSummary struct {
	Count           int
	HighRisk        int // Score >= HighRiskScore
	MaxScore        float64
	TotalMitigation float64
}

// HighRiskScore is the score at which a risk counts as high.
const HighRiskScore = 15
