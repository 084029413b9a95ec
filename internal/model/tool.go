package model

// BillingFrequency is the recurrence rule for a tool's per-period charge.
type BillingFrequency string

const (
	OneTime   BillingFrequency = "one-time"
	Monthly   BillingFrequency = "monthly"
	Quarterly BillingFrequency = "quarterly"
	Annual    BillingFrequency = "annual"
)

// ToolCost is a software/licence cost record. Two shapes exist in saved
// files: the current periodic one (costPerPeriod, quantity, frequency and
// an optional date window) and a legacy flat licence (users × monthlyCost
// for a fixed number of months). Use Billing to classify a record.
type ToolCost struct {
	ID               FlexID           `json:"id"`
	Tool             string           `json:"tool"`
	ProcurementType  string           `json:"procurementType,omitempty"`
	BillingFrequency BillingFrequency `json:"billingFrequency,omitempty"`
	CostPerPeriod    *Number          `json:"costPerPeriod,omitempty"`
	Quantity         *Number          `json:"quantity,omitempty"`
	StartDate        string           `json:"startDate,omitempty"`
	EndDate          string           `json:"endDate,omitempty"`
	IsOngoing        bool             `json:"isOngoing,omitempty"`

	// Legacy licence fields.
	Users       Number `json:"users,omitempty"`
	MonthlyCost Number `json:"monthlyCost,omitempty"`
	Duration    Number `json:"duration,omitempty"`
}

// ToolBilling is the classified billing shape of a ToolCost: either
// LegacyBilling or PeriodicBilling.
type ToolBilling interface {
	toolBilling()
}

// LegacyBilling is a flat monthly licence running for Duration months
// from the first calendar month.
type LegacyBilling struct {
	Users       float64
	MonthlyCost float64
	Duration    int
}

// PeriodicBilling charges CostPerPeriod × Quantity at Frequency between
// StartDate and EndDate (or through the calendar end when IsOngoing).
type PeriodicBilling struct {
	CostPerPeriod float64
	Quantity      float64
	Frequency     BillingFrequency
	StartDate     string
	EndDate       string
	IsOngoing     bool
}

func (LegacyBilling) toolBilling()   {}
func (PeriodicBilling) toolBilling() {}

// MonthlyCharge is the legacy per-month licence cost.
func (b LegacyBilling) MonthlyCharge() float64 {
	return b.Users * b.MonthlyCost
}

// Charge is the full per-period charge.
func (b PeriodicBilling) Charge() float64 {
	return b.CostPerPeriod * b.Quantity
}

// MaxLegacyDuration bounds a legacy tool's duration in months; longer
// values behave the same on any calendar.
const MaxLegacyDuration = 1200

// Billing classifies the record once. A record is legacy iff users and
// monthlyCost are both non-zero; otherwise it is periodic iff costPerPeriod
// is present and a frequency is set. ok is false for records matching
// neither shape.
func (t ToolCost) Billing() (billing ToolBilling, ok bool) {
	if t.Users.Float() != 0 && t.MonthlyCost.Float() != 0 {
		return LegacyBilling{
			Users:       t.Users.Float(),
			MonthlyCost: t.MonthlyCost.Float(),
			Duration:    int(min(max(t.Duration.Float(), 0), MaxLegacyDuration)),
		}, true
	}
	if t.CostPerPeriod != nil && t.BillingFrequency != "" {
		qty := 1.0
		if t.Quantity != nil {
			qty = t.Quantity.Float()
		}
		return PeriodicBilling{
			CostPerPeriod: t.CostPerPeriod.Float(),
			Quantity:      qty,
			Frequency:     t.BillingFrequency,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			IsOngoing:     t.IsOngoing,
		}, true
	}
	return nil, false
}
