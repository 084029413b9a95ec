// Package model defines the domain types for project cost estimation:
// the project document and its cost records, and the derived calendar,
// forecast and portfolio views computed from them.
package model

import (
	"encoding/json"
	"strings"
)

// ProjectInfo is the header of a project document. Dates are kept as the
// raw strings found in the file ("YYYY-MM-DD"); either may be empty, which
// marks the project as undated.
type ProjectInfo struct {
	ProjectName        string `json:"projectName"`
	StartDate          string `json:"startDate,omitempty"`
	EndDate            string `json:"endDate,omitempty"`
	ProjectManager     string `json:"projectManager,omitempty"`
	ProjectDescription string `json:"projectDescription,omitempty"`
}

// Allocation holds per-period values keyed by period name, e.g. "month3"
// or "q2". A key is present iff the matching field was present on the
// record, so a stored zero still shadows the quarterly fallback.
type Allocation map[string]float64

// Has reports whether the period field exists.
func (a Allocation) Has(period string) bool {
	_, ok := a[period]
	return ok
}

// InternalResource is a staffed role billed at a daily rate. Days holds
// every monthNDays and legacy qNDays field of the record.
type InternalResource struct {
	ID        FlexID     `json:"id"`
	Role      string     `json:"role"`
	RateCard  string     `json:"rateCard,omitempty"`
	DailyRate Number     `json:"dailyRate"`
	Days      Allocation `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *InternalResource) UnmarshalJSON(data []byte) error {
	type plain InternalResource
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	alloc, err := collectAllocation(data, "Days")
	if err != nil {
		return err
	}
	p.Days = alloc
	*r = InternalResource(p)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r InternalResource) MarshalJSON() ([]byte, error) {
	type plain InternalResource
	return mergeAllocation(plain(r), r.Days, "Days")
}

// VendorCost is an external vendor line with a direct amount per period.
// Costs holds every monthNCost and legacy qNCost field of the record.
type VendorCost struct {
	ID          FlexID     `json:"id"`
	Vendor      string     `json:"vendor"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	Costs       Allocation `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *VendorCost) UnmarshalJSON(data []byte) error {
	type plain VendorCost
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	alloc, err := collectAllocation(data, "Cost")
	if err != nil {
		return err
	}
	p.Costs = alloc
	*v = VendorCost(p)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v VendorCost) MarshalJSON() ([]byte, error) {
	type plain VendorCost
	return mergeAllocation(plain(v), v.Costs, "Cost")
}

// MiscCost is a single flat cost with no monthly shape.
type MiscCost struct {
	ID          FlexID `json:"id"`
	Item        string `json:"item"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Cost        Number `json:"cost"`
}

// RateCard is a named daily rate. Role doubles as the identity when ID is
// absent.
type RateCard struct {
	ID       FlexID `json:"id,omitempty"`
	Role     string `json:"role"`
	Rate     Number `json:"rate"`
	Category string `json:"category"` // Internal or External
}

// Key returns the card's identity.
func (c RateCard) Key() string {
	if c.ID != "" {
		return string(c.ID)
	}
	return c.Role
}

// CurrencySettings carries the project's display currency and exchange
// rates, expressed as units of each currency per one unit of Primary.
type CurrencySettings struct {
	PrimaryCurrency string            `json:"primaryCurrency"`
	ExchangeRates   map[string]Number `json:"exchangeRates,omitempty"`
}

// ProjectData is a whole project document as saved by the editor.
type ProjectData struct {
	ProjectInfo           ProjectInfo        `json:"projectInfo"`
	InternalResources     []InternalResource `json:"internalResources"`
	VendorCosts           []VendorCost       `json:"vendorCosts"`
	ToolCosts             []ToolCost         `json:"toolCosts"`
	MiscCosts             []MiscCost         `json:"miscCosts"`
	Risks                 []Risk             `json:"risks,omitempty"`
	RateCards             []RateCard         `json:"rateCards,omitempty"`
	Currency              *CurrencySettings  `json:"currency,omitempty"`
	ContingencyPercentage *Number            `json:"contingencyPercentage,omitempty"`
}

// collectAllocation picks every "<period><suffix>" property out of a raw
// JSON object, where period is monthN or qN.
func collectAllocation(data []byte, suffix string) (Allocation, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	alloc := make(Allocation)
	for key, val := range raw {
		period, ok := strings.CutSuffix(key, suffix)
		if !ok || !isPeriodName(period) {
			continue
		}
		alloc[period] = parseLenientFloat(val)
	}
	return alloc, nil
}

func mergeAllocation(v any, alloc Allocation, suffix string) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for period, val := range alloc {
		fields[period+suffix] = val
	}
	return json.Marshal(fields)
}

func isPeriodName(s string) bool {
	var digits string
	switch {
	case strings.HasPrefix(s, "month"):
		digits = s[len("month"):]
	case strings.HasPrefix(s, "q"):
		digits = s[1:]
	default:
		return false
	}
	if digits == "" || digits[0] == '0' {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
