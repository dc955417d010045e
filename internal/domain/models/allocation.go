package models

// Allocation is a 4-way asset split in percent. Percentages are non-negative
// and sum to exactly 100.00 after normalization.
type Allocation struct {
	Stocks     float64 `json:"stocks"`
	Bonds      float64 `json:"bonds"`
	Cash       float64 `json:"cash"`
	RealEstate float64 `json:"real_estate"`
}

// Total returns the sum of all four buckets.
func (a Allocation) Total() float64 {
	return a.Stocks + a.Bonds + a.Cash + a.RealEstate
}

// Recommendation wraps an allocation with qualitative guidance.
type Recommendation struct {
	Allocation     Allocation `json:"allocation"`
	Recommendation string     `json:"recommendation"`
	RiskLevel      string     `json:"risk_level"`
	Score          float64    `json:"score"`
}
