package models

// ScoreStatus tells whether an indicator produced a usable score.
type ScoreStatus string

const (
	ScoreOK        ScoreStatus = "ok"
	ScoreAbsent    ScoreStatus = "absent"
	ScoreMalformed ScoreStatus = "malformed"
)

// IndicatorScore is the outcome of normalizing one indicator value.
// Absent and Malformed carry no Value; Malformed carries a Reason so callers
// and tests can tell "correctly absent" from "silently wrong".
type IndicatorScore struct {
	Status ScoreStatus `json:"status"`
	Value  float64     `json:"value,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// OK reports whether the score is usable.
func (s IndicatorScore) OK() bool { return s.Status == ScoreOK }

// ScoredValue pairs the input value an indicator was scored on with its score.
type ScoredValue struct {
	Value float64 `json:"value"`
	Score float64 `json:"score"`
}

// ScoreResult is the full outcome of one composite evaluation. Category
// entries are nil when no indicator in the category was scoreable.
type ScoreResult struct {
	EconomyScore    *float64               `json:"economy_score"`
	RatesScore      *float64               `json:"rates_score"`
	InflationScore  *float64               `json:"inflation_score"`
	VolatilityScore *float64               `json:"volatility_score"`
	LiquidityScore  *float64               `json:"liquidity_score"`
	OverallScore    float64                `json:"overall_score"`
	IndicatorScores map[string]ScoredValue `json:"indicator_scores"`
}

// Category returns the category score pointer for a known category name.
func (r *ScoreResult) Category(name string) *float64 {
	switch name {
	case "economy":
		return r.EconomyScore
	case "rates":
		return r.RatesScore
	case "inflation":
		return r.InflationScore
	case "volatility":
		return r.VolatilityScore
	case "liquidity":
		return r.LiquidityScore
	}
	return nil
}
