package models

import "time"

// HistoricalPoint is one reconstructed composite score at a past date.
type HistoricalPoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// Signal labels for the change in recommended stock exposure between two
// consecutive historical points.
const (
	SignalExpand         = "expand"
	SignalReduce         = "reduce"
	SignalSlightlyExpand = "slightly expand"
	SignalSlightlyReduce = "slightly reduce"
	SignalNeutral        = "neutral"
)

// SignalPoint is a historical point matched against the benchmark, carrying
// the implied stock allocation and the directional signal vs the prior point.
type SignalPoint struct {
	Date      time.Time `json:"date"`
	Score     float64   `json:"score"`
	StockPct  float64   `json:"stock_pct"`
	Benchmark float64   `json:"benchmark"`
	Signal    string    `json:"signal"`
	Strength  float64   `json:"strength"`
}

// Correlation is the Pearson correlation between historical composite scores
// and matched benchmark closes.
type Correlation struct {
	Coefficient float64 `json:"correlation"`
	Count       int     `json:"count"`
}

// Outlook is the full current evaluation published to consumers.
type Outlook struct {
	EvaluatedAt    time.Time      `json:"evaluated_at"`
	Scores         ScoreResult    `json:"scores"`
	Recommendation Recommendation `json:"recommendation"`
}
