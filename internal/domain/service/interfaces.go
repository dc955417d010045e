package service

import (
	"MacroPulse/internal/domain/models"
)

// Scorer normalizes indicator readings and aggregates them into a composite.
type Scorer interface {
	ScoreIndicator(id string, value *float64) models.IndicatorScore
	GetOverallScore(data map[string]*models.Snapshot) models.ScoreResult
}

// Allocator maps composite scores onto asset allocations.
type Allocator interface {
	CalculateAllocation(score float64) models.Allocation
	Recommend(score float64) models.Recommendation
}

// Historian reconstructs composite scores at past dates from raw series.
type Historian interface {
	HistoricalScores(series map[string]models.Series, lookbackDays int) []models.HistoricalPoint
}

// Signaler derives stock-exposure signals from historical points and a
// benchmark series.
type Signaler interface {
	Signals(points []models.HistoricalPoint, benchmark models.Series) []models.SignalPoint
}
