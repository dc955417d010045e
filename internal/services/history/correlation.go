package history

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"MacroPulse/internal/domain/models"
)

// minCorrelationPoints is the smallest paired sample worth a Pearson
// coefficient.
const minCorrelationPoints = 5

// Correlate computes the Pearson correlation between composite scores and the
// benchmark closes matched to their dates. It returns false when fewer than
// minCorrelationPoints pairs match or the coefficient is undefined (constant
// input).
func Correlate(points []models.HistoricalPoint, benchmark models.Series) (models.Correlation, bool) {
	scores := make([]float64, 0, len(points))
	closes := make([]float64, 0, len(points))
	for _, p := range points {
		obs, ok := benchmark.AsOf(p.Date)
		if !ok {
			continue
		}
		scores = append(scores, p.Score)
		closes = append(closes, obs.Value)
	}
	if len(scores) < minCorrelationPoints {
		return models.Correlation{}, false
	}
	r := stat.Correlation(scores, closes, nil)
	if math.IsNaN(r) {
		return models.Correlation{}, false
	}
	return models.Correlation{Coefficient: r, Count: len(scores)}, true
}
