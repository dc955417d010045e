package history

import (
	"math"
	"testing"

	"MacroPulse/internal/domain/models"
)

func TestCorrelatePerfectlyLinear(t *testing.T) {
	points := make([]models.HistoricalPoint, 0, 6)
	benchmark := make(models.Series, 0, 6)
	for i := 0; i < 6; i++ {
		points = append(points, models.HistoricalPoint{Date: day(i * 10), Score: float64(10 + 10*i)})
		benchmark = append(benchmark, models.Observation{Date: day(i * 10), Value: float64(4000 + 100*i)})
	}
	got, ok := Correlate(points, benchmark)
	if !ok {
		t.Fatalf("expected correlation")
	}
	if math.Abs(got.Coefficient-1.0) > 1e-9 {
		t.Fatalf("coefficient = %v, want 1", got.Coefficient)
	}
	if got.Count != 6 {
		t.Fatalf("count = %d, want 6", got.Count)
	}
}

func TestCorrelateInverse(t *testing.T) {
	points := make([]models.HistoricalPoint, 0, 5)
	benchmark := make(models.Series, 0, 5)
	for i := 0; i < 5; i++ {
		points = append(points, models.HistoricalPoint{Date: day(i * 10), Score: float64(90 - 10*i)})
		benchmark = append(benchmark, models.Observation{Date: day(i * 10), Value: float64(4000 + 100*i)})
	}
	got, ok := Correlate(points, benchmark)
	if !ok {
		t.Fatalf("expected correlation")
	}
	if math.Abs(got.Coefficient+1.0) > 1e-9 {
		t.Fatalf("coefficient = %v, want -1", got.Coefficient)
	}
}

func TestCorrelateTooFewPoints(t *testing.T) {
	points := []models.HistoricalPoint{
		{Date: day(0), Score: 10},
		{Date: day(10), Score: 20},
	}
	benchmark := models.Series{
		{Date: day(0), Value: 4000},
		{Date: day(10), Value: 4100},
	}
	if _, ok := Correlate(points, benchmark); ok {
		t.Fatalf("expected no correlation below the minimum sample")
	}
}

func TestCorrelateConstantInput(t *testing.T) {
	points := make([]models.HistoricalPoint, 0, 6)
	benchmark := make(models.Series, 0, 6)
	for i := 0; i < 6; i++ {
		points = append(points, models.HistoricalPoint{Date: day(i * 10), Score: 50})
		benchmark = append(benchmark, models.Observation{Date: day(i * 10), Value: float64(4000 + 100*i)})
	}
	if _, ok := Correlate(points, benchmark); ok {
		t.Fatalf("constant scores must yield no coefficient")
	}
}

func TestCorrelateSkipsUnmatchedDates(t *testing.T) {
	points := make([]models.HistoricalPoint, 0, 7)
	benchmark := make(models.Series, 0, 6)
	// One point predates the benchmark entirely and must be dropped.
	points = append(points, models.HistoricalPoint{Date: day(-100), Score: 5})
	for i := 0; i < 6; i++ {
		points = append(points, models.HistoricalPoint{Date: day(i * 10), Score: float64(10 + 10*i)})
		benchmark = append(benchmark, models.Observation{Date: day(i * 10), Value: float64(4000 + 100*i)})
	}
	got, ok := Correlate(points, benchmark)
	if !ok {
		t.Fatalf("expected correlation")
	}
	if got.Count != 6 {
		t.Fatalf("count = %d, want 6 after dropping the unmatched point", got.Count)
	}
}
