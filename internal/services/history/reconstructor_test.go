package history

import (
	"math"
	"testing"
	"time"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/scoring"
)

func newTestReconstructor(t *testing.T) *Reconstructor {
	t.Helper()
	cfg := scoring.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	return NewReconstructor(scoring.NewAnalyzer(cfg, nil), cfg, nil)
}

func constantMonthly(start time.Time, months int, value float64) models.Series {
	s := make(models.Series, 0, months)
	for i := 0; i < months; i++ {
		s = append(s, models.Observation{Date: start.AddDate(0, i, 0), Value: value})
	}
	return s
}

func TestHistoricalScoresConstantInputs(t *testing.T) {
	r := newTestReconstructor(t)
	start := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	series := map[string]models.Series{
		"UNRATE": constantMonthly(start, 24, 5),  // scores 50
		"VIX":    constantMonthly(start, 24, 21), // scores 50
	}
	points := r.HistoricalScores(series, 365)
	if len(points) < 2 {
		t.Fatalf("expected at least 2 points, got %d", len(points))
	}
	for _, p := range points {
		if math.Abs(p.Score-50) > 1e-9 {
			t.Fatalf("point %v scored %v, want 50", p.Date, p.Score)
		}
	}
	for i := 1; i < len(points); i++ {
		if !points[i-1].Date.Before(points[i].Date) {
			t.Fatalf("points not strictly ascending at %d", i)
		}
	}
	last := points[len(points)-1]
	wantLast := start.AddDate(0, 23, 0)
	if !last.Date.Equal(wantLast) {
		t.Fatalf("last point %v, want latest observation %v", last.Date, wantLast)
	}
}

func TestHistoricalScoresLookbackWindow(t *testing.T) {
	r := newTestReconstructor(t)
	start := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	series := map[string]models.Series{
		"UNRATE": constantMonthly(start, 60, 5),
	}
	points := r.HistoricalScores(series, 365)
	if len(points) == 0 {
		t.Fatalf("expected points")
	}
	latest := start.AddDate(0, 59, 0)
	cutoff := latest.AddDate(0, 0, -365)
	for _, p := range points {
		if p.Date.Before(cutoff) {
			t.Fatalf("point %v older than cutoff %v", p.Date, cutoff)
		}
	}
}

func TestHistoricalScoresMatchesDirectScoring(t *testing.T) {
	r := newTestReconstructor(t)
	start := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	series := map[string]models.Series{
		"UNRATE": constantMonthly(start, 24, 4.5),
		"DFF":    constantMonthly(start, 24, 3.5),
	}
	points := r.HistoricalScores(series, 365)
	if len(points) == 0 {
		t.Fatalf("expected points")
	}

	cfg := scoring.DefaultConfig()
	direct := scoring.NewAnalyzer(cfg, nil).GetOverallScore(map[string]*models.Snapshot{
		"UNRATE": {ID: "UNRATE", LatestValue: models.Float(4.5)},
		"DFF":    {ID: "DFF", LatestValue: models.Float(3.5)},
	})
	last := points[len(points)-1]
	if math.Abs(last.Score-direct.OverallScore) > 1e-9 {
		t.Fatalf("reconstructed %v, direct %v", last.Score, direct.OverallScore)
	}
}

func TestHistoricalScoresUsesYoYForGrowthIndicators(t *testing.T) {
	r := newTestReconstructor(t)
	start := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	// Year two repeats year one scaled by exactly 1.03, so every point in
	// year two has a trailing-12-month growth of 3% and scores 50 on the
	// CPI curve.
	s := make(models.Series, 0, 24)
	for i := 0; i < 12; i++ {
		s = append(s, models.Observation{Date: start.AddDate(0, i, 0), Value: 100 + float64(i)})
	}
	for i := 0; i < 12; i++ {
		s = append(s, models.Observation{Date: start.AddDate(0, 12+i, 0), Value: (100 + float64(i)) * 1.03})
	}
	points := r.HistoricalScores(map[string]models.Series{"CPIAUCSL": s}, 330)
	if len(points) == 0 {
		t.Fatalf("expected points")
	}
	last := points[len(points)-1]
	if math.Abs(last.Score-50) > 1e-9 {
		t.Fatalf("last score %v, want 50 from 3%% YoY", last.Score)
	}
}

func TestHistoricalScoresSkipsBadSeries(t *testing.T) {
	r := newTestReconstructor(t)
	start := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	shuffled := models.Series{
		{Date: start.AddDate(0, 1, 0), Value: 5},
		{Date: start, Value: 5},
	}
	series := map[string]models.Series{
		"UNRATE":  constantMonthly(start, 24, 5),
		"UMCSENT": shuffled,
		"TCU":     {},
	}
	points := r.HistoricalScores(series, 365)
	if len(points) == 0 {
		t.Fatalf("expected points from the surviving series")
	}
	for _, p := range points {
		if math.Abs(p.Score-50) > 1e-9 {
			t.Fatalf("bad series leaked into scoring: %v at %v", p.Score, p.Date)
		}
	}
}

func TestHistoricalScoresEmptyInput(t *testing.T) {
	r := newTestReconstructor(t)
	if got := r.HistoricalScores(nil, 365); got != nil {
		t.Fatalf("nil input produced points: %v", got)
	}
	single := map[string]models.Series{
		"UNRATE": {{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 5}},
	}
	if got := r.HistoricalScores(single, 365); got != nil {
		t.Fatalf("single observation produced points: %v", got)
	}
}

func TestSampleDatesStride(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		n    int
		want int
	}{
		{100, 100},  // stride 1 keeps everything
		{520, 261},  // stride 2 skips the latest, which is re-appended
		{1000, 334}, // stride 3 lands on the latest at index 999
	}
	for _, tc := range cases {
		dates := make([]time.Time, 0, tc.n)
		for i := 0; i < tc.n; i++ {
			dates = append(dates, start.AddDate(0, 0, i))
		}

		sampled := sampleDates(dates, maxPoints)
		if len(sampled) != tc.want {
			t.Errorf("n=%d: sampled %d dates, want %d", tc.n, len(sampled), tc.want)
		}

		step := tc.n / maxPoints
		if step < 1 {
			step = 1
		}
		if bound := (tc.n+step-1)/step + 1; len(sampled) > bound {
			t.Errorf("n=%d: sampled %d dates, stride bound is %d", tc.n, len(sampled), bound)
		}
		if !sampled[len(sampled)-1].Equal(dates[tc.n-1]) {
			t.Errorf("n=%d: latest date missing from sample", tc.n)
		}
	}
}
