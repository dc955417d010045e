package scoring

import (
	"math"
	"testing"

	"MacroPulse/internal/domain/models"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	return NewAnalyzer(cfg, nil)
}

func TestScoreIndicator(t *testing.T) {
	a := newTestAnalyzer(t)
	cases := []struct {
		id    string
		value float64
		want  float64
	}{
		{"UNRATE", 4, 100},
		{"UNRATE", 5, 50},
		{"UNRATE", 6, 0},
		{"UNRATE", 3, 100},
		{"UNRATE", 8, 0},
		{"VIX", 21, 50},
		{"DFF", 3.5, 50},
		{"CPIAUCSL", 3, 50},
	}
	for _, tc := range cases {
		got := a.ScoreIndicator(tc.id, models.Float(tc.value))
		if !got.OK() {
			t.Fatalf("%s(%v): status %s", tc.id, tc.value, got.Status)
		}
		if math.Abs(got.Value-tc.want) > 1e-9 {
			t.Fatalf("%s(%v) = %v, want %v", tc.id, tc.value, got.Value, tc.want)
		}
	}
}

func TestScoreIndicatorAbsent(t *testing.T) {
	a := newTestAnalyzer(t)
	got := a.ScoreIndicator("UNRATE", nil)
	if got.Status != models.ScoreAbsent {
		t.Fatalf("nil value: status %s, want absent", got.Status)
	}
}

func TestScoreIndicatorMalformed(t *testing.T) {
	a := newTestAnalyzer(t)
	if got := a.ScoreIndicator("UNRATE", models.Float(math.NaN())); got.Status != models.ScoreMalformed {
		t.Fatalf("NaN: status %s, want malformed", got.Status)
	}
	if got := a.ScoreIndicator("UNRATE", models.Float(math.Inf(1))); got.Status != models.ScoreMalformed {
		t.Fatalf("Inf: status %s, want malformed", got.Status)
	}
	if got := a.ScoreIndicator("NO_SUCH_SERIES", models.Float(1)); got.Status != models.ScoreMalformed {
		t.Fatalf("unknown id: status %s, want malformed", got.Status)
	}
}

func TestScoreIndicatorIdempotent(t *testing.T) {
	a := newTestAnalyzer(t)
	first := a.ScoreIndicator("TCU", models.Float(77))
	second := a.ScoreIndicator("TCU", models.Float(77))
	if first != second {
		t.Fatalf("same input scored differently: %v vs %v", first, second)
	}
}

func TestScoreIndicatorRange(t *testing.T) {
	a := newTestAnalyzer(t)
	cfg := DefaultConfig()
	for id := range cfg.Thresholds {
		for v := -100.0; v <= 200.0; v += 7.3 {
			got := a.ScoreIndicator(id, models.Float(v))
			if !got.OK() {
				t.Fatalf("%s(%v): status %s", id, v, got.Status)
			}
			if got.Value < 0 || got.Value > 100 {
				t.Fatalf("%s(%v) = %v, out of [0,100]", id, v, got.Value)
			}
		}
	}
}

func TestGetOverallScoreWeighted(t *testing.T) {
	a := newTestAnalyzer(t)
	data := map[string]*models.Snapshot{
		"UNRATE": {ID: "UNRATE", LatestValue: models.Float(5)},  // 50
		"VIX":    {ID: "VIX", LatestValue: models.Float(21)},    // 50
	}
	result := a.GetOverallScore(data)
	if result.EconomyScore == nil || math.Abs(*result.EconomyScore-50) > 1e-9 {
		t.Fatalf("economy = %v, want 50", result.EconomyScore)
	}
	if result.VolatilityScore == nil || math.Abs(*result.VolatilityScore-50) > 1e-9 {
		t.Fatalf("volatility = %v, want 50", result.VolatilityScore)
	}
	if result.RatesScore != nil {
		t.Fatalf("rates scored with no data")
	}
	// Both present categories score 50, so the renormalized composite is 50.
	if math.Abs(result.OverallScore-50) > 1e-9 {
		t.Fatalf("overall = %v, want 50", result.OverallScore)
	}
}

func TestGetOverallScoreMixedCategories(t *testing.T) {
	a := newTestAnalyzer(t)
	data := map[string]*models.Snapshot{
		"UNRATE": {ID: "UNRATE", LatestValue: models.Float(4)},  // economy 100
		"VIX":    {ID: "VIX", LatestValue: models.Float(30)},    // volatility 0
	}
	result := a.GetOverallScore(data)
	// (100*0.30 + 0*0.15) / 0.45
	want := 100 * 0.30 / 0.45
	if math.Abs(result.OverallScore-want) > 1e-9 {
		t.Fatalf("overall = %v, want %v", result.OverallScore, want)
	}
}

func TestGetOverallScoreEmptyFallsBackToNeutral(t *testing.T) {
	a := newTestAnalyzer(t)
	result := a.GetOverallScore(map[string]*models.Snapshot{})
	if result.OverallScore != 50 {
		t.Fatalf("overall = %v, want neutral 50", result.OverallScore)
	}
	if len(result.IndicatorScores) != 0 {
		t.Fatalf("indicator scores on empty input: %v", result.IndicatorScores)
	}
}

func TestGetOverallScorePrefersYoY(t *testing.T) {
	a := newTestAnalyzer(t)
	data := map[string]*models.Snapshot{
		"CPIAUCSL": {
			ID:          "CPIAUCSL",
			LatestValue: models.Float(310.5), // raw index level, not scoreable
			YoY:         models.Float(3.0),
		},
	}
	result := a.GetOverallScore(data)
	if result.InflationScore == nil || math.Abs(*result.InflationScore-50) > 1e-9 {
		t.Fatalf("inflation = %v, want 50 from YoY", result.InflationScore)
	}
	sv, ok := result.IndicatorScores["CPIAUCSL"]
	if !ok || sv.Value != 3.0 {
		t.Fatalf("indicator score value = %+v, want YoY 3.0", sv)
	}
}

func TestGetOverallScoreSkipsUnscoreable(t *testing.T) {
	a := newTestAnalyzer(t)
	data := map[string]*models.Snapshot{
		"UNRATE": {ID: "UNRATE", LatestValue: models.Float(5)},
		"TCU":    {ID: "TCU", LatestValue: models.Float(math.NaN())},
		"UMCSENT": nil,
	}
	result := a.GetOverallScore(data)
	if result.EconomyScore == nil || math.Abs(*result.EconomyScore-50) > 1e-9 {
		t.Fatalf("economy = %v, want 50 from UNRATE alone", result.EconomyScore)
	}
	if _, ok := result.IndicatorScores["TCU"]; ok {
		t.Fatalf("malformed TCU made it into indicator scores")
	}
}
