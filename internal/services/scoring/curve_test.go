package scoring

import (
	"math"
	"testing"
)

func TestCurveEvalInterpolates(t *testing.T) {
	c := Curve{{4, 100}, {6, 0}}
	cases := []struct {
		in   float64
		want float64
	}{
		{4, 100},
		{5, 50},
		{6, 0},
		{4.5, 75},
	}
	for _, tc := range cases {
		if got := c.Eval(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Eval(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCurveEvalClampsBeyondEnds(t *testing.T) {
	c := Curve{{4, 100}, {6, 0}}
	if got := c.Eval(3); got != 100 {
		t.Fatalf("below range: got %v, want 100", got)
	}
	if got := c.Eval(7); got != 0 {
		t.Fatalf("above range: got %v, want 0", got)
	}
}

func TestCurveEvalNonMonotonic(t *testing.T) {
	c := DefaultConfig().Thresholds["TCU"].Points
	cases := []struct {
		in   float64
		want float64
	}{
		{77, 100},
		{72.5, 80},
		{85, 80},
		{90, 80},
		{55, 20},
	}
	for _, tc := range cases {
		if got := c.Eval(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Eval(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCurveEvalMultiSegment(t *testing.T) {
	c := DefaultConfig().Thresholds["INDPRO"].Points
	cases := []struct {
		in   float64
		want float64
	}{
		{-3, 0},
		{-1, 40},
		{0, 55},
		{2, 85},
		{3, 100},
	}
	for _, tc := range cases {
		if got := c.Eval(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Eval(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestScaleRuleApply(t *testing.T) {
	r := &ScaleRule{Above: 1000, Divisor: 1e6}
	if got := r.Apply(2_000_000); got != 2 {
		t.Fatalf("large value not rescaled: got %v", got)
	}
	if got := r.Apply(2.5); got != 2.5 {
		t.Fatalf("small value rescaled: got %v", got)
	}
	var nilRule *ScaleRule
	if got := nilRule.Apply(3); got != 3 {
		t.Fatalf("nil rule changed value: got %v", got)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights[CategoryEconomy] = 0.5
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected weight sum error")
	}
}

func TestValidateRejectsMissingThreshold(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.Thresholds, "UNRATE")
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing threshold error")
	}
}
