package timeseries

import (
	"math"

	"MacroPulse/internal/domain/models"
)

// Trailing growth transforms over observation counts: YoY looks 12
// observations back, QoQ 3, MoM 1. Shorter series fall back to their first
// observation for YoY/QoQ, matching how monthly macro releases are consumed.

// YoY returns the trailing year-over-year percentage growth, or nil when the
// series is too short or the base value is zero/not finite.
func YoY(s models.Series) *float64 {
	return trailingGrowth(s, 12)
}

// QoQ returns the trailing quarter-over-quarter percentage growth.
func QoQ(s models.Series) *float64 {
	return trailingGrowth(s, 3)
}

// MoM returns the growth vs the immediately preceding observation.
func MoM(s models.Series) *float64 {
	if len(s) < 2 {
		return nil
	}
	return growthPct(s[len(s)-1].Value, s[len(s)-2].Value)
}

// GrowthBetween computes the percentage change from base to v, nil on a zero
// or non-finite base.
func GrowthBetween(v, base float64) *float64 {
	return growthPct(v, base)
}

func trailingGrowth(s models.Series, back int) *float64 {
	if len(s) < 2 {
		return nil
	}
	base := s[0]
	if len(s) > back {
		base = s[len(s)-1-back]
	}
	return growthPct(s[len(s)-1].Value, base.Value)
}

func growthPct(v, base float64) *float64 {
	if base == 0 || math.IsNaN(v) || math.IsNaN(base) {
		return nil
	}
	g := (v - base) / base * 100
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return nil
	}
	return &g
}
