package scoring

import "math"

// CurvePoint is one (input value, score) breakpoint of a threshold curve.
type CurvePoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Curve is an ordered list of breakpoints, ascending in X. Scores between
// adjacent breakpoints are linearly interpolated; beyond either end the edge
// score is held constant. One evaluator serves every indicator, including the
// non-monotonic capacity-utilization shape.
type Curve []CurvePoint

// Eval maps a raw value onto the 0-100 score range.
func (c Curve) Eval(v float64) float64 {
	if len(c) == 0 {
		return 0
	}
	if v <= c[0].X {
		return clampScore(c[0].Y)
	}
	last := c[len(c)-1]
	if v >= last.X {
		return clampScore(last.Y)
	}
	for i := 1; i < len(c); i++ {
		if v <= c[i].X {
			a, b := c[i-1], c[i]
			if b.X == a.X {
				return clampScore(b.Y)
			}
			t := (v - a.X) / (b.X - a.X)
			return clampScore(a.Y + (b.Y-a.Y)*t)
		}
	}
	return clampScore(last.Y)
}

// Ascending reports whether breakpoints are strictly ascending in X.
func (c Curve) Ascending() bool {
	for i := 1; i < len(c); i++ {
		if c[i].X <= c[i-1].X {
			return false
		}
	}
	return true
}

func clampScore(s float64) float64 {
	return math.Max(0, math.Min(100, s))
}
