package scoring

import (
	"fmt"
	"math"
)

// Category names. Each carries a fixed aggregation weight.
const (
	CategoryEconomy    = "economy"
	CategoryRates      = "rates"
	CategoryInflation  = "inflation"
	CategoryVolatility = "volatility"
	CategoryLiquidity  = "liquidity"
)

// ScaleRule rescales raw readings reported in inconvenient units before curve
// evaluation. Reverse-repo balances arrive in millions of dollars; the curve
// is expressed in trillions.
type ScaleRule struct {
	Above   float64 `yaml:"above"`
	Divisor float64 `yaml:"divisor"`
}

// Apply rescales v when it exceeds the rule's threshold.
func (r *ScaleRule) Apply(v float64) float64 {
	if r == nil || r.Divisor == 0 {
		return v
	}
	if v > r.Above {
		return v / r.Divisor
	}
	return v
}

// Threshold is one indicator's normalization policy.
type Threshold struct {
	Points Curve      `yaml:"points"`
	Scale  *ScaleRule `yaml:"scale,omitempty"`
}

// Config holds everything the scoring core needs: category membership,
// category weights, per-indicator threshold curves and the set of indicators
// scored on their trailing-12-month growth rate. It is injected at
// construction time so tests and deployments can swap thresholds without
// touching core logic.
type Config struct {
	Categories   map[string][]string  `yaml:"categories"`
	Weights      map[string]float64   `yaml:"weights"`
	Thresholds   map[string]Threshold `yaml:"thresholds"`
	YoYPreferred []string             `yaml:"yoy_preferred"`
}

// CategoryOrder is the stable iteration order for categories.
var CategoryOrder = []string{
	CategoryEconomy,
	CategoryRates,
	CategoryInflation,
	CategoryVolatility,
	CategoryLiquidity,
}

// DefaultConfig returns the built-in FRED indicator policy.
func DefaultConfig() Config {
	return Config{
		Categories: map[string][]string{
			CategoryEconomy:    {"UNRATE", "UMCSENT", "INDPRO", "TCU"},
			CategoryRates:      {"T10Y2Y", "DFF", "DFII10"},
			CategoryInflation:  {"PCEPILFE", "CPIAUCSL", "PPIACO", "T5YIE"},
			CategoryVolatility: {"VIX", "BAMLH0A0HYM2"},
			CategoryLiquidity:  {"WALCL", "RRPONTSYD", "M2SL"},
		},
		Weights: map[string]float64{
			CategoryEconomy:    0.30,
			CategoryRates:      0.25,
			CategoryInflation:  0.20,
			CategoryVolatility: 0.15,
			CategoryLiquidity:  0.10,
		},
		Thresholds: map[string]Threshold{
			// Unemployment rate: 4% or lower is full health, 6% or higher is zero.
			"UNRATE": {Points: Curve{{4, 100}, {6, 0}}},
			// Consumer sentiment index level.
			"UMCSENT": {Points: Curve{{50, 0}, {100, 100}}},
			// Industrial production YoY: contraction past -3% scores zero.
			"INDPRO": {Points: Curve{{-3, 0}, {-1, 40}, {1, 70}, {3, 100}}},
			// Capacity utilization: 75-80% is the healthy plateau; above 80%
			// the score falls again on overheat/inflation pressure.
			"TCU": {Points: Curve{{60, 20}, {70, 60}, {75, 100}, {80, 100}, {85, 80}}},
			// 10y-2y treasury spread.
			"T10Y2Y": {Points: Curve{{-0.5, 0}, {0.5, 100}}},
			// Fed funds rate, lower is better for risk assets.
			"DFF": {Points: Curve{{2, 100}, {5, 0}}},
			// 10y TIPS real rate.
			"DFII10": {Points: Curve{{0.5, 100}, {2.5, 0}}},
			// Inflation prints, YoY percent.
			"PCEPILFE": {Points: Curve{{2, 100}, {4, 0}}},
			"CPIAUCSL": {Points: Curve{{2, 100}, {4, 0}}},
			"PPIACO":   {Points: Curve{{2, 100}, {4, 0}}},
			"T5YIE":    {Points: Curve{{2, 100}, {3.5, 0}}},
			// Volatility.
			"VIX":          {Points: Curve{{12, 100}, {30, 0}}},
			"BAMLH0A0HYM2": {Points: Curve{{3, 100}, {8, 0}}},
			// Fed balance sheet YoY: expansion supplies liquidity.
			"WALCL": {Points: Curve{{-10, 0}, {0, 70}, {5, 100}}},
			// Reverse repo balance in trillions; FRED reports millions.
			"RRPONTSYD": {
				Points: Curve{{0.5, 100}, {1, 80}, {2, 60}, {3, 40}},
				Scale:  &ScaleRule{Above: 1000, Divisor: 1e6},
			},
			// M2 money supply YoY growth.
			"M2SL": {Points: Curve{{-2, 0}, {10, 100}}},
		},
		YoYPreferred: []string{"CPIAUCSL", "PPIACO", "M2SL", "PCEPILFE", "INDPRO", "WALCL"},
	}
}

// Validate checks internal consistency of an injected policy.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("categories are required")
	}
	sum := 0.0
	for cat := range c.Categories {
		w, ok := c.Weights[cat]
		if !ok {
			return fmt.Errorf("category %q has no weight", cat)
		}
		sum += w
		for _, id := range c.Categories[cat] {
			th, ok := c.Thresholds[id]
			if !ok {
				return fmt.Errorf("indicator %q has no threshold curve", id)
			}
			if len(th.Points) < 2 {
				return fmt.Errorf("indicator %q needs at least 2 breakpoints", id)
			}
			if !th.Points.Ascending() {
				return fmt.Errorf("indicator %q breakpoints must ascend", id)
			}
		}
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("category weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// PrefersYoY reports whether the indicator is scored on its trailing-12-month
// growth rate when available.
func (c Config) PrefersYoY(id string) bool {
	for _, p := range c.YoYPreferred {
		if p == id {
			return true
		}
	}
	return false
}
