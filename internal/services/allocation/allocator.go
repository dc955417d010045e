package allocation

import (
	"math"

	"MacroPulse/internal/domain/models"
)

// Range is the (min%, max%) corridor of one asset class inside a band.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Band maps one composite score range onto per-asset corridors.
type Band struct {
	Floor      float64 `yaml:"floor"`
	Stocks     Range   `yaml:"stocks"`
	Bonds      Range   `yaml:"bonds"`
	Cash       Range   `yaml:"cash"`
	RealEstate Range   `yaml:"real_estate"`

	Recommendation string `yaml:"recommendation"`
	RiskLevel      string `yaml:"risk_level"`
}

// bandWidth is the score span of every band.
const bandWidth = 20.0

// Allocator maps composite scores to 4-way allocations. Bands are injected so
// alternate policies can be tested without touching the interpolation logic.
type Allocator struct {
	bands []Band
}

// DefaultBands returns the five standard bands covering [0,100], ordered from
// the highest floor down.
func DefaultBands() []Band {
	return []Band{
		{
			Floor:          80,
			Stocks:         Range{70, 80},
			Bonds:          Range{15, 20},
			Cash:           Range{5, 10},
			RealEstate:     Range{5, 10},
			Recommendation: "Very positive market environment. A heavy allocation to stocks is recommended.",
			RiskLevel:      "low",
		},
		{
			Floor:          60,
			Stocks:         Range{50, 60},
			Bonds:          Range{25, 30},
			Cash:           Range{10, 15},
			RealEstate:     Range{5, 10},
			Recommendation: "Positive market environment. A balanced, stock-centric portfolio is recommended.",
			RiskLevel:      "medium-low",
		},
		{
			Floor:          40,
			Stocks:         Range{30, 40},
			Bonds:          Range{40, 50},
			Cash:           Range{15, 20},
			RealEstate:     Range{5, 10},
			Recommendation: "Neutral market environment. A conservative allocation is recommended.",
			RiskLevel:      "medium",
		},
		{
			Floor:          20,
			Stocks:         Range{15, 25},
			Bonds:          Range{50, 60},
			Cash:           Range{20, 25},
			RealEstate:     Range{5, 10},
			Recommendation: "Negative market environment. Raising bond and cash weights is recommended.",
			RiskLevel:      "medium-high",
		},
		{
			Floor:          0,
			Stocks:         Range{5, 15},
			Bonds:          Range{35, 45},
			Cash:           Range{40, 50},
			RealEstate:     Range{5, 10},
			Recommendation: "Very negative market environment. A defensive allocation with a much larger cash weight is recommended.",
			RiskLevel:      "high",
		},
	}
}

// New builds an allocator. Empty bands fall back to the defaults.
func New(bands []Band) *Allocator {
	if len(bands) == 0 {
		bands = DefaultBands()
	}
	return &Allocator{bands: bands}
}

// CalculateAllocation maps a composite score onto a 4-way allocation whose
// percentages are rounded to 2 decimals and sum to exactly 100.00.
func (a *Allocator) CalculateAllocation(score float64) models.Allocation {
	band := a.bandFor(score)
	pos := (score - band.Floor) / bandWidth
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}

	alloc := models.Allocation{
		Stocks:     round2(interp(band.Stocks, pos)),
		Bonds:      round2(interp(band.Bonds, pos)),
		Cash:       round2(interp(band.Cash, pos)),
		RealEstate: round2(interp(band.RealEstate, pos)),
	}
	return normalize(alloc)
}

// Recommend wraps CalculateAllocation with the band's qualitative guidance.
func (a *Allocator) Recommend(score float64) models.Recommendation {
	band := a.bandFor(score)
	return models.Recommendation{
		Allocation:     a.CalculateAllocation(score),
		Recommendation: band.Recommendation,
		RiskLevel:      band.RiskLevel,
		Score:          score,
	}
}

func (a *Allocator) bandFor(score float64) Band {
	for _, b := range a.bands {
		if score >= b.Floor {
			return b
		}
	}
	return a.bands[len(a.bands)-1]
}

func interp(r Range, pos float64) float64 {
	return r.Min + (r.Max-r.Min)*pos
}

// normalize rescales the buckets proportionally to sum to 100, then parks any
// residual rounding remainder on the currently largest bucket. An all-zero
// allocation is returned untouched to avoid dividing by zero.
func normalize(alloc models.Allocation) models.Allocation {
	total := alloc.Total()
	if total == 0 {
		return alloc
	}
	if math.Abs(total-100.0) > 1e-9 {
		alloc.Stocks = round2(alloc.Stocks * 100 / total)
		alloc.Bonds = round2(alloc.Bonds * 100 / total)
		alloc.Cash = round2(alloc.Cash * 100 / total)
		alloc.RealEstate = round2(alloc.RealEstate * 100 / total)
	}
	if diff := round2(100.0 - alloc.Total()); diff != 0 {
		switch largestBucket(alloc) {
		case "stocks":
			alloc.Stocks = round2(alloc.Stocks + diff)
		case "bonds":
			alloc.Bonds = round2(alloc.Bonds + diff)
		case "cash":
			alloc.Cash = round2(alloc.Cash + diff)
		case "real_estate":
			alloc.RealEstate = round2(alloc.RealEstate + diff)
		}
	}
	return alloc
}

func largestBucket(a models.Allocation) string {
	name, max := "stocks", a.Stocks
	if a.Bonds > max {
		name, max = "bonds", a.Bonds
	}
	if a.Cash > max {
		name, max = "cash", a.Cash
	}
	if a.RealEstate > max {
		name = "real_estate"
	}
	return name
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
