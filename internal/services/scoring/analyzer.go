package scoring

import (
	"math"

	"MacroPulse/internal/domain/models"
	applogger "MacroPulse/pkg/logger"

	"gonum.org/v1/gonum/stat"
)

// neutralScore is the documented fallback composite when no category is
// scoreable at all.
const neutralScore = 50.0

// Analyzer normalizes indicator values and aggregates them into category and
// composite scores. It is a pure function of its injected Config: no I/O, no
// hidden state, safe for concurrent use.
type Analyzer struct {
	cfg Config
	log *applogger.Logger
}

// NewAnalyzer builds an analyzer over the given policy. A nil logger falls
// back to a no-op logger.
func NewAnalyzer(cfg Config, log *applogger.Logger) *Analyzer {
	if log == nil {
		log = applogger.Nop()
	}
	return &Analyzer{cfg: cfg, log: log}
}

// ScoreIndicator maps one raw reading onto [0,100]. Nil values are absent;
// NaN/Inf readings and unknown identifiers are malformed. Neither ever
// surfaces as an error to the caller.
func (a *Analyzer) ScoreIndicator(id string, value *float64) models.IndicatorScore {
	if value == nil {
		return models.IndicatorScore{Status: models.ScoreAbsent}
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return models.IndicatorScore{Status: models.ScoreMalformed, Reason: "value is not finite"}
	}
	th, ok := a.cfg.Thresholds[id]
	if !ok {
		a.log.Warn("unknown indicator", applogger.String("indicator", id))
		return models.IndicatorScore{Status: models.ScoreMalformed, Reason: "unknown indicator"}
	}
	return models.IndicatorScore{
		Status: models.ScoreOK,
		Value:  th.Points.Eval(th.Scale.Apply(v)),
	}
}

// GetOverallScore computes category averages and the weighted composite for
// one set of indicator snapshots. Missing indicators are skipped at every
// level; weights of absent categories are renormalized over the present ones.
func (a *Analyzer) GetOverallScore(data map[string]*models.Snapshot) models.ScoreResult {
	result := models.ScoreResult{
		OverallScore:    neutralScore,
		IndicatorScores: make(map[string]models.ScoredValue),
	}

	catScores := make(map[string]float64, len(CategoryOrder))
	for _, cat := range CategoryOrder {
		scores := make([]float64, 0, len(a.cfg.Categories[cat]))
		for _, id := range a.cfg.Categories[cat] {
			snap, ok := data[id]
			if !ok || snap == nil {
				continue
			}
			value := a.valueFor(id, snap)
			if value == nil {
				continue
			}
			sc := a.ScoreIndicator(id, value)
			if !sc.OK() {
				continue
			}
			scores = append(scores, sc.Value)
			result.IndicatorScores[id] = models.ScoredValue{Value: *value, Score: sc.Value}
		}
		if len(scores) > 0 {
			mean := stat.Mean(scores, nil)
			catScores[cat] = mean
			setCategory(&result, cat, mean)
		}
	}

	weighted := 0.0
	totalWeight := 0.0
	for cat, weight := range a.cfg.Weights {
		if score, ok := catScores[cat]; ok {
			weighted += score * weight
			totalWeight += weight
		}
	}
	if totalWeight > 0 {
		result.OverallScore = weighted / totalWeight
	}
	return result
}

// valueFor picks the value to score: YoY-preferred indicators use the
// trailing-12-month growth rate, falling back to the raw latest value.
func (a *Analyzer) valueFor(id string, snap *models.Snapshot) *float64 {
	if a.cfg.PrefersYoY(id) && snap.YoY != nil {
		return snap.YoY
	}
	return snap.LatestValue
}

func setCategory(r *models.ScoreResult, cat string, score float64) {
	v := score
	switch cat {
	case CategoryEconomy:
		r.EconomyScore = &v
	case CategoryRates:
		r.RatesScore = &v
	case CategoryInflation:
		r.InflationScore = &v
	case CategoryVolatility:
		r.VolatilityScore = &v
	case CategoryLiquidity:
		r.LiquidityScore = &v
	}
}
