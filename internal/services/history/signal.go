package history

import (
	"time"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/allocation"
	applogger "MacroPulse/pkg/logger"
)

// benchmarkGraceDays bounds the forward search for a benchmark close when no
// close exists on or before a historical date (young benchmark series).
const benchmarkGraceDays = 30

// SignalBuilder pairs reconstructed composite scores with benchmark closes and
// derives directional stock-exposure signals from the allocation each score
// implies.
type SignalBuilder struct {
	allocator *allocation.Allocator
	log       *applogger.Logger
}

// NewSignalBuilder builds a signal builder over the given allocation policy.
func NewSignalBuilder(allocator *allocation.Allocator, log *applogger.Logger) *SignalBuilder {
	if log == nil {
		log = applogger.Nop()
	}
	return &SignalBuilder{allocator: allocator, log: log}
}

// Signals matches each historical point with a benchmark close and labels the
// change in implied stock allocation vs the previous matched point. A move of
// more than 2 percentage points is a full expand/reduce, any smaller non-zero
// move is a slight one. Fewer than 2 matched points yields no signals.
func (b *SignalBuilder) Signals(points []models.HistoricalPoint, benchmark models.Series) []models.SignalPoint {
	matched := b.matchBenchmark(points, benchmark)
	if len(matched) < 2 {
		b.log.Warn("not enough benchmark-matched points for signals",
			applogger.Int("matched", len(matched)),
			applogger.Int("points", len(points)))
		return nil
	}

	for i := 1; i < len(matched); i++ {
		delta := matched[i].StockPct - matched[i-1].StockPct
		switch {
		case delta > 2:
			matched[i].Signal = models.SignalExpand
			matched[i].Strength = 1
		case delta < -2:
			matched[i].Signal = models.SignalReduce
			matched[i].Strength = -1
		case delta > 0:
			matched[i].Signal = models.SignalSlightlyExpand
			matched[i].Strength = 0.5
		case delta < 0:
			matched[i].Signal = models.SignalSlightlyReduce
			matched[i].Strength = -0.5
		default:
			matched[i].Signal = models.SignalNeutral
		}
	}
	matched[0].Signal = models.SignalNeutral
	return matched
}

// matchBenchmark resolves a benchmark close per historical point: the latest
// close at or before the date, else the earliest close within the grace window
// after it. Points with no match in either direction are skipped.
func (b *SignalBuilder) matchBenchmark(points []models.HistoricalPoint, benchmark models.Series) []models.SignalPoint {
	out := make([]models.SignalPoint, 0, len(points))
	for _, p := range points {
		close, ok := benchmarkAt(benchmark, p.Date)
		if !ok {
			continue
		}
		out = append(out, models.SignalPoint{
			Date:      p.Date,
			Score:     p.Score,
			StockPct:  b.allocator.CalculateAllocation(p.Score).Stocks,
			Benchmark: close,
		})
	}
	return out
}

func benchmarkAt(benchmark models.Series, d time.Time) (float64, bool) {
	if obs, ok := benchmark.AsOf(d); ok {
		return obs.Value, true
	}
	limit := d.AddDate(0, 0, benchmarkGraceDays)
	for _, obs := range benchmark {
		if obs.Date.Before(d) {
			continue
		}
		if obs.Date.After(limit) {
			break
		}
		return obs.Value, true
	}
	return 0, false
}
