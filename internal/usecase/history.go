package usecase

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	domservice "MacroPulse/internal/domain/service"
	"MacroPulse/internal/services/history"
	applogger "MacroPulse/pkg/logger"
)

// HistoryUsecase reconstructs composite score history and derives benchmark
// signals and correlation from it.
type HistoryUsecase struct {
	collector *IndicatorCollector
	historian domservice.Historian
	signaler  domservice.Signaler
	market    drepo.MarketDataSource
	store     drepo.SeriesStore
	metrics   drepo.Metrics
	benchmark string
	log       *applogger.Logger
}

// NewHistoryUsecase builds the history usecase. store may be nil.
func NewHistoryUsecase(
	collector *IndicatorCollector,
	historian domservice.Historian,
	signaler domservice.Signaler,
	market drepo.MarketDataSource,
	store drepo.SeriesStore,
	metrics drepo.Metrics,
	benchmark string,
	log *applogger.Logger,
) *HistoryUsecase {
	if log == nil {
		log = applogger.Nop()
	}
	return &HistoryUsecase{
		collector: collector,
		historian: historian,
		signaler:  signaler,
		market:    market,
		store:     store,
		metrics:   metrics,
		benchmark: benchmark,
		log:       log,
	}
}

// History reconstructs the composite score at sampled dates over the lookback
// window.
func (u *HistoryUsecase) History(ctx context.Context, days int, useCache bool) ([]models.HistoricalPoint, error) {
	start := time.Now()
	series, err := u.collector.SeriesMap(ctx, useCache)
	if err != nil {
		return nil, err
	}

	points := u.historian.HistoricalScores(series, days)
	if u.store != nil && len(points) > 0 {
		if err := u.store.StoreHistory(ctx, points); err != nil {
			u.metrics.RecordError("store")
			u.log.Warn("history persist failed", applogger.Error(err))
		}
	}

	u.metrics.RecordLatency("history", time.Since(start).Seconds())
	u.log.Info("history reconstructed",
		applogger.Int("points", len(points)),
		applogger.Int("days", days))
	return points, nil
}

// Signals matches reconstructed history against the benchmark and labels the
// change in implied stock exposure point over point.
func (u *HistoryUsecase) Signals(ctx context.Context, days int, useCache bool) ([]models.SignalPoint, error) {
	points, err := u.History(ctx, days, useCache)
	if err != nil {
		return nil, err
	}

	benchmark, err := u.fetchBenchmark(ctx, days)
	if err != nil {
		return nil, err
	}
	return u.signaler.Signals(points, benchmark), nil
}

// Correlation computes the Pearson correlation between reconstructed scores
// and benchmark closes. The second return is false when the coefficient is
// undefined for the matched sample.
func (u *HistoryUsecase) Correlation(ctx context.Context, days int, useCache bool) (models.Correlation, bool, error) {
	points, err := u.History(ctx, days, useCache)
	if err != nil {
		return models.Correlation{}, false, err
	}

	benchmark, err := u.fetchBenchmark(ctx, days)
	if err != nil {
		return models.Correlation{}, false, err
	}

	corr, ok := history.Correlate(points, benchmark)
	return corr, ok, nil
}

func (u *HistoryUsecase) fetchBenchmark(ctx context.Context, days int) (models.Series, error) {
	series, err := u.market.FetchDaily(ctx, u.benchmark, days)
	if err != nil {
		u.metrics.RecordFetch("market", "error")
		u.metrics.RecordError("fetch")
		return nil, err
	}
	u.metrics.RecordFetch("market", "ok")
	return series, nil
}
