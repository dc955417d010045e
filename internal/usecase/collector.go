package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/services/scoring"
	"MacroPulse/internal/services/timeseries"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/util"
)

// Indicator describes one collected series: where it comes from and how it is
// labeled in API responses.
type Indicator struct {
	ID          string
	Description string
	Source      string // "fred" or "market"
	Symbol      string // market symbol when Source is "market"
}

// DefaultCatalog lists every indicator the scoring policy knows about.
func DefaultCatalog(volatilitySymbol string) []Indicator {
	return []Indicator{
		{ID: "UNRATE", Description: "Unemployment Rate", Source: "fred"},
		{ID: "UMCSENT", Description: "Consumer Sentiment Index", Source: "fred"},
		{ID: "INDPRO", Description: "Industrial Production Index", Source: "fred"},
		{ID: "TCU", Description: "Capacity Utilization", Source: "fred"},
		{ID: "T10Y2Y", Description: "10-Year minus 2-Year Treasury Spread", Source: "fred"},
		{ID: "DFF", Description: "Federal Funds Effective Rate", Source: "fred"},
		{ID: "DFII10", Description: "10-Year TIPS Real Yield", Source: "fred"},
		{ID: "PCEPILFE", Description: "Core PCE Price Index", Source: "fred"},
		{ID: "CPIAUCSL", Description: "Consumer Price Index", Source: "fred"},
		{ID: "PPIACO", Description: "Producer Price Index", Source: "fred"},
		{ID: "T5YIE", Description: "5-Year Breakeven Inflation Rate", Source: "fred"},
		{ID: "VIX", Description: "CBOE Volatility Index", Source: "market", Symbol: volatilitySymbol},
		{ID: "BAMLH0A0HYM2", Description: "High Yield Option-Adjusted Spread", Source: "fred"},
		{ID: "WALCL", Description: "Fed Balance Sheet Total Assets", Source: "fred"},
		{ID: "RRPONTSYD", Description: "Overnight Reverse Repo Balance", Source: "fred"},
		{ID: "M2SL", Description: "M2 Money Supply", Source: "fred"},
	}
}

// IndicatorCollector fetches all indicator series and derives per-indicator
// snapshots. One upstream failure never fails the whole collection; a
// snapshot is simply missing and scoring degrades around it.
type IndicatorCollector struct {
	fred    drepo.SeriesSource
	market  drepo.MarketDataSource
	cache   drepo.SnapshotCache
	store   drepo.SeriesStore
	metrics drepo.Metrics
	log     *applogger.Logger

	catalog []Indicator
	cfg     scoring.Config
	years   int
}

// NewIndicatorCollector builds the collector. cache and store may be nil.
func NewIndicatorCollector(
	fred drepo.SeriesSource,
	market drepo.MarketDataSource,
	cache drepo.SnapshotCache,
	store drepo.SeriesStore,
	metrics drepo.Metrics,
	catalog []Indicator,
	cfg scoring.Config,
	years int,
	log *applogger.Logger,
) *IndicatorCollector {
	if log == nil {
		log = applogger.Nop()
	}
	if years <= 0 {
		years = 5
	}
	return &IndicatorCollector{
		fred:    fred,
		market:  market,
		cache:   cache,
		store:   store,
		metrics: metrics,
		log:     log,
		catalog: catalog,
		cfg:     cfg,
		years:   years,
	}
}

// Snapshots returns the current snapshot set, reusing the cached set when
// useCache is set and the cache holds one.
func (c *IndicatorCollector) Snapshots(ctx context.Context, useCache bool) (map[string]*models.Snapshot, error) {
	if useCache && c.cache != nil {
		if snaps, ok := c.cache.GetSnapshots(ctx); ok {
			c.metrics.RecordCacheRequest("hit")
			return snaps, nil
		}
		c.metrics.RecordCacheRequest("miss")
	}
	return c.Collect(ctx)
}

// SeriesMap extracts the raw series per indicator from the snapshot set.
func (c *IndicatorCollector) SeriesMap(ctx context.Context, useCache bool) (map[string]models.Series, error) {
	snaps, err := c.Snapshots(ctx, useCache)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Series, len(snaps))
	for id, snap := range snaps {
		if len(snap.Series) > 0 {
			out[id] = snap.Series
		}
	}
	return out, nil
}

// Refresh drops the cached snapshot set before collecting fresh data, so a
// collection failure cannot leave a stale set behind.
func (c *IndicatorCollector) Refresh(ctx context.Context) (map[string]*models.Snapshot, error) {
	if c.cache != nil {
		if err := c.cache.Invalidate(ctx); err != nil {
			c.log.Warn("snapshot cache invalidate failed", applogger.Error(err))
		}
	}
	return c.Collect(ctx)
}

// Collect fetches every catalog indicator concurrently and rebuilds the
// snapshot set. It fails only when no indicator could be fetched at all.
func (c *IndicatorCollector) Collect(ctx context.Context) (map[string]*models.Snapshot, error) {
	start := time.Now()
	end := util.Day(time.Now())
	from := end.AddDate(-c.years, 0, 0)

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		snaps = make(map[string]*models.Snapshot, len(c.catalog))
	)
	for _, ind := range c.catalog {
		wg.Add(1)
		go func(ind Indicator) {
			defer wg.Done()
			series, err := c.fetch(ctx, ind, from, end)
			if err != nil {
				c.metrics.RecordFetch(ind.Source, "error")
				c.metrics.RecordError("fetch")
				c.log.Warn("indicator fetch failed",
					applogger.String("indicator", ind.ID),
					applogger.Error(err))
				return
			}
			c.metrics.RecordFetch(ind.Source, "ok")

			snap := buildSnapshot(ind, series)
			mu.Lock()
			snaps[ind.ID] = snap
			mu.Unlock()

			if c.store != nil {
				if err := c.store.StoreObservations(ctx, ind.ID, series); err != nil {
					c.metrics.RecordError("store")
					c.log.Warn("observation persist failed",
						applogger.String("indicator", ind.ID),
						applogger.Error(err))
				}
			}
		}(ind)
	}
	wg.Wait()

	if len(snaps) == 0 {
		return nil, fmt.Errorf("collect: no indicator could be fetched")
	}

	if c.cache != nil {
		if err := c.cache.SetSnapshots(ctx, snaps); err != nil {
			c.log.Warn("snapshot cache write failed", applogger.Error(err))
		}
	}

	c.metrics.RecordLatency("collect", time.Since(start).Seconds())
	c.log.Info("indicator collection complete",
		applogger.Int("fetched", len(snaps)),
		applogger.Int("catalog", len(c.catalog)),
		applogger.Duration("duration_ms", time.Since(start)))
	return snaps, nil
}

func (c *IndicatorCollector) fetch(ctx context.Context, ind Indicator, from, to time.Time) (models.Series, error) {
	if ind.Source == "market" {
		return c.market.FetchDaily(ctx, ind.Symbol, c.years*366)
	}
	return c.fred.FetchSeries(ctx, ind.ID, from, to)
}

// buildSnapshot derives the latest reading and the trailing growth transforms
// from one raw series.
func buildSnapshot(ind Indicator, series models.Series) *models.Snapshot {
	snap := &models.Snapshot{
		ID:          ind.ID,
		Description: ind.Description,
		Series:      series,
		DataPoints:  len(series),
	}

	last, ok := series.Last()
	if !ok {
		return snap
	}
	snap.LatestValue = models.Float(last.Value)
	snap.LatestDate = util.FormatDay(last.Date)

	if len(series) >= 2 {
		prev := series[len(series)-2]
		snap.PrevValue = models.Float(prev.Value)
		snap.ChangePct = timeseries.GrowthBetween(last.Value, prev.Value)
	}

	snap.YoY = timeseries.YoY(series)
	snap.QoQ = timeseries.QoQ(series)
	snap.MoM = timeseries.MoM(series)
	return snap
}
