package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/scoring"
)

type fakeSeriesSource struct {
	mu     sync.Mutex
	series map[string]models.Series
	calls  []string
}

func (f *fakeSeriesSource) FetchSeries(_ context.Context, id string, _, _ time.Time) (models.Series, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()
	s, ok := f.series[id]
	if !ok {
		return nil, errors.New("no such series")
	}
	return s, nil
}

type fakeMarketSource struct {
	mu      sync.Mutex
	series  models.Series
	symbols []string
	err     error
}

func (f *fakeMarketSource) FetchDaily(_ context.Context, symbol string, _ int) (models.Series, error) {
	f.mu.Lock()
	f.symbols = append(f.symbols, symbol)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

type fakeSnapshotCache struct {
	mu            sync.Mutex
	snaps         map[string]*models.Snapshot
	hits          int
	sets          int
	invalidations int
}

func (f *fakeSnapshotCache) GetSnapshots(context.Context) (map[string]*models.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snaps == nil {
		return nil, false
	}
	f.hits++
	return f.snaps, true
}

func (f *fakeSnapshotCache) SetSnapshots(_ context.Context, snaps map[string]*models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snaps = snaps
	f.sets++
	return nil
}

func (f *fakeSnapshotCache) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snaps = nil
	f.invalidations++
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordCompositeScore(float64)       {}
func (nopMetrics) RecordCategoryScore(string, float64) {}
func (nopMetrics) RecordFetch(string, string)          {}
func (nopMetrics) RecordError(string)                  {}
func (nopMetrics) RecordCacheRequest(string)           {}
func (nopMetrics) RecordLatency(string, float64)       {}

func monthly(start time.Time, values ...float64) models.Series {
	s := make(models.Series, 0, len(values))
	for i, v := range values {
		s = append(s, models.Observation{Date: start.AddDate(0, i, 0), Value: v})
	}
	return s
}

func testCatalog() []Indicator {
	return []Indicator{
		{ID: "UNRATE", Description: "Unemployment Rate", Source: "fred"},
		{ID: "DFF", Description: "Federal Funds Effective Rate", Source: "fred"},
		{ID: "VIX", Description: "CBOE Volatility Index", Source: "market", Symbol: "^VIX"},
	}
}

func TestCollectBuildsSnapshots(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	fred := &fakeSeriesSource{series: map[string]models.Series{
		"UNRATE": monthly(start, 3.4, 3.5, 3.6, 3.7),
		"DFF":    monthly(start, 4.5, 4.75, 5.0, 5.25),
	}}
	market := &fakeMarketSource{series: monthly(start, 18.0, 20.0, 21.0)}

	c := NewIndicatorCollector(fred, market, nil, nil, nopMetrics{}, testCatalog(), scoring.DefaultConfig(), 5, nil)
	snaps, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("len(snaps) = %d, want 3", len(snaps))
	}

	un := snaps["UNRATE"]
	if un == nil {
		t.Fatal("missing UNRATE snapshot")
	}
	if un.LatestValue == nil || *un.LatestValue != 3.7 {
		t.Errorf("UNRATE latest = %v, want 3.7", un.LatestValue)
	}
	if un.PrevValue == nil || *un.PrevValue != 3.6 {
		t.Errorf("UNRATE prev = %v, want 3.6", un.PrevValue)
	}
	if un.DataPoints != 4 {
		t.Errorf("UNRATE data points = %d, want 4", un.DataPoints)
	}
	if un.LatestDate != "2023-04-01" {
		t.Errorf("UNRATE latest date = %q", un.LatestDate)
	}

	market.mu.Lock()
	defer market.mu.Unlock()
	if len(market.symbols) != 1 || market.symbols[0] != "^VIX" {
		t.Errorf("market fetched %v, want [^VIX]", market.symbols)
	}
}

func TestCollectToleratesPartialFailure(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	fred := &fakeSeriesSource{series: map[string]models.Series{
		"UNRATE": monthly(start, 3.4, 3.5),
		// DFF missing on purpose
	}}
	market := &fakeMarketSource{err: errors.New("upstream down")}

	c := NewIndicatorCollector(fred, market, nil, nil, nopMetrics{}, testCatalog(), scoring.DefaultConfig(), 5, nil)
	snaps, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect should tolerate partial failure: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("len(snaps) = %d, want 1", len(snaps))
	}
	if _, ok := snaps["UNRATE"]; !ok {
		t.Error("expected UNRATE snapshot to survive")
	}
}

func TestCollectFailsWhenNothingFetched(t *testing.T) {
	fred := &fakeSeriesSource{series: map[string]models.Series{}}
	market := &fakeMarketSource{err: errors.New("upstream down")}

	c := NewIndicatorCollector(fred, market, nil, nil, nopMetrics{}, testCatalog(), scoring.DefaultConfig(), 5, nil)
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("expected error when no indicator could be fetched")
	}
}

func TestSnapshotsUsesCache(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	fred := &fakeSeriesSource{series: map[string]models.Series{
		"UNRATE": monthly(start, 3.4, 3.5),
		"DFF":    monthly(start, 4.5, 4.75),
	}}
	market := &fakeMarketSource{series: monthly(start, 18.0, 20.0)}
	cache := &fakeSnapshotCache{}

	c := NewIndicatorCollector(fred, market, cache, nil, nopMetrics{}, testCatalog(), scoring.DefaultConfig(), 5, nil)

	if _, err := c.Snapshots(context.Background(), true); err != nil {
		t.Fatalf("first Snapshots: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}
	firstCalls := len(fred.calls)

	if _, err := c.Snapshots(context.Background(), true); err != nil {
		t.Fatalf("second Snapshots: %v", err)
	}
	if len(fred.calls) != firstCalls {
		t.Error("second cached call should not refetch")
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}

	// useCache=false forces a refetch and repopulates the cache.
	if _, err := c.Snapshots(context.Background(), false); err != nil {
		t.Fatalf("uncached Snapshots: %v", err)
	}
	if len(fred.calls) == firstCalls {
		t.Error("uncached call should refetch")
	}
	if cache.sets != 2 {
		t.Errorf("cache sets = %d, want 2", cache.sets)
	}
}

func TestRefreshInvalidatesCacheFirst(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	stale := map[string]*models.Snapshot{
		"UNRATE": {ID: "UNRATE", Series: monthly(start, 9.9)},
	}
	cache := &fakeSnapshotCache{snaps: stale}
	fred := &fakeSeriesSource{series: map[string]models.Series{
		"UNRATE": monthly(start, 3.4, 3.5),
		"DFF":    monthly(start, 4.5, 4.75),
	}}
	market := &fakeMarketSource{series: monthly(start, 18.0, 20.0)}

	c := NewIndicatorCollector(fred, market, cache, nil, nopMetrics{}, testCatalog(), scoring.DefaultConfig(), 5, nil)
	snaps, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if cache.invalidations != 1 {
		t.Errorf("invalidations = %d, want 1", cache.invalidations)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
	un := snaps["UNRATE"]
	if un == nil || un.LatestValue == nil || *un.LatestValue != 3.5 {
		t.Errorf("refresh kept stale snapshot: %+v", un)
	}

	// A failed refresh must leave no stale set behind.
	broken := NewIndicatorCollector(
		&fakeSeriesSource{series: map[string]models.Series{}},
		&fakeMarketSource{err: errors.New("upstream down")},
		cache, nil, nopMetrics{}, testCatalog(), scoring.DefaultConfig(), 5, nil)
	if _, err := broken.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error when nothing fetched")
	}
	if _, ok := cache.GetSnapshots(context.Background()); ok {
		t.Error("stale snapshots survived a failed refresh")
	}
}

func TestSeriesMapDropsEmptySeries(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := &fakeSnapshotCache{snaps: map[string]*models.Snapshot{
		"UNRATE": {ID: "UNRATE", Series: monthly(start, 3.4, 3.5)},
		"DFF":    {ID: "DFF"},
	}}

	c := NewIndicatorCollector(nil, nil, cache, nil, nopMetrics{}, testCatalog(), scoring.DefaultConfig(), 5, nil)
	series, err := c.SeriesMap(context.Background(), true)
	if err != nil {
		t.Fatalf("SeriesMap: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("len(series) = %d, want 1", len(series))
	}
	if _, ok := series["UNRATE"]; !ok {
		t.Error("expected UNRATE series")
	}
}

func TestDefaultCatalogCoversScoringPolicy(t *testing.T) {
	cfg := scoring.DefaultConfig()
	catalog := DefaultCatalog("^VIX")

	ids := make(map[string]bool, len(catalog))
	for _, ind := range catalog {
		ids[ind.ID] = true
	}
	for _, cat := range scoring.CategoryOrder {
		for _, id := range cfg.Categories[cat] {
			if !ids[id] {
				t.Errorf("indicator %s scored but not collected", id)
			}
		}
	}

	for _, ind := range catalog {
		if ind.Source == "market" && ind.Symbol == "" {
			t.Errorf("market indicator %s needs a symbol", ind.ID)
		}
	}
}
