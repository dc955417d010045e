package repository

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
)

// SeriesSource fetches raw indicator observation series from an economic data
// provider.
type SeriesSource interface {
	FetchSeries(ctx context.Context, id string, start, end time.Time) (models.Series, error)
}

// MarketDataSource fetches daily closing series for market symbols.
type MarketDataSource interface {
	FetchDaily(ctx context.Context, symbol string, lookbackDays int) (models.Series, error)
}

// SeriesStore persists raw observations and reconstructed composite history.
type SeriesStore interface {
	Init(ctx context.Context) error
	StoreObservations(ctx context.Context, id string, s models.Series) error
	StoreHistory(ctx context.Context, points []models.HistoricalPoint) error
	Health(ctx context.Context) error
	Close() error
}

// OutlookPublisher emits evaluated outlooks to downstream consumers.
type OutlookPublisher interface {
	PublishOutlook(ctx context.Context, o *models.Outlook) error
	Close() error
}

// SnapshotCache caches the full set of collected indicator snapshots.
type SnapshotCache interface {
	GetSnapshots(ctx context.Context) (map[string]*models.Snapshot, bool)
	SetSnapshots(ctx context.Context, snaps map[string]*models.Snapshot) error
	Invalidate(ctx context.Context) error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordCompositeScore(score float64)
	RecordCategoryScore(category string, score float64)
	RecordFetch(source, result string)
	RecordError(kind string)
	RecordCacheRequest(result string)
	RecordLatency(op string, seconds float64)
}
