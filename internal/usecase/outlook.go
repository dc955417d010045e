package usecase

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	domservice "MacroPulse/internal/domain/service"
	"MacroPulse/internal/services/scoring"
	applogger "MacroPulse/pkg/logger"
)

// OutlookUsecase evaluates the current market outlook: composite score plus
// the allocation it implies.
type OutlookUsecase struct {
	collector *IndicatorCollector
	scorer    domservice.Scorer
	allocator domservice.Allocator
	publisher drepo.OutlookPublisher
	metrics   drepo.Metrics
	log       *applogger.Logger
}

// NewOutlookUsecase builds the outlook usecase. publisher may be nil.
func NewOutlookUsecase(
	collector *IndicatorCollector,
	scorer domservice.Scorer,
	allocator domservice.Allocator,
	publisher drepo.OutlookPublisher,
	metrics drepo.Metrics,
	log *applogger.Logger,
) *OutlookUsecase {
	if log == nil {
		log = applogger.Nop()
	}
	return &OutlookUsecase{
		collector: collector,
		scorer:    scorer,
		allocator: allocator,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// Evaluate computes the full outlook and publishes it downstream.
func (u *OutlookUsecase) Evaluate(ctx context.Context, useCache bool) (*models.Outlook, error) {
	start := time.Now()
	scores, err := u.Score(ctx, useCache)
	if err != nil {
		return nil, err
	}

	outlook := &models.Outlook{
		EvaluatedAt:    time.Now().UTC(),
		Scores:         scores,
		Recommendation: u.allocator.Recommend(scores.OverallScore),
	}

	if u.publisher != nil {
		if err := u.publisher.PublishOutlook(ctx, outlook); err != nil {
			u.metrics.RecordError("publish")
			u.log.Warn("outlook publish failed", applogger.Error(err))
		}
	}

	u.metrics.RecordLatency("evaluate", time.Since(start).Seconds())
	return outlook, nil
}

// Score collects snapshots and computes category and composite scores.
func (u *OutlookUsecase) Score(ctx context.Context, useCache bool) (models.ScoreResult, error) {
	snaps, err := u.collector.Snapshots(ctx, useCache)
	if err != nil {
		return models.ScoreResult{}, err
	}

	scores := u.scorer.GetOverallScore(snaps)
	u.metrics.RecordCompositeScore(scores.OverallScore)
	for _, cat := range scoring.CategoryOrder {
		if v := scores.Category(cat); v != nil {
			u.metrics.RecordCategoryScore(cat, *v)
		}
	}
	u.log.Info("outlook scored",
		applogger.Float64Of("composite", scores.OverallScore),
		applogger.Int("indicators", len(scores.IndicatorScores)))
	return scores, nil
}

// Allocation maps a caller-provided score onto an allocation with guidance.
func (u *OutlookUsecase) Allocation(score float64) models.Recommendation {
	return u.allocator.Recommend(score)
}

// Snapshots exposes the collected indicator snapshots for API responses.
func (u *OutlookUsecase) Snapshots(ctx context.Context, useCache bool) (map[string]*models.Snapshot, error) {
	return u.collector.Snapshots(ctx, useCache)
}

// Refresh drops the cached snapshot set and collects fresh data.
func (u *OutlookUsecase) Refresh(ctx context.Context) error {
	_, err := u.collector.Refresh(ctx)
	return err
}
