package history

import (
	"math"
	"sort"
	"time"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/scoring"
	"MacroPulse/internal/services/timeseries"
	applogger "MacroPulse/pkg/logger"
)

// maxPoints caps the downsampled historical sequence regardless of how dense
// the input series are (roughly weekly over a 5-year window).
const maxPoints = 260

// Reconstructor re-derives the composite score at sampled past dates from raw
// indicator series. Best-effort: malformed series are dropped with a log line
// and scoring failures degrade to fewer (or zero) points, never an error.
type Reconstructor struct {
	analyzer *scoring.Analyzer
	cfg      scoring.Config
	log      *applogger.Logger
}

// NewReconstructor builds a reconstructor sharing the analyzer's policy.
func NewReconstructor(analyzer *scoring.Analyzer, cfg scoring.Config, log *applogger.Logger) *Reconstructor {
	if log == nil {
		log = applogger.Nop()
	}
	return &Reconstructor{analyzer: analyzer, cfg: cfg, log: log}
}

// HistoricalScores computes the composite score at up to maxPoints sampled
// dates within lookbackDays of the most recent observation across all series.
// The returned sequence is ascending by date with unique dates.
func (r *Reconstructor) HistoricalScores(seriesMap map[string]models.Series, lookbackDays int) []models.HistoricalPoint {
	valid := r.validSeries(seriesMap)
	if len(valid) == 0 {
		return nil
	}

	dates := collectDates(valid)
	if len(dates) < 2 {
		return nil
	}

	cutoff := dates[len(dates)-1].AddDate(0, 0, -lookbackDays)
	i := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(cutoff) })
	dates = dates[i:]
	if len(dates) < 2 {
		return nil
	}

	sampled := sampleDates(dates, maxPoints)

	points := make([]models.HistoricalPoint, 0, len(sampled))
	for _, d := range sampled {
		snaps := r.snapshotsAt(valid, d)
		if len(snaps) == 0 {
			continue
		}
		score := r.analyzer.GetOverallScore(snaps).OverallScore
		if math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		points = append(points, models.HistoricalPoint{Date: d, Score: score})
	}
	return points
}

// validSeries drops empty and non-chronological series.
func (r *Reconstructor) validSeries(seriesMap map[string]models.Series) map[string]models.Series {
	valid := make(map[string]models.Series, len(seriesMap))
	for id, s := range seriesMap {
		if len(s) == 0 {
			continue
		}
		if !s.IsChronological() {
			r.log.Warn("series not chronological, skipping", applogger.String("indicator", id))
			continue
		}
		valid[id] = s
	}
	return valid
}

// snapshotsAt builds the per-indicator snapshot view as of date d: the latest
// observation at or before d (same-calendar-month observations win over
// earlier cross-month ones) plus, for YoY-preferred indicators, the growth vs
// the latest observation at or before d minus 12 months.
func (r *Reconstructor) snapshotsAt(valid map[string]models.Series, d time.Time) map[string]*models.Snapshot {
	snaps := make(map[string]*models.Snapshot, len(valid))
	for id, s := range valid {
		obs, ok := s.LatestAtOrBefore(d)
		if !ok || math.IsNaN(obs.Value) {
			continue
		}
		snap := &models.Snapshot{ID: id, LatestValue: models.Float(obs.Value)}
		if r.cfg.PrefersYoY(id) {
			if base, ok := s.AsOf(d.AddDate(0, -12, 0)); ok && base.Value != 0 {
				snap.YoY = timeseries.GrowthBetween(obs.Value, base.Value)
			}
		}
		snaps[id] = snap
	}
	return snaps
}

// collectDates returns the sorted union of all observation dates.
func collectDates(valid map[string]models.Series) []time.Time {
	set := make(map[time.Time]struct{})
	for _, s := range valid {
		for _, obs := range s {
			set[obs.Date] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// sampleDates applies fixed-stride downsampling and always keeps the most
// recent date.
func sampleDates(dates []time.Time, max int) []time.Time {
	step := len(dates) / max
	if step < 1 {
		step = 1
	}
	sampled := make([]time.Time, 0, max+1)
	for i := 0; i < len(dates); i += step {
		sampled = append(sampled, dates[i])
	}
	last := dates[len(dates)-1]
	if sampled[len(sampled)-1] != last {
		sampled = append(sampled, last)
	}
	return sampled
}
