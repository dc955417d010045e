package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes application metrics through Prometheus.
type Recorder struct {
	compositeScore *prometheus.GaugeVec
	categoryScore  *prometheus.GaugeVec
	fetchesTotal   *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		compositeScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropulse_composite_score",
				Help: "Last computed composite market score",
			},
			[]string{},
		),
		categoryScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropulse_category_score",
				Help: "Last computed category score",
			},
			[]string{"category"},
		),
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_indicator_fetches_total",
				Help: "Total indicator series fetches by source and result",
			},
			[]string{"source", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_cache_requests_total",
				Help: "Snapshot cache requests by result",
			},
			[]string{"result"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macropulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordCompositeScore records the latest composite score.
func (r *Recorder) RecordCompositeScore(score float64) {
	r.compositeScore.WithLabelValues().Set(score)
}

// RecordCategoryScore records a category score.
func (r *Recorder) RecordCategoryScore(category string, score float64) {
	r.categoryScore.WithLabelValues(category).Set(score)
}

// RecordFetch records one upstream series fetch.
func (r *Recorder) RecordFetch(source, result string) {
	r.fetchesTotal.WithLabelValues(source, result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheRequest records a snapshot cache hit or miss.
func (r *Recorder) RecordCacheRequest(result string) {
	r.cacheHits.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
