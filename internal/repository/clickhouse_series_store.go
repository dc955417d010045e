package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	pkgch "MacroPulse/pkg/clickhouse"
	applogger "MacroPulse/pkg/logger"
)

// ClickHouseSeriesStore persists raw observations and reconstructed composite
// history for offline analysis. ReplacingMergeTree keeps re-ingested
// observations idempotent.
type ClickHouseSeriesStore struct {
	client   *pkgch.Client
	db       *sql.DB
	database string
	log      *applogger.Logger
}

// NewClickHouseSeriesStore creates the ClickHouse-backed series store.
func NewClickHouseSeriesStore(ch *pkgch.Client, database string, log *applogger.Logger) drepo.SeriesStore {
	if log == nil {
		log = applogger.Nop()
	}
	return &ClickHouseSeriesStore{client: ch, db: ch.DB(), database: database, log: log}
}

func (s *ClickHouseSeriesStore) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.indicator_observations (
			indicator String,
			date Date,
			value Float64,
			ingested_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(ingested_at)
		ORDER BY (indicator, date)`, s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.composite_history (
			date Date,
			score Float64,
			computed_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(computed_at)
		ORDER BY date`, s.database),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("series store init: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseSeriesStore) StoreObservations(ctx context.Context, id string, series models.Series) error {
	if len(series) == 0 {
		return nil
	}

	start := time.Now()
	const chunkSize = 2000
	table := s.database + ".indicator_observations"
	for lo := 0; lo < len(series); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(series) {
			hi = len(series)
		}

		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*3)
		for _, obs := range series[lo:hi] {
			values = append(values, "(?, ?, ?)")
			args = append(args, id, obs.Date, obs.Value)
		}
		q := fmt.Sprintf("INSERT INTO %s (indicator, date, value) VALUES %s", table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.log.Error("store observations failed",
				applogger.String("indicator", id),
				applogger.Error(err))
			return fmt.Errorf("store observations %s: %w", id, err)
		}
	}
	s.log.Debug("stored observations",
		applogger.String("indicator", id),
		applogger.Int("rows", len(series)),
		applogger.Duration("duration_ms", time.Since(start)))
	return nil
}

func (s *ClickHouseSeriesStore) StoreHistory(ctx context.Context, points []models.HistoricalPoint) error {
	if len(points) == 0 {
		return nil
	}

	values := make([]string, 0, len(points))
	args := make([]interface{}, 0, len(points)*2)
	for _, p := range points {
		values = append(values, "(?, ?)")
		args = append(args, p.Date, p.Score)
	}
	q := fmt.Sprintf("INSERT INTO %s.composite_history (date, score) VALUES %s",
		s.database, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		s.log.Error("store history failed", applogger.Error(err))
		return fmt.Errorf("store history: %w", err)
	}
	return nil
}

func (s *ClickHouseSeriesStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSeriesStore) Close() error {
	return s.client.Close()
}
