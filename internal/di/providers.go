package di

import (
	"context"
	"fmt"
	"time"

	"MacroPulse/internal/domain/repository"
	domservice "MacroPulse/internal/domain/service"
	"MacroPulse/internal/handler/api"
	internalrepo "MacroPulse/internal/repository"
	icache "MacroPulse/internal/service/cache"
	"MacroPulse/internal/service/fred"
	"MacroPulse/internal/service/market"
	"MacroPulse/internal/services/allocation"
	"MacroPulse/internal/services/history"
	"MacroPulse/internal/services/scoring"
	"MacroPulse/internal/usecase"
	pkgcache "MacroPulse/pkg/cache"
	pkgch "MacroPulse/pkg/clickhouse"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	pkgkafka "MacroPulse/pkg/kafka"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"
	"MacroPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: "stdout",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideScoringConfig builds and validates the scoring policy.
func ProvideScoringConfig() (scoring.Config, error) {
	sc := scoring.DefaultConfig()
	if err := sc.Validate(); err != nil {
		return scoring.Config{}, fmt.Errorf("scoring config: %w", err)
	}
	return sc, nil
}

// ProvideAnalyzer creates the indicator analyzer.
func ProvideAnalyzer(sc scoring.Config, log *applogger.Logger) *scoring.Analyzer {
	return scoring.NewAnalyzer(sc, log)
}

// ProvideScorer exposes the analyzer as the domain scorer.
func ProvideScorer(a *scoring.Analyzer) domservice.Scorer {
	return a
}

// ProvideAllocationEngine creates the band allocator.
func ProvideAllocationEngine() *allocation.Allocator {
	return allocation.New(allocation.DefaultBands())
}

// ProvideAllocator exposes the allocation engine as the domain allocator.
func ProvideAllocator(a *allocation.Allocator) domservice.Allocator {
	return a
}

// ProvideHistorian creates the historical score reconstructor.
func ProvideHistorian(a *scoring.Analyzer, sc scoring.Config, log *applogger.Logger) domservice.Historian {
	return history.NewReconstructor(a, sc, log)
}

// ProvideSignaler creates the benchmark signal builder.
func ProvideSignaler(a *allocation.Allocator, log *applogger.Logger) domservice.Signaler {
	return history.NewSignalBuilder(a, log)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when the
// store is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSeriesStore creates the observation store and initializes its
// schema. Returns nil when ClickHouse is disabled.
func ProvideSeriesStore(ch *pkgch.Client, cfg *config.Config, log *applogger.Logger) (repository.SeriesStore, error) {
	if ch == nil {
		return nil, nil
	}

	store := internalrepo.NewClickHouseSeriesStore(ch, cfg.ClickHouse.Database, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when publishing is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideOutlookPublisher creates the Kafka outlook publisher.
func ProvideOutlookPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.OutlookPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaOutlookPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCacheBackend selects the cache backend: layered memory+Redis when
// Redis is configured, plain memory otherwise, nil when caching is off.
func ProvideCacheBackend(cfg *config.Config, log *applogger.Logger) (pkgcache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	if cfg.Cache.Redis.Enabled {
		rc, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
			pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
			pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		log.Info("cache backend: layered redis", applogger.String("addr", cfg.Cache.Redis.Addr))
		return pkgcache.NewLayeredCache(rc), nil
	}

	log.Info("cache backend: in-memory")
	return pkgcache.NewMemoryCache(), nil
}

// ProvideSnapshotCache wraps the backend into the snapshot cache.
func ProvideSnapshotCache(backend pkgcache.Service, cfg *config.Config, log *applogger.Logger) repository.SnapshotCache {
	if backend == nil {
		return nil
	}
	return icache.NewSnapshotCache(backend, cfg.Cache.TTL, log)
}

// ProvideSeriesSource creates the FRED observation client.
func ProvideSeriesSource(cfg *config.Config, log *applogger.Logger) repository.SeriesSource {
	return fred.New(cfg.FRED.APIKey, cfg.FRED.BaseURL, cfg.FRED.Timeout, log)
}

// ProvideMarketSource creates the market chart client.
func ProvideMarketSource(cfg *config.Config, log *applogger.Logger) repository.MarketDataSource {
	return market.New(cfg.Market.BaseURL, cfg.Market.Timeout, log)
}

// ProvideCatalog lists the indicators to collect.
func ProvideCatalog(cfg *config.Config) []usecase.Indicator {
	return usecase.DefaultCatalog(cfg.Market.VolatilitySymbol)
}

// ProvideCollector creates the indicator collector use case.
func ProvideCollector(
	fredSource repository.SeriesSource,
	marketSource repository.MarketDataSource,
	cache repository.SnapshotCache,
	store repository.SeriesStore,
	m repository.Metrics,
	catalog []usecase.Indicator,
	sc scoring.Config,
	cfg *config.Config,
	log *applogger.Logger,
) *usecase.IndicatorCollector {
	return usecase.NewIndicatorCollector(fredSource, marketSource, cache, store, m, catalog, sc, cfg.FRED.YearsOfData, log)
}

// ProvideOutlookUsecase creates the outlook use case.
func ProvideOutlookUsecase(
	collector *usecase.IndicatorCollector,
	scorer domservice.Scorer,
	allocator domservice.Allocator,
	publisher repository.OutlookPublisher,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.OutlookUsecase {
	return usecase.NewOutlookUsecase(collector, scorer, allocator, publisher, m, log)
}

// ProvideHistoryUsecase creates the history use case.
func ProvideHistoryUsecase(
	collector *usecase.IndicatorCollector,
	historian domservice.Historian,
	signaler domservice.Signaler,
	marketSource repository.MarketDataSource,
	store repository.SeriesStore,
	m repository.Metrics,
	cfg *config.Config,
	log *applogger.Logger,
) *usecase.HistoryUsecase {
	return usecase.NewHistoryUsecase(collector, historian, signaler, marketSource, store, m, cfg.Market.BenchmarkSymbol, log)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(log *applogger.Logger, outlook *usecase.OutlookUsecase, hist *usecase.HistoryUsecase) xhttp.Handler {
	return api.NewOutlookHandler(log, outlook, hist)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	outlook *usecase.OutlookUsecase,
	store repository.SeriesStore,
	publisher repository.OutlookPublisher,
	cacheBackend pkgcache.Service,
) *server.App {
	return server.New(cfg, log, handler, outlook, store, publisher, cacheBackend)
}
