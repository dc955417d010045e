//go:build wireinject
// +build wireinject

package di

import (
	"MacroPulse/pkg/config"
	"MacroPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Scoring policy and domain services
		ProvideScoringConfig,
		ProvideAnalyzer,
		ProvideScorer,
		ProvideAllocationEngine,
		ProvideAllocator,
		ProvideHistorian,
		ProvideSignaler,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideSeriesStore,
		ProvideKafkaProducer,
		ProvideOutlookPublisher,
		ProvideCacheBackend,
		ProvideSnapshotCache,

		// Data sources
		ProvideSeriesSource,
		ProvideMarketSource,
		ProvideCatalog,

		// Use cases
		ProvideCollector,
		ProvideOutlookUsecase,
		ProvideHistoryUsecase,

		// HTTP and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
