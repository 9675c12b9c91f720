//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"PredVal/internal/domain/repository"
	internalrepo "PredVal/internal/repository"
	"PredVal/pkg/config"
	"PredVal/pkg/metrics"
	"PredVal/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,
		wire.Bind(new(repository.Metrics), new(*metrics.Recorder)),

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCacheService,

		// Repositories
		internalrepo.NewFileLineSource,
		internalrepo.NewFileReportWriter,
		ProvideReportStore,
		ProvideReportPublisher,
		ProvideReportCache,

		// Use cases
		ProvideValidationPipeline,
		ProvideReportUseCase,

		// Transport and application
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
