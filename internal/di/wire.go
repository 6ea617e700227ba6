//go:build wireinject
// +build wireinject

package di

import (
	"EvalPull/pkg/config"
	"EvalPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvideObservationStore,
		ProvidePredictionStore,
		ProvideWeightStore,
		ProvideWeightPublisher,

		// Use cases
		ProvidePipeline,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
