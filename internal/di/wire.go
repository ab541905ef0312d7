//go:build wireinject
// +build wireinject

package di

import (
	"CandleCache/pkg/config"
	"CandleCache/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideStore,
		ProvideUpstream,
		ProvideClickHouseClient,
		ProvideArchive,
		ProvidePublisher,

		// Core service and HTTP surface
		ProvideCandleService,
		ProvideHandler,
		ProvideJanitor,

		ProvideApp,
	)
	return &server.App{}, nil
}
