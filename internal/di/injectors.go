//go:build wireinject
// +build wireinject

package di

import (
	"exportlens/internal"
	"exportlens/internal/controllers"
	"exportlens/internal/parsers"
	"exportlens/internal/providers"
	"exportlens/internal/services"
	"exportlens/internal/statistic"
	"exportlens/internal/structures"
	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		statistic.NewZstdCompressor,
		statistic.NewTableCodec,
		statistic.NewFileManager,
		statistic.NewScheduler,
		parsers.NewDefaultRegistry,
		parsers.NewBuilder,
		services.NewSessionStore,
		services.NewExportService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
