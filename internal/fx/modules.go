package fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"tapebot/internal/config"
	"tapebot/internal/database"
	"tapebot/internal/fetch"
	"tapebot/internal/logger"
	"tapebot/internal/repository"
	"tapebot/internal/scrape"
	"tapebot/internal/server"
	"tapebot/internal/service"
	"tapebot/internal/store"
)

func ProvideFetcher(client *fetch.Client) service.Fetcher {
	return client
}

func ProvideRankingsParser(cfg *config.Config, log zerolog.Logger) *scrape.RankingsParser {
	return scrape.NewRankingsParser(cfg.BaseURL, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// scraping
	fx.Provide(fetch.NewClient),
	fx.Provide(ProvideFetcher),
	fx.Provide(ProvideRankingsParser),
	fx.Provide(scrape.NewImageResolver),
	fx.Provide(scrape.NewStatsExtractor),
	// persistence
	fx.Provide(store.New),
	fx.Provide(repository.NewRunLogRepository),
	// svc
	fx.Provide(service.NewRefreshService),
	fx.Provide(service.NewRotationService),
	fx.Provide(service.NewRand),
	fx.Provide(service.NewPipeline),
	// server
	fx.Provide(server.NewGameServer),
)
