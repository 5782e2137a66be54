package fx

import (
	"brawlhalla-tracker/internal/api"
	"brawlhalla-tracker/internal/config"
	"brawlhalla-tracker/internal/database"
	"brawlhalla-tracker/internal/logger"
	"brawlhalla-tracker/internal/repository"
	"brawlhalla-tracker/internal/resolver"
	"brawlhalla-tracker/internal/server"
	"brawlhalla-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewLinkRepository),
	fx.Provide(repository.NewSnapshotRepository),
	// api clients
	fx.Provide(api.NewSteamClient),
	fx.Provide(api.NewBrawlhallaClient),
	fx.Provide(resolver.New),
	// svc
	fx.Provide(service.NewStatsService),
	// server
	fx.Provide(server.NewTrackerServer),
)
