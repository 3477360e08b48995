package main

import (
	"garagebook/config"
	"garagebook/di"
	"garagebook/helper"
	"garagebook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Garagebook API
// @version 1.0
// @description Mobile mechanic bookings with periodic conflict reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey DashboardKey
// @in header
// @name X-Dashboard-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
