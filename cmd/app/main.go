package main

import (
	"houserental/config"
	"houserental/di"
	"houserental/helper"
	"houserental/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title House Rental API
// @version 1.0
// @description Property bookings, guest checkout and card payments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
