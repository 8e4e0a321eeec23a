package main

import (
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/bidancare/bidan-backend/config"
	"github.com/bidancare/bidan-backend/internal/common/middlewares"
	"github.com/bidancare/bidan-backend/internal/routes"
	"github.com/bidancare/bidan-backend/pkg/storage/mariadb"
	"github.com/bidancare/bidan-backend/ws"
)

func main() {
	cfg := config.LoadConfig()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.AppEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	db, err := mariadb.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("gagal terhubung ke database")
	}
	defer db.Close()

	hub := ws.NewHub()
	go hub.Run()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(middlewares.Logger(logger))

	routes.Init(e, db, cfg, logger, hub)

	logger.Info().Str("port", cfg.Port).Msg("server berjalan")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server berhenti")
	}
}
