package main

// @title           Shelfshare Library API
// @version         1.0
// @description     API for managing authors and their books in Shelfshare.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/shelfshare/internal/config"
	"github.com/snnyvrz/shelfshare/internal/db"
	"github.com/snnyvrz/shelfshare/internal/logger"
	"github.com/snnyvrz/shelfshare/internal/metrics"
	"github.com/snnyvrz/shelfshare/internal/server"
)

const appVersion = "0.2.0"

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(gin.ReleaseMode, "info")
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.GinMode, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	database, err := db.ConnectWithRetry(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	router, err := server.NewRouter(server.Options{
		DB:        database,
		Metrics:   metrics.New(),
		Version:   appVersion,
		StartTime: startTime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, srv, 10*time.Second); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("bye")
}
