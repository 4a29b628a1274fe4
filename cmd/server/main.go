package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/mealchain/internal/api"
	"github.com/andresuchdata/mealchain/internal/cache"
	"github.com/andresuchdata/mealchain/internal/config"
	"github.com/andresuchdata/mealchain/internal/repository"
	"github.com/andresuchdata/mealchain/internal/repository/postgres"
	"github.com/andresuchdata/mealchain/internal/service"
	"github.com/andresuchdata/mealchain/internal/storage"
	"github.com/andresuchdata/mealchain/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Setup(os.Stdout, cfg.Log.Format)
	logger.SetLevel(cfg.Log.Level)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	if err := postgres.Migrate(startCtx, db); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Forecast cache unavailable, continuing without it")
		forecastCache = cache.NewNoopForecastCache()
	}

	var store storage.ObjectStorage
	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		store = client
	}

	engine, err := service.NewForecastEngine(startCtx, cfg.Forecast, store)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to build forecast engine")
	}

	// Initialize services
	ledgerRepo := repository.NewLedgerRepository(db.DB)
	inventoryRepo := repository.NewInventoryRepository(db.DB)
	recipeRepo := repository.NewRecipeRepository(db.DB)

	services := &api.Services{
		Forecast: service.NewForecastService(ledgerRepo, inventoryRepo, engine, forecastCache, cfg.Forecast),
		Scaling:  service.NewScalingService(recipeRepo, inventoryRepo),
		Ping:     db.PingContext,
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("trend_model", engine.TrendModelName()).
			Bool("cache", cfg.Cache.Enabled).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
