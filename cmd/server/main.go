package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/habitflow/habitflow-api/docs"
	"github.com/habitflow/habitflow-api/internal/api"
	"github.com/habitflow/habitflow-api/internal/core/service"
	"github.com/habitflow/habitflow-api/internal/infrastructure/config"
	mongodb "github.com/habitflow/habitflow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/habitflow/habitflow-api/internal/infrastructure/db/redis"
	"github.com/habitflow/habitflow-api/internal/infrastructure/upload"
	"github.com/habitflow/habitflow-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        HabitFlow API
// @version      1.0
// @description  Habit tracking backend: habits, completions, friends and analytics.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect mongodb client")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure mongodb indexes")
	}

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}()

	var uploader service.AvatarUploader
	if cfg.Cloudinary.Configured() {
		cld, err := upload.NewCloudinaryUploader(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
			cfg.Cloudinary.Folder,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialise cloudinary")
		}
		uploader = cld
	} else {
		log.Warn().Msg("cloudinary credentials not set, avatar uploads disabled")
	}

	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     redisClient,
		Uploader:  uploader,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
