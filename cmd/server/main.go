package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/webstack/auth-system/internal/api"
	"github.com/webstack/auth-system/internal/infrastructure/config"
	mongodb "github.com/webstack/auth-system/internal/infrastructure/db/mongo"
	redisdb "github.com/webstack/auth-system/internal/infrastructure/db/redis"
	"github.com/webstack/auth-system/pkg/logger"
)

func main() {
	// A local .env is a convenience for development; in deployment the
	// environment is the source of truth.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index setup failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() {
		_ = rdb.Close()
	}()

	e, err := api.NewRouter(cfg, log, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("auth system started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("auth system stopped")
}
