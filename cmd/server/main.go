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

	"github.com/scholarspoint/coaching-admin/internal/api"
	"github.com/scholarspoint/coaching-admin/internal/infrastructure/db/mongo"
	"github.com/scholarspoint/coaching-admin/internal/infrastructure/db/redis"
	"github.com/scholarspoint/coaching-admin/internal/pkg/config"
	"github.com/scholarspoint/coaching-admin/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	store := redis.NewSessionStore(rdb)

	e, sessions := api.NewRouter(db, rdb, store, api.Options{
		JWTSecret:       cfg.JWTSecret,
		SessionTTL:      cfg.SessionTTL,
		InstitutionName: cfg.InstitutionName,
		Logger:          log,
	})

	// restore live sessions, drop stale ones, then start the expiry check
	sessions.Rehydrate(ctx)
	go sessions.Run(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
