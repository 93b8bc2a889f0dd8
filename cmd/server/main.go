package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prodplan/internal/config"
	"prodplan/internal/infra"
	"prodplan/internal/router"
	"prodplan/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
	}

	events := newPublisher(cfg, rdb)
	defer func() {
		if err := events.Close(); err != nil {
			log.Warn().Err(err).Msg("closing event publisher")
		}
	}()

	r := router.New(cfg, db, rdb, events)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("events", cfg.EventsSink).Msgf("production planning API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// newPublisher picks the plan event sink named by EVENTS_SINK.
func newPublisher(cfg *config.Config, rdb *redis.Client) worker.Publisher {
	switch cfg.EventsSink {
	case "kafka":
		w := infra.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		return worker.NewKafkaPublisher(w, rdb)
	case "redis":
		if rdb != nil {
			return worker.NewDispatcher(rdb)
		}
		log.Warn().Msg("EVENTS_SINK=redis without REDIS_URL; plan events disabled")
	}
	return worker.NopPublisher{}
}
