package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"

	"currency-converter/internal/bootstrap"
	"currency-converter/internal/config"
	"currency-converter/internal/db"
	"currency-converter/internal/kafka"
	"currency-converter/internal/workers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		level.Error(bootstrap.NewLogger(os.Stderr, "error")).Log("msg", "load config", "err", err)
		os.Exit(1)
	}

	logger := bootstrap.NewLogger(os.Stderr, cfg.LogLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = db.ConnectRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			level.Error(logger).Log("msg", "redis connection failed", "err", err)
			os.Exit(1)
		}
	} else {
		level.Info(logger).Log("msg", "REDIS_URL not set, preferences kept in memory")
	}

	var database *sql.DB
	if cfg.DatabaseURL != "" {
		database, err = db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			level.Error(logger).Log("msg", "postgres connection failed", "err", err)
			os.Exit(1)
		}
	} else {
		level.Info(logger).Log("msg", "DATABASE_URL not set, usage statistics disabled")
	}

	kafkaBundle, err := kafka.InitKafka(cfg, log.With(logger, "component", "kafka"))
	if err != nil {
		level.Error(logger).Log("msg", "kafka init failed", "err", err)
		os.Exit(1)
	}
	if kafkaBundle == nil {
		level.Info(logger).Log("msg", "KAFKA_BROKERS not set, conversion events disabled")
	}

	app := bootstrap.InitBootstrap(bootstrap.Dependencies{
		Config:     cfg,
		Logger:     logger,
		Redis:      redisClient,
		DB:         database,
		Kafka:      kafkaBundle,
		Registerer: prometheus.DefaultRegisterer,
	})

	if app.UsageRepo != nil {
		if err := app.UsageRepo.EnsureSchema(ctx); err != nil {
			level.Error(logger).Log("msg", "create usage schema", "err", err)
			os.Exit(1)
		}
		if kafkaBundle != nil && kafkaBundle.ConversionConsumer != nil {
			workers.StartAllWorkers(ctx, kafkaBundle.ConversionConsumer, app.UsageRepo, log.With(logger, "component", "workers"))
		}
	}
	bootstrap.StartCronJobs(ctx, app, cfg.SessionIdleTimeout, logger)

	router := bootstrap.InitRoutes(app, prometheus.DefaultGatherer, logger)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	bootstrap.GracefulShutdown(srv, cancel, redisClient, database, kafkaBundle, logger)

	level.Info(logger).Log("msg", "server started", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		level.Error(logger).Log("msg", "server failed", "err", err)
		os.Exit(1)
	}
}
