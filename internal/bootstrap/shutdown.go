package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-converter/internal/kafka"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/redis/go-redis/v9"
)

// GracefulShutdown stops background work and the server on SIGINT or SIGTERM.
func GracefulShutdown(
	srv *http.Server,
	stopWorkers context.CancelFunc,
	redisClient *redis.Client,
	db *sql.DB,
	kafkaBundle *kafka.KafkaBundle,
	logger log.Logger,
) {
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		level.Info(logger).Log("msg", "shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			level.Error(logger).Log("msg", "server shutdown", "err", err)
		}

		stopWorkers()
		kafkaBundle.Close()

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				level.Error(logger).Log("msg", "redis close", "err", err)
			}
		}
		if db != nil {
			if err := db.Close(); err != nil {
				level.Error(logger).Log("msg", "postgres close", "err", err)
			}
		}
	}()
}
