package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	_ "github.com/lib/pq"
)

// ConnectPostgres opens the database and waits until it answers a ping.
func ConnectPostgres(ctx context.Context, dsn string, logger log.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	err = retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return db.PingContext(pingCtx)
		},
		retry.Context(ctx),
		retry.Attempts(10),
		retry.Delay(3*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			level.Warn(logger).Log("msg", "postgres not ready", "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	level.Info(logger).Log("msg", "postgres connected")
	return db, nil
}
