package bootstrap

import (
	"context"
	"time"

	"currency-converter/internal/cron"

	"github.com/go-kit/log"
)

const (
	popularInterval = 5 * time.Minute
	sweepInterval   = time.Minute
)

// StartCronJobs always sweeps idle sessions; the popular pairs refresher only
// runs when usage statistics are backed by a database.
func StartCronJobs(ctx context.Context, app *BootstrapBundle, idle time.Duration, logger log.Logger) {
	logger = log.With(logger, "component", "cron")

	sweeper := cron.NewSessionSweeper(app.Sessions, sweepInterval, idle, logger)
	go sweeper.Start(ctx)

	if app.UsageRepo != nil {
		refresher := cron.NewPopularRefresher(app.Usage, popularInterval, logger)
		go refresher.Start(ctx)
	}
}
