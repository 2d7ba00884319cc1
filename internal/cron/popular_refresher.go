package cron

import (
	"context"
	"time"

	"currency-converter/internal/models"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Refresher interface {
	RefreshPopular(ctx context.Context) ([]models.PopularPair, error)
}

// PopularRefresher recomputes the popular pairs ranking on a fixed interval.
type PopularRefresher struct {
	service  Refresher
	interval time.Duration
	logger   log.Logger
}

func NewPopularRefresher(service Refresher, interval time.Duration, logger log.Logger) *PopularRefresher {
	return &PopularRefresher{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

func (p *PopularRefresher) Start(ctx context.Context) {
	level.Info(p.logger).Log("msg", "popular refresher started", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				level.Error(p.logger).Log("msg", "popular refresh failed", "err", err)
			}

		case <-ctx.Done():
			level.Info(p.logger).Log("msg", "popular refresher stopped")
			return
		}
	}
}

func (p *PopularRefresher) RunOnce(ctx context.Context) error {
	pairs, err := p.service.RefreshPopular(ctx)
	if err != nil {
		return err
	}
	level.Debug(p.logger).Log("msg", "popular pairs refreshed", "pairs", len(pairs))
	return nil
}
