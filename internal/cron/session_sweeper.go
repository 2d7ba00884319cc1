package cron

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Evicter interface {
	EvictIdle(idle time.Duration) int
}

// SessionSweeper drops sessions that have not been used within idle.
type SessionSweeper struct {
	sessions Evicter
	interval time.Duration
	idle     time.Duration
	logger   log.Logger
}

func NewSessionSweeper(sessions Evicter, interval, idle time.Duration, logger log.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		idle:     idle,
		logger:   logger,
	}
}

func (s *SessionSweeper) Start(ctx context.Context) {
	level.Info(s.logger).Log("msg", "session sweeper started", "interval", s.interval, "idle", s.idle)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce()

		case <-ctx.Done():
			level.Info(s.logger).Log("msg", "session sweeper stopped")
			return
		}
	}
}

func (s *SessionSweeper) RunOnce() int {
	n := s.sessions.EvictIdle(s.idle)
	if n > 0 {
		level.Debug(s.logger).Log("msg", "idle sessions evicted", "count", n)
	}
	return n
}
