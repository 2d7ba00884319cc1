package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"currency-converter/internal/kafka"
	"currency-converter/internal/models"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	popularWindow = 24 * time.Hour
	popularLimit  = 5
)

// PairCounter is the read side of the usage store.
type PairCounter interface {
	TopPairs(ctx context.Context, since time.Time, limit int) ([]models.PopularPair, error)
}

// UsageService publishes conversion events and serves the popular pairs.
// Either side may be disabled by passing nil.
type UsageService struct {
	producer kafka.ProducerInterface
	counter  PairCounter
	logger   log.Logger
	now      func() time.Time

	mu      sync.RWMutex
	popular []models.PopularPair
}

func NewUsageService(producer kafka.ProducerInterface, counter PairCounter, logger log.Logger) *UsageService {
	return &UsageService{
		producer: producer,
		counter:  counter,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UsageService) RecordConversion(_ context.Context, event models.ConversionEvent) {
	if s.producer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		level.Error(s.logger).Log("msg", "marshal conversion event", "err", err)
		return
	}
	s.producer.PublishObjectAsync([]byte(event.ClientID), models.Envelope{
		Type: models.EventTypeConversion,
		Data: data,
	})
}

// Popular returns the last computed ranking, computing it on first use.
func (s *UsageService) Popular(ctx context.Context) ([]models.PopularPair, error) {
	if s.counter == nil {
		return nil, models.ErrStatsDisabled
	}

	s.mu.RLock()
	popular := s.popular
	s.mu.RUnlock()
	if popular != nil {
		return popular, nil
	}
	return s.RefreshPopular(ctx)
}

func (s *UsageService) RefreshPopular(ctx context.Context) ([]models.PopularPair, error) {
	if s.counter == nil {
		return nil, models.ErrStatsDisabled
	}

	pairs, err := s.counter.TopPairs(ctx, s.now().Add(-popularWindow), popularLimit)
	if err != nil {
		return nil, err
	}
	if pairs == nil {
		pairs = []models.PopularPair{}
	}

	s.mu.Lock()
	s.popular = pairs
	s.mu.Unlock()
	return pairs, nil
}
