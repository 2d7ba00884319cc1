package services

import (
	"context"
	"time"

	"currency-converter/internal/models"

	"github.com/go-kit/log"
)

// loggingConverter decorates a Converter with logging
type loggingConverter struct {
	logger log.Logger
	next   Converter
}

// NewLoggingConverter returns a Converter that logs every call
func NewLoggingConverter(logger log.Logger, next Converter) Converter {
	return &loggingConverter{
		logger: logger,
		next:   next,
	}
}

func (s *loggingConverter) FetchRates(ctx context.Context) (table models.RateTable, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "fetch_rates",
			"base", table.Base,
			"date", table.Date,
			"currencies", len(table.Rates),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchRates(ctx)
}

func (s *loggingConverter) Convert(ctx context.Context, req models.ConversionRequest, table models.RateTable) (res models.ConversionResult, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "convert",
			"amount", req.Amount,
			"from", req.From,
			"to", req.To,
			"base", table.Base,
			"converted_amount", res.Value,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(ctx, req, table)
}

func (s *loggingConverter) Current() models.RateTable {
	return s.next.Current()
}
