package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"currency-converter/internal/models"

	"github.com/shopspring/decimal"
)

// Converter fetches rate tables and converts amounts with them.
type Converter interface {
	FetchRates(ctx context.Context) (models.RateTable, error)
	Convert(ctx context.Context, req models.ConversionRequest, table models.RateTable) (models.ConversionResult, error)
	Current() models.RateTable
}

// RateConverter owns the current rate table. At most one fetch is outstanding:
// starting a fetch cancels the previous one, and only the newest fetch may
// replace the table.
type RateConverter struct {
	fetcher RatesFetcher

	mu     sync.Mutex
	table  models.RateTable
	seq    uint64
	cancel context.CancelFunc
}

func NewRateConverter(fetcher RatesFetcher) *RateConverter {
	return &RateConverter{fetcher: fetcher}
}

func (c *RateConverter) FetchRates(ctx context.Context) (models.RateTable, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	c.cancel = cancel
	c.mu.Unlock()

	table, err := c.fetcher.FetchRates(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return models.RateTable{}, models.ErrFetchSuperseded
	}
	c.cancel = nil
	if err != nil {
		return models.RateTable{}, err
	}
	c.table = table
	return table, nil
}

func (c *RateConverter) Convert(_ context.Context, req models.ConversionRequest, table models.RateTable) (models.ConversionResult, error) {
	return Convert(req, table)
}

// Current returns the table from the last successful fetch.
func (c *RateConverter) Current() models.RateTable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table
}

// Convert normalises the amount into the table's base currency and scales it
// into the target currency: (amount / fromRate) * toRate.
func Convert(req models.ConversionRequest, table models.RateTable) (models.ConversionResult, error) {
	if !(req.Amount > 0) || math.IsInf(req.Amount, 0) {
		return models.ConversionResult{}, fmt.Errorf("%w: %v", models.ErrInvalidAmount, req.Amount)
	}
	fromRate, ok := table.Rate(req.From)
	if !ok {
		return models.ConversionResult{}, fmt.Errorf("%w: %s", models.ErrRateUnavailable, req.From)
	}
	toRate, ok := table.Rate(req.To)
	if !ok {
		return models.ConversionResult{}, fmt.Errorf("%w: %s", models.ErrRateUnavailable, req.To)
	}

	baseAmount := req.Amount / fromRate
	value := baseAmount * toRate
	if math.IsInf(value, 0) {
		return models.ConversionResult{}, fmt.Errorf("%w: result out of range", models.ErrInvalidAmount)
	}
	return models.ConversionResult{Value: value}, nil
}

// ParseAmount turns user input into a positive, finite amount.
func ParseAmount(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: empty", models.ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidAmount, text)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %s must be greater than zero", models.ErrInvalidAmount, text)
	}
	amount := d.InexactFloat64()
	if math.IsInf(amount, 0) || amount <= 0 {
		return 0, fmt.Errorf("%w: %q out of range", models.ErrInvalidAmount, text)
	}
	return amount, nil
}
