package services

import (
	"context"

	"currency-converter/internal/models"
)

// RatesFetcher loads a complete rate table from the upstream API.
type RatesFetcher interface {
	FetchRates(ctx context.Context) (models.RateTable, error)
}
