package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"currency-converter/internal/api"
	"currency-converter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchFunc func(ctx context.Context) (models.RateTable, error)

func (f fetchFunc) FetchRates(ctx context.Context) (models.RateTable, error) { return f(ctx) }

func staticFetcher(table models.RateTable) fetchFunc {
	return func(context.Context) (models.RateTable, error) { return table, nil }
}

func eurUSD() models.RateTable {
	return models.RateTable{
		Base:  "EUR",
		Date:  "2024-01-02",
		Rates: map[string]float64{"EUR": 1.0, "USD": 1.1, "JPY": 130.5, "GBP": 0.86},
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name      string
		req       models.ConversionRequest
		formatted string
	}{
		{"EUR to USD", models.ConversionRequest{Amount: 100, From: "EUR", To: "USD"}, "110.00"},
		{"USD to EUR", models.ConversionRequest{Amount: 110, From: "USD", To: "EUR"}, "100.00"},
		{"same currency", models.ConversionRequest{Amount: 42.5, From: "GBP", To: "GBP"}, "42.50"},
		{"cross rate", models.ConversionRequest{Amount: 1000, From: "GBP", To: "JPY"}, "151,744.19"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Convert(tt.req, eurUSD())
			require.NoError(t, err)
			assert.Equal(t, tt.formatted, res.Formatted())
		})
	}
}

func TestConvert_ExactFormula(t *testing.T) {
	table := eurUSD()
	for _, amount := range []float64{0.01, 1, 3.3333, 100, 987654.321} {
		for from, fromRate := range table.Rates {
			for to, toRate := range table.Rates {
				res, err := Convert(models.ConversionRequest{Amount: amount, From: from, To: to}, table)
				require.NoError(t, err)
				assert.Equal(t, (amount/fromRate)*toRate, res.Value, "%v %s->%s", amount, from, to)
			}
		}
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	table := eurUSD()
	there, err := Convert(models.ConversionRequest{Amount: 250, From: "USD", To: "JPY"}, table)
	require.NoError(t, err)
	back, err := Convert(models.ConversionRequest{Amount: there.Value, From: "JPY", To: "USD"}, table)
	require.NoError(t, err)
	assert.InDelta(t, 250, back.Value, 1e-9)
}

func TestConvert_InvalidAmount(t *testing.T) {
	for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		t.Run(fmt.Sprint(amount), func(t *testing.T) {
			_, err := Convert(models.ConversionRequest{Amount: amount, From: "EUR", To: "USD"}, eurUSD())
			assert.ErrorIs(t, err, models.ErrInvalidAmount)

			_, err = Convert(models.ConversionRequest{Amount: amount, From: "EUR", To: "USD"}, models.RateTable{})
			assert.ErrorIs(t, err, models.ErrInvalidAmount)
		})
	}
}

func TestConvert_Overflow(t *testing.T) {
	_, err := Convert(models.ConversionRequest{Amount: math.MaxFloat64, From: "EUR", To: "JPY"}, eurUSD())
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestConvert_RateUnavailable(t *testing.T) {
	_, err := Convert(models.ConversionRequest{Amount: 1, From: "XYZ", To: "USD"}, eurUSD())
	assert.ErrorIs(t, err, models.ErrRateUnavailable)

	_, err = Convert(models.ConversionRequest{Amount: 1, From: "EUR", To: "XYZ"}, eurUSD())
	assert.ErrorIs(t, err, models.ErrRateUnavailable)

	_, err = Convert(models.ConversionRequest{Amount: 1, From: "EUR", To: "USD"}, models.RateTable{})
	assert.ErrorIs(t, err, models.ErrRateUnavailable)
}

func TestParseAmount(t *testing.T) {
	valid := map[string]float64{
		"100":      100,
		" 12.5 ":   12.5,
		"0.01":     0.01,
		"1e3":      1000,
		"00042.10": 42.1,
	}
	for text, want := range valid {
		got, err := ParseAmount(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}

	for _, text := range []string{"", "   ", "abc", "0", "0.00", "-1", "NaN", "Inf", "1,000", "1e400"} {
		_, err := ParseAmount(text)
		assert.ErrorIs(t, err, models.ErrInvalidAmount, text)
	}
}

func TestRateConverter_FetchRates(t *testing.T) {
	c := NewRateConverter(staticFetcher(eurUSD()))
	assert.True(t, c.Current().Empty())

	table, err := c.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, eurUSD(), table)
	assert.Equal(t, eurUSD(), c.Current())
}

func TestRateConverter_FailureKeepsTable(t *testing.T) {
	calls := 0
	c := NewRateConverter(fetchFunc(func(context.Context) (models.RateTable, error) {
		calls++
		if calls == 1 {
			return eurUSD(), nil
		}
		return models.RateTable{}, fmt.Errorf("%w: boom", models.ErrNetwork)
	}))

	_, err := c.FetchRates(context.Background())
	require.NoError(t, err)

	_, err = c.FetchRates(context.Background())
	assert.ErrorIs(t, err, models.ErrNetwork)
	assert.Equal(t, eurUSD(), c.Current())
}

func TestRateConverter_MalformedBodyKeepsTable(t *testing.T) {
	body := `{"success":true,"base":"EUR","date":"2024-01-02","rates":{"USD":1.1}}`
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewRateConverter(api.NewRatesClient(srv.URL+"/v1/latest", "key"))
	before, err := c.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, before.Rates["EUR"])

	mu.Lock()
	body = `{"base":"EUR","rates":`
	mu.Unlock()

	_, err = c.FetchRates(context.Background())
	assert.ErrorIs(t, err, models.ErrDecode)
	assert.Equal(t, before, c.Current())
}

func TestRateConverter_CancelAndReplace(t *testing.T) {
	started := make(chan struct{})
	first := true
	var mu sync.Mutex

	c := NewRateConverter(fetchFunc(func(ctx context.Context) (models.RateTable, error) {
		mu.Lock()
		isFirst := first
		first = false
		mu.Unlock()

		if isFirst {
			close(started)
			<-ctx.Done()
			return models.RateTable{}, fmt.Errorf("%w: %w", models.ErrNetwork, ctx.Err())
		}
		return eurUSD(), nil
	}))

	done := make(chan error, 1)
	go func() {
		_, err := c.FetchRates(context.Background())
		done <- err
	}()
	<-started

	table, err := c.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, eurUSD(), table)

	assert.ErrorIs(t, <-done, models.ErrFetchSuperseded)
	assert.Equal(t, eurUSD(), c.Current())
}
