package api

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"time"

	"currency-converter/internal/models"

	"github.com/go-resty/resty/v2"
)

// RatesClient talks to the exchangeratesapi.io "latest" endpoint.
type RatesClient struct {
	endpoint  string
	accessKey string
	http      *resty.Client
	now       func() time.Time
}

func NewRatesClient(endpoint, accessKey string) *RatesClient {
	return &RatesClient{
		endpoint:  endpoint,
		accessKey: accessKey,
		http:      resty.New().SetHeader("Accept", "application/json"),
		now:       time.Now,
	}
}

type latestResponse struct {
	Success *bool               `json:"success"`
	Base    *string             `json:"base"`
	Date    *string             `json:"date"`
	Rates   map[string]*float64 `json:"rates"`
	Error   *struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
}

// FetchRates issues a single GET and returns a fresh rate table with rates[base] = 1.0.
func (c *RatesClient) FetchRates(ctx context.Context) (models.RateTable, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return models.RateTable{}, fmt.Errorf("%w: %q", models.ErrInvalidURL, c.endpoint)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("access_key", c.accessKey).
		Get(u.String())
	if err != nil {
		return models.RateTable{}, fmt.Errorf("%w: %w", models.ErrNetwork, err)
	}

	var body latestResponse
	decodeErr := json.Unmarshal(resp.Body(), &body)

	if body.Error != nil || (body.Success != nil && !*body.Success) {
		info := "unsuccessful response"
		if body.Error != nil {
			info = fmt.Sprintf("%d %s: %s", body.Error.Code, body.Error.Type, body.Error.Info)
		}
		return models.RateTable{}, fmt.Errorf("%w: upstream %s", models.ErrNetwork, info)
	}
	if resp.IsError() {
		return models.RateTable{}, fmt.Errorf("%w: http status %d", models.ErrNetwork, resp.StatusCode())
	}
	if decodeErr != nil {
		return models.RateTable{}, fmt.Errorf("%w: %w", models.ErrDecode, decodeErr)
	}

	return c.buildTable(body)
}

func (c *RatesClient) buildTable(body latestResponse) (models.RateTable, error) {
	if body.Base == nil || body.Date == nil || body.Rates == nil {
		return models.RateTable{}, fmt.Errorf("%w: missing base, date or rates", models.ErrDecode)
	}
	base := *body.Base
	if !models.ValidCode(base) {
		return models.RateTable{}, fmt.Errorf("%w: bad base %q", models.ErrDecode, base)
	}
	if len(body.Rates) == 0 {
		return models.RateTable{}, fmt.Errorf("%w: empty rates", models.ErrDecode)
	}

	rates := make(map[string]float64, len(body.Rates)+1)
	for code, v := range body.Rates {
		if !models.ValidCode(code) {
			return models.RateTable{}, fmt.Errorf("%w: bad currency code %q", models.ErrDecode, code)
		}
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			return models.RateTable{}, fmt.Errorf("%w: bad rate for %s", models.ErrDecode, code)
		}
		rates[code] = *v
	}
	if r, ok := rates[base]; ok && r != 1.0 {
		return models.RateTable{}, fmt.Errorf("%w: base %s has rate %v", models.ErrDecode, base, r)
	}
	rates[base] = 1.0

	return models.RateTable{
		Base:      base,
		Date:      *body.Date,
		Rates:     rates,
		FetchedAt: c.now().UTC(),
	}, nil
}
