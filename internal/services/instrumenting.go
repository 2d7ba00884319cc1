package services

import (
	"context"

	"currency-converter/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors used by the instrumenting decorator.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "currency_converter",
				Name:      "requests_total",
				Help:      "Rate fetches and conversions by outcome",
			},
			[]string{"method", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "currency_converter",
				Name:      "request_duration_seconds",
				Help:      "Duration of rate fetches and conversions",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.Requests, m.Duration)
	return m
}

type instrumentingConverter struct {
	metrics *Metrics
	next    Converter
}

func NewInstrumentingConverter(metrics *Metrics, next Converter) Converter {
	return &instrumentingConverter{metrics: metrics, next: next}
}

func (s *instrumentingConverter) observe(method string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = models.ErrorKind(err)
	}
	s.metrics.Requests.WithLabelValues(method, outcome).Inc()
}

func (s *instrumentingConverter) FetchRates(ctx context.Context) (models.RateTable, error) {
	timer := prometheus.NewTimer(s.metrics.Duration.WithLabelValues("fetch_rates"))
	defer timer.ObserveDuration()

	table, err := s.next.FetchRates(ctx)
	s.observe("fetch_rates", err)
	return table, err
}

func (s *instrumentingConverter) Convert(ctx context.Context, req models.ConversionRequest, table models.RateTable) (models.ConversionResult, error) {
	timer := prometheus.NewTimer(s.metrics.Duration.WithLabelValues("convert"))
	defer timer.ObserveDuration()

	res, err := s.next.Convert(ctx, req, table)
	s.observe("convert", err)
	return res, err
}

func (s *instrumentingConverter) Current() models.RateTable {
	return s.next.Current()
}
