package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "fiatprices_"

// Service constants
const (
	ServiceBackfill = "backfill"
	ServiceSnapshot = "snapshot"
)

// Metrics holds every collector on its own registry. Instances are
// independent, so each process (and each test) constructs its own and
// passes it to the services that record into it.
type Metrics struct {
	registry *prometheus.Registry

	// PriceGauge exports the latest known price per market and currency.
	// Cardinality: markets × currencies, both small fixed sets.
	PriceGauge *prometheus.GaugeVec

	// SourceRequestsTotal counts requests to the external price source.
	// Cardinality: ~2 services × 3 statuses.
	SourceRequestsTotal *prometheus.CounterVec

	// BackfillDaysFilled counts days resolved with real source data
	BackfillDaysFilled *prometheus.CounterVec

	// BackfillGapMarkers counts gap-marker records written in no-gaps mode
	BackfillGapMarkers *prometheus.CounterVec

	// BackfillFetchErrors counts failed day fetches
	BackfillFetchErrors *prometheus.CounterVec

	// BackfillRunDuration tracks how long a full backfill run takes
	BackfillRunDuration prometheus.Histogram
}

// New creates a Metrics instance with all collectors registered on a
// fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		PriceGauge: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: MetricsPrefix + "price",
				Help: "Latest fetched price per market and currency",
			},
			[]string{"market", "currency"},
		),
		SourceRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "source_requests_total",
				Help: "Total number of requests to the external price source",
			},
			[]string{"service", "status"},
		),
		BackfillDaysFilled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "backfill_days_filled_total",
				Help: "Days backfilled with fetched prices per market",
			},
			[]string{"market"},
		),
		BackfillGapMarkers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "backfill_gap_markers_total",
				Help: "Gap-marker records written per market",
			},
			[]string{"market"},
		),
		BackfillFetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricsPrefix + "backfill_fetch_errors_total",
				Help: "Failed historical day fetches per market",
			},
			[]string{"market"},
		),
		BackfillRunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricsPrefix + "backfill_run_duration_seconds",
				Help:    "Time taken for a full backfill run across all markets",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
}

// Handler serves this instance's collectors in text exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordPrices updates the price gauges from a current snapshot payload
func (m *Metrics) RecordPrices(prices map[string]map[string]float64) {
	for market, byCurrency := range prices {
		for currency, value := range byCurrency {
			m.PriceGauge.WithLabelValues(market, currency).Set(value)
		}
	}
}

// RecordBackfillRun records the duration of a completed backfill run
func (m *Metrics) RecordBackfillRun(start time.Time) {
	duration := time.Since(start)
	m.BackfillRunDuration.Observe(duration.Seconds())
	log.Printf("Metrics: backfill run took %.2fs", duration.Seconds())
}
