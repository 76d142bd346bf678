package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics хранит метрики Prometheus сервиса.
type Metrics struct {
	InsightsIngested *prometheus.CounterVec
	InsightsRejected *prometheus.CounterVec
	SnapshotSize     prometheus.Gauge
	CardsCurated     prometheus.Counter
	CardsRemoved     prometheus.Counter
	DigestsComposed  prometheus.Counter
	FetchErrors      *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// NewMetrics создаёт и регистрирует метрики один раз на процесс.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			InsightsIngested: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "battlecards_insights_ingested_total",
					Help: "Insights added to the snapshot",
				},
				[]string{"source"},
			),
			InsightsRejected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "battlecards_insights_rejected_total",
					Help: "Records rejected at the ingestion boundary",
				},
				[]string{"reason"},
			),
			SnapshotSize: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "battlecards_snapshot_insights",
					Help: "Number of insights in the current snapshot",
				},
			),
			CardsCurated: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "battlecards_cards_curated_total",
					Help: "Battle cards curated (including replacements)",
				},
			),
			CardsRemoved: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "battlecards_cards_removed_total",
					Help: "Battle cards removed from the curated list",
				},
			),
			DigestsComposed: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "battlecards_digests_composed_total",
					Help: "Digests composed",
				},
			),
			FetchErrors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "battlecards_fetch_errors_total",
					Help: "Failed source or snapshot fetches",
				},
				[]string{"target"},
			),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "battlecards_http_requests_total",
					Help: "HTTP requests by method and status",
				},
				[]string{"method", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "battlecards_http_request_duration_seconds",
					Help:    "HTTP request latency",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method"},
			),
		}
	})
	return sharedMetrics
}
