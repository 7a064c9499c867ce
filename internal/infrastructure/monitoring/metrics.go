package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	PurchaseAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_attempts_total",
			Help: "Total number of purchase attempts",
		},
	)

	PurchaseSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_success_total",
			Help: "Total number of successful purchases",
		},
	)

	PurchaseFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchase_failure_total",
			Help: "Total number of failed purchases",
		},
		[]string{"reason"},
	)

	PurchaseItemsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_items_recorded_total",
			Help: "Total number of purchase history rows written",
		},
	)

	PurchaseAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_amount_total",
			Help: "Total amount of money moved by completed purchases",
		},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}
