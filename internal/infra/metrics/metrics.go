package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricewatch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricewatch_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Alert lifecycle metrics
	AlertsRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pricewatch_alerts_registered_total",
			Help: "Total number of alerts registered",
		},
	)

	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricewatch_evaluations_total",
			Help: "Total number of evaluation calls",
		},
		[]string{"source"},
	)

	AlertsFiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricewatch_alerts_fired_total",
			Help: "Total number of alerts fired",
		},
		[]string{"source"},
	)

	NotificationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pricewatch_notification_failures_total",
			Help: "Total number of push deliveries that failed",
		},
	)

	// Poll loop metrics
	PollTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricewatch_poll_ticks_total",
			Help: "Total number of poll ticks",
		},
		[]string{"status"}, // status: ok, skipped
	)

	PollTickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricewatch_poll_tick_duration_seconds",
			Help:    "Time taken to complete one poll tick",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	PriceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricewatch_price_fetches_total",
			Help: "Total number of spot price fetches",
		},
		[]string{"status"}, // status: success, error
	)

	// Panic recovery
	PanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricewatch_panics_recovered_total",
			Help: "Total number of panics recovered",
		},
		[]string{"component"},
	)
)
