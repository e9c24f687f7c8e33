// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valet",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "valet",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	ParkedCarTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valet",
		Name:      "parked_car_transitions_total",
		Help:      "Parked car lifecycle transitions by resulting status.",
	}, []string{"status"})

	Payments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valet",
		Name:      "payments_total",
		Help:      "Payments recorded at drop-off by payment type.",
	}, []string{"payment_type"})

	PaymentStatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valet",
		Name:      "payment_status_updates_total",
		Help:      "Payment status updates applied from the processor queue.",
	}, []string{"status"})
)
