package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "raffle"

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	PurchasesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_created_total",
		Help:      "Purchases created, split by whether they earned entries.",
	}, []string{"qualifying"})

	EntriesAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_awarded_total",
		Help:      "Raffle entries credited to users.",
	})
)

func ObservePurchase(entries int) {
	if entries > 0 {
		PurchasesCreated.WithLabelValues("true").Inc()
		EntriesAwarded.Add(float64(entries))
		return
	}
	PurchasesCreated.WithLabelValues("false").Inc()
}
