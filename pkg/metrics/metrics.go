package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adboard_cache_lookups_total",
			Help: "Ad list cache lookups by outcome (hit, miss, stale, error)",
		},
		[]string{"outcome"},
	)

	WebhookDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adboard_webhook_deliveries_total",
			Help: "Payment webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)

	ResponseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)
)

func init() {
	prometheus.MustRegister(CacheLookups)
	prometheus.MustRegister(WebhookDeliveries)
	prometheus.MustRegister(ResponseTime)
}

// Recorder feeds component outcomes into the package counters.
type Recorder struct{}

// ObserveCache counts one cache lookup.
func (Recorder) ObserveCache(outcome string) {
	CacheLookups.WithLabelValues(outcome).Inc()
}

// ObserveWebhook counts one webhook delivery.
func (Recorder) ObserveWebhook(outcome string) {
	WebhookDeliveries.WithLabelValues(outcome).Inc()
}
