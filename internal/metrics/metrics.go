package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments of the ad platform. These are
// operational counters for the process itself; the business aggregates live
// in Postgres and are served through the stats endpoints.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	AdsServed      prometheus.Counter
	AdsUnavailable prometheus.Counter
	ClicksRecorded prometheus.Counter
	ModerationHits prometheus.Counter
}

// New creates and registers the instruments under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		AdsServed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ads_served_total",
				Help:      "Ads successfully selected and shown",
			},
		),
		AdsUnavailable: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ads_unavailable_total",
				Help:      "Ad requests with no eligible campaign",
			},
		),
		ClicksRecorded: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clicks_recorded_total",
				Help:      "Clicks accepted, repeats included",
			},
		),
		ModerationHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "moderation_hits_total",
				Help:      "Campaign texts rejected by the content filter",
			},
		),
	}
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records one finished HTTP request. The route is the chi
// pattern, not the raw path, so cardinality stays bounded.
func (m *Metrics) RecordRequest(method, route string, status int, latency time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(latency.Seconds())
}
