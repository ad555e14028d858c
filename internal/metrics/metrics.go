package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint", "status"},
	)
	feedRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_runs_total",
			Help: "Total number of feed adapter runs by outcome.",
		},
		[]string{"source", "outcome"},
	)
	feedListingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_listings_total",
			Help: "Total number of listings upserted per feed source.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(feedRunsTotal)
	prometheus.MustRegister(feedListingsTotal)
}

// RecordRequest records metrics for one HTTP request.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordFeedRun records the outcome of one feed adapter run.
func RecordFeedRun(source string, listings int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	feedRunsTotal.WithLabelValues(source, outcome).Inc()
	if listings > 0 {
		feedListingsTotal.WithLabelValues(source).Add(float64(listings))
	}
}

// classifyStatus maps an HTTP status code to its class label.
func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

// Handler returns the HTTP handler exporting Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
