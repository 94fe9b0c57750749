package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(upstreamRequests, upstreamLatencyMs, tokenRefreshes) }

var (
	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Requests to tool services by service and HTTP status (0 = transport error).",
		},
		[]string{"service", "status"},
	)

	upstreamLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_latency_ms",
			Help:    "Tool service latency distribution in milliseconds.",
			Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
		},
		[]string{"service"},
	)

	tokenRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_token_refreshes_total",
			Help: "Access token acquisitions by trigger and result.",
		},
		[]string{"trigger", "success"}, // trigger: 'missing', 'unauthorized'
	)
)

func ObserveUpstream(service string, status int, latencyMs int64) {
	upstreamRequests.WithLabelValues(norm(service), strconv.Itoa(status)).Inc()
	upstreamLatencyMs.WithLabelValues(norm(service)).Observe(float64(latencyMs))
}

func IncTokenRefresh(trigger string, success bool) {
	tokenRefreshes.WithLabelValues(norm(trigger), strconv.FormatBool(success)).Inc()
}
