package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trackit",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Total number of backend API calls broken down by resource, method and result.",
	}, []string{"resource", "method", "result"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trackit",
		Subsystem: "backend",
		Name:      "latency_seconds",
		Help:      "Latency distribution for backend API calls.",
		Buckets: []float64{
			0.005, 0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5, 10,
		},
	}, []string{"resource", "method", "result"})
)

// result buckets a status the way the dashboards group it. Zero means the
// call never got a response.
func result(status int) string {
	switch {
	case status == 0:
		return "network"
	case status >= 500:
		return "5xx"
	case status >= 400:
		return strconv.Itoa(status)
	}
	return "2xx"
}

func observe(resource, method string, status int, started time.Time) {
	r := result(status)
	upstreamRequests.WithLabelValues(resource, method, r).Inc()
	upstreamLatency.WithLabelValues(resource, method, r).Observe(time.Since(started).Seconds())
}
