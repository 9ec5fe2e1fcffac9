// Prometheus instrumentation for HTTP traffic. Series are labelled by the
// registered Gin route (e.g. /amigos/editar/:id), never the raw URL, so ids
// and scanners probing random paths do not grow the series count.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedPath is the route label for requests that matched no route.
const unmatchedPath = "unmatched"

// sizeBuckets spans small JSON bodies up to multi-page PDF reports.
var sizeBuckets = prometheus.ExponentialBuckets(256, 4, 9) // 256B .. 16MiB

var httpMetrics = struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inflight prometheus.Gauge
	size     *prometheus.HistogramVec
}{
	requests: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"}),
	latency: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"}),
	inflight: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_inflight",
		Help: "Requests currently being served.",
	}),
	size: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "Response body size by method and route.",
		Buckets: sizeBuckets,
	}, []string{"method", "path"}),
}

// Metrics records count, latency, size and concurrency of every request.
// Mount promhttp.Handler() separately to expose them.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpMetrics.inflight.Inc()
		defer httpMetrics.inflight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedPath
		}
		m := c.Request.Method
		httpMetrics.requests.WithLabelValues(m, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpMetrics.latency.WithLabelValues(m, route).Observe(time.Since(start).Seconds())
		// -1 means no body was written (redirects, 204)
		if n := c.Writer.Size(); n >= 0 {
			httpMetrics.size.WithLabelValues(m, route).Observe(float64(n))
		}
	}
}
