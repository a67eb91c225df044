package gatewaysvc

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics replaces the teacher's hand-rolled sync/atomic Metrics struct
// (config/metrics.go) with standard Prometheus collectors, exposed at
// GET /metrics for scraping rather than as one-off JSON.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	jobsByStatus   *prometheus.CounterVec
	brokerPublish  *prometheus.CounterVec
	brokerConsume  *prometheus.CounterVec
	pushClients    prometheus.Gauge
	rateLimitDenied prometheus.Counter
}

// NewMetrics registers all collectors against the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_http_requests_total",
			Help: "Total HTTP requests handled by the gateway.",
		}, []string{"method", "path", "status"}),
		httpLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name: "gateway_http_request_duration_seconds",
			Help: "HTTP request latency in seconds.",
		}, []string{"method", "path"}),
		jobsByStatus: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_jobs_terminal_total",
			Help: "Jobs reaching a terminal status, by status.",
		}, []string{"status"}),
		brokerPublish: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_broker_publish_total",
			Help: "Broker publish attempts, by topic and outcome.",
		}, []string{"topic", "outcome"}),
		brokerConsume: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_broker_consume_total",
			Help: "Broker events consumed, by topic and event_type.",
		}, []string{"topic", "event_type"}),
		pushClients: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gateway_push_channel_clients",
			Help: "Currently connected push-channel clients.",
		}),
		rateLimitDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gateway_rate_limit_denied_total",
			Help: "Requests denied by the rate limiter.",
		}),
	}
}

// Middleware records request count and latency for every handled request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpLatency.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(c.Request.Method, path, http200Bucket(c.Writer.Status())).Inc()
	}
}

func http200Bucket(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Handler exposes the Prometheus exposition format at GET /metrics.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
