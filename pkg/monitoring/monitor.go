package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// PointsCredited 已提交的积分发放总量
	PointsCredited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_points_credited_total",
			Help: "Total points credited to learners, by completion source",
		},
		[]string{"source"},
	)

	Completions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_completions_total",
			Help: "Completion triggers, by kind and result (credited, duplicate)",
		},
		[]string{"kind", "result"},
	)

	StorageConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progression_storage_conflicts_total",
			Help: "Optimistic concurrency conflicts, by operation",
		},
		[]string{"op"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(PointsCredited)
	prometheus.MustRegister(Completions)
	prometheus.MustRegister(StorageConflicts)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
