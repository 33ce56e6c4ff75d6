package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency of every HTTP handler, by route template
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "watchwise_http_request_duration_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// Latency of the recommendation endpoints, which may include a model call
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "watchwise_recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 90},
	})

	RecommendRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "watchwise_recommend_requests_total",
		Help: "Total number of recommendation requests by response status",
	}, []string{"status"})
)

func Init() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		RecommendLatency,
		RecommendRequests,
	)
}

// HTTPMiddleware records the latency of every request under its route
// template so path parameters do not explode cardinality.
func HTTPMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}
