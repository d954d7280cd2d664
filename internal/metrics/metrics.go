package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_search",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weather_search",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// Searches counts weather payloads fetched from the upstream provider.
	Searches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_search",
		Subsystem: "weather",
		Name:      "upstream_fetches_total",
		Help:      "Weather payloads fetched from the upstream provider",
	}, []string{"mode", "units"})

	ProviderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_search",
		Subsystem: "weather",
		Name:      "provider_errors_total",
		Help:      "Failed upstream provider calls",
	}, []string{"provider"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_search",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"cache"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_search",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"cache"})

	CacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weather_search",
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Cache entries dropped by retention",
	}, []string{"cache"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		// The app ErrorHandler writes the response after middleware returns.
		code := c.Response().StatusCode()
		if err != nil {
			code = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
		}
		status := strconv.Itoa(code)

		httpRequestsTotal.WithLabelValues(c.Method(), path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
