// Package metrics registers the service's Prometheus collectors on the
// default registry. Every name carries the college_orders namespace.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "college_orders"

// unmatchedPath labels requests that hit no route, so scanners probing
// random URLs cannot grow the label set.
const unmatchedPath = "unmatched"

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// OrdersSubmittedTotal counts confirmed orders per college.
	OrdersSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Total number of confirmed orders",
		},
		[]string{"college"},
	)

	// OrderUnits observes the unit count of confirmed orders.
	OrderUnits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_units",
			Help:      "Units per confirmed order",
			Buckets:   []float64{6, 12, 24, 48, 96, 192, 384, 768},
		},
	)

	// EmailsSentTotal counts order email attempts by outcome.
	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Total number of order email attempts",
		},
		[]string{"status"},
	)

	// ValidationFailuresTotal counts failed form validations per college.
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Total number of failed order validations",
		},
		[]string{"college"},
	)

	// UpstreamRequestsTotal counts calls to the college API by endpoint and status.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of college API requests",
		},
		[]string{"endpoint", "status"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)

	// CircuitBreakerState reports 0 closed, 1 open, 2 half-open per breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_size",
			Help:      "Current cache size",
		},
		[]string{"cache"},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_capacity",
			Help:      "Cache capacity",
		},
		[]string{"cache"},
	)
)

// PrometheusMiddleware records request counts and latency labelled by the
// route template, so /colleges/:college/drafts/:id is one series.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordOrderSubmitted records a confirmed order.
func RecordOrderSubmitted(college string, units int) {
	OrdersSubmittedTotal.WithLabelValues(college).Inc()
	OrderUnits.Observe(float64(units))
}

// RecordEmail records the outcome of an order email ("sent" or "failed").
func RecordEmail(status string) {
	EmailsSentTotal.WithLabelValues(status).Inc()
}

// RecordValidationFailure records a rejected submit.
func RecordValidationFailure(college string) {
	ValidationFailuresTotal.WithLabelValues(college).Inc()
}

// RecordUpstreamRequest records a college API call.
func RecordUpstreamRequest(endpoint string, status int) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// RecordRateLimited records a rejected request; scope is "ip" or "admin".
func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}

// SetCircuitBreakerState publishes the state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}
