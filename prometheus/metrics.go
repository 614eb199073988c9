package prometheus

import (
	"shop-service/pkg/config"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Cart metrics
	CartOperationsCounter prometheus.CounterVec

	// Checkout metrics
	CheckoutAttemptsCounter  prometheus.Counter
	CheckoutCompletedCounter prometheus.Counter
	CheckoutFailedCounter    prometheus.Counter

	// Order metrics
	OrderOperationsCounter prometheus.CounterVec

	// Feedback metrics
	FeedbackOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Cart metrics
	CartOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation"},
	)

	// Checkout metrics
	CheckoutAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_checkout_attempts_total",
			Help: "Total number of checkout attempts",
		},
	)

	CheckoutCompletedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_checkout_completed_total",
			Help: "Total number of completed checkouts",
		},
	)

	CheckoutFailedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_checkout_failed_total",
			Help: "Total number of failed checkouts",
		},
	)

	// Order metrics
	OrderOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation"},
	)

	// Feedback metrics
	FeedbackOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_feedback_operations_total",
			Help: "Total number of feedback operations",
		},
		[]string{"operation"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordCartOperation increments the counter for cart operations
func RecordCartOperation(operation string) {
	CartOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordOrderOperation increments the counter for order operations
func RecordOrderOperation(operation string) {
	OrderOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordFeedbackOperation increments the counter for feedback operations
func RecordFeedbackOperation(operation string) {
	FeedbackOperationsCounter.WithLabelValues(operation).Inc()
}
