package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "appointments_booked_total",
			Help: "Total number of appointments successfully booked",
		},
	)

	bookingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_rejected_total",
			Help: "Total number of bookings rejected by the slot guard",
		},
		[]string{"reason"},
	)

	bookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Total number of bookings lost to a concurrent booking of the same slot",
		},
	)

	statusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointment_status_transitions_total",
			Help: "Total number of appointment status transitions",
		},
		[]string{"from_status", "to_status"},
	)

	notificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of appointment notifications sent",
		},
		[]string{"kind"},
	)
)

// Handler returns the Prometheus metrics HTTP handler wrapped for gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// FullPath gives the route template, keeping label cardinality
		// bounded; unmatched routes collapse to "unmatched".
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// --- Business metric helpers ---

// RecordBookingCreated records a successful appointment booking.
func RecordBookingCreated() {
	bookingsCreated.Inc()
}

// RecordBookingRejected records a booking turned away by the guard.
func RecordBookingRejected(reason string) {
	bookingsRejected.WithLabelValues(reason).Inc()
}

// RecordBookingConflict records a booking lost to a concurrent write.
func RecordBookingConflict() {
	bookingConflicts.Inc()
}

// RecordStatusTransition records an appointment status change.
func RecordStatusTransition(fromStatus, toStatus string) {
	statusTransitions.WithLabelValues(fromStatus, toStatus).Inc()
}

// RecordNotificationSent records a sent notification by kind.
func RecordNotificationSent(kind string) {
	notificationsSent.WithLabelValues(kind).Inc()
}
