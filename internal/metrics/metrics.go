package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	bookingTransitions *prometheus.CounterVec
	acceptConflicts    prometheus.Counter
	otpIssued          *prometheus.CounterVec
	otpVerifications   *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salongo_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salongo_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		bookingTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salongo_booking_transitions_total",
				Help: "Booking status changes by target status",
			},
			[]string{"to"},
		),
		acceptConflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "salongo_booking_accept_conflicts_total",
				Help: "Accept attempts that lost the race for a booking",
			},
		),
		otpIssued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salongo_otp_issued_total",
				Help: "OTP codes handed to a sender",
			},
			[]string{"sender"},
		),
		otpVerifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salongo_otp_verifications_total",
				Help: "OTP verification attempts by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		m.requestDuration,
		m.requestTotal,
		m.bookingTransitions,
		m.acceptConflicts,
		m.otpIssued,
		m.otpVerifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the collectors, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// A nil *Metrics is valid and records nothing.

func (m *Metrics) BookingTransition(to string) {
	if m == nil {
		return
	}
	m.bookingTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) AcceptConflict() {
	if m == nil {
		return
	}
	m.acceptConflicts.Inc()
}

func (m *Metrics) OTPIssued(sender string) {
	if m == nil {
		return
	}
	m.otpIssued.WithLabelValues(sender).Inc()
}

func (m *Metrics) OTPVerification(result string) {
	if m == nil {
		return
	}
	m.otpVerifications.WithLabelValues(result).Inc()
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
