// Package metrics defines the Prometheus metrics of the hotelbook server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth event outcomes.
const (
	ResultOK           = "ok"
	ResultInvalid      = "invalid"
	ResultUnauthorized = "unauthorized"
	ResultError        = "error"
)

// Metrics holds the server's custom collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	AuthEvents      *prometheus.CounterVec
	BookingEvents   *prometheus.CounterVec
	SessionsSwept   prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	RateLimitedHits prometheus.Counter

	registry *prometheus.Registry
}

// New creates a registry with the Go and process collectors plus the
// hotelbook metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := NewMetrics(registry)
	m.registry = registry
	return m
}

// NewMetrics creates the hotelbook metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotelbook_auth_events_total",
				Help: "Authentication operations by event and result",
			},
			[]string{"event", "result"},
		),
		BookingEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotelbook_booking_events_total",
				Help: "Booking operations by action and result",
			},
			[]string{"action", "result"},
		),
		SessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotelbook_sessions_swept_total",
			Help: "Expired sessions removed by the sweeper",
		}),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotelbook_http_requests_total",
				Help: "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hotelbook_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RateLimitedHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hotelbook_rate_limited_total",
			Help: "Requests rejected by the auth rate limiter",
		}),
	}

	reg.MustRegister(m.AuthEvents, m.BookingEvents, m.SessionsSwept,
		m.HTTPRequests, m.HTTPDuration, m.RateLimitedHits)

	return m
}

// Handler serves the registry created by New in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordAuth(event, result string) {
	if m == nil {
		return
	}
	m.AuthEvents.WithLabelValues(event, result).Inc()
}

func (m *Metrics) RecordBooking(action, result string) {
	if m == nil {
		return
	}
	m.BookingEvents.WithLabelValues(action, result).Inc()
}

func (m *Metrics) RecordSwept(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsSwept.Add(float64(n))
}

func (m *Metrics) RecordHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedHits.Inc()
}
