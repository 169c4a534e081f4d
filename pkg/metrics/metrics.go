package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics коллекторы Prometheus для бота записи
type Metrics struct {
	EventsTotal         *prometheus.CounterVec
	TransitionsTotal    *prometheus.CounterVec
	RejectionsTotal     *prometheus.CounterVec
	BookingsCreated     prometheus.Counter
	FinalizeFailures    *prometheus.CounterVec
	FinalizeDuration    prometheus.Histogram
	ActiveSessions      prometheus.Gauge
	DroppedEvents       prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registerer prometheus.Registerer
	service    string
}

// New регистрирует метрики в reg. Для тестов передавайте prometheus.NewRegistry()
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_bot_events_total",
			Help:        "Inbound conversation events by kind",
			ConstLabels: labels,
		}, []string{"kind"}),

		TransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_bot_transitions_total",
			Help:        "State machine transitions",
			ConstLabels: labels,
		}, []string{"from", "to"}),

		RejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_bot_rejections_total",
			Help:        "Rejected inputs by state and reason",
			ConstLabels: labels,
		}, []string{"state", "reason"}),

		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_bot_bookings_created_total",
			Help:        "Bookings persisted after confirmation",
			ConstLabels: labels,
		}),

		FinalizeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_bot_finalize_failures_total",
			Help:        "Failed booking finalizations",
			ConstLabels: labels,
		}, []string{"reason"}),

		FinalizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "booking_bot_finalize_duration_seconds",
			Help:        "Duration of booking finalization",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}),

		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_bot_active_sessions",
			Help:        "Conversations currently in progress",
			ConstLabels: labels,
		}),

		DroppedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_bot_dropped_events_total",
			Help:        "Events dropped by the per-user rate limiter",
			ConstLabels: labels,
		}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by route, method and status",
			ConstLabels: labels,
		}, []string{"route", "method", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"route", "method"}),

		registerer: reg,
		service:    serviceName,
	}

	reg.MustRegister(
		m.EventsTotal,
		m.TransitionsTotal,
		m.RejectionsTotal,
		m.BookingsCreated,
		m.FinalizeFailures,
		m.FinalizeDuration,
		m.ActiveSessions,
		m.DroppedEvents,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// RegisterDBStats добавляет статистику пула соединений
func (m *Metrics) RegisterDBStats(db *sql.DB, dbName string) {
	m.registerer.MustRegister(collectors.NewDBStatsCollector(db, dbName))
}

func (m *Metrics) ObserveEvent(kind string) {
	m.EventsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveTransition(from, to string) {
	m.TransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveRejection(state, reason string) {
	m.RejectionsTotal.WithLabelValues(state, reason).Inc()
}

func (m *Metrics) ObserveBookingCreated(d time.Duration) {
	m.BookingsCreated.Inc()
	m.FinalizeDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveFinalizeFailure(reason string, d time.Duration) {
	m.FinalizeFailures.WithLabelValues(reason).Inc()
	m.FinalizeDuration.Observe(d.Seconds())
}

func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) ObserveDroppedEvent() {
	m.DroppedEvents.Inc()
}

func (m *Metrics) ObserveHTTPRequest(route, method string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
