package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "project_hub"

// Metrics holds all prometheus series for the service
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database
	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge

	// External calls
	ExternalAPICallsTotal   *prometheus.CounterVec
	ExternalAPICallDuration *prometheus.HistogramVec

	// Business
	NotificationsFannedOut *prometheus.CounterVec
	FanoutFailuresTotal    *prometheus.CounterVec
	UnreadPollsTotal       prometheus.Counter
	WSConnectionsActive    prometheus.Gauge
	EventsPublishedTotal   *prometheus.CounterVec
}

// New creates metrics registered on a fresh registry
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates metrics registered on the given registry
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries",
		}, []string{"operation", "table", "status"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation", "table"}),

		DBConnectionsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_open",
			Help:      "Open database connections",
		}),

		DBConnectionsIdle: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_idle",
			Help:      "Idle database connections",
		}),

		DBConnectionsInUse: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_in_use",
			Help:      "Database connections in use",
		}),

		ExternalAPICallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_api_calls_total",
			Help:      "Total calls to external services",
		}, []string{"service", "operation", "status"}),

		ExternalAPICallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_api_call_duration_seconds",
			Help:      "External service call latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),

		NotificationsFannedOut: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_fanned_out_total",
			Help:      "Notification rows created by fan-out, by trigger type",
		}, []string{"type"}),

		FanoutFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fanout_failures_total",
			Help:      "Fan-out operations that returned an error",
		}, []string{"type"}),

		UnreadPollsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unread_polls_total",
			Help:      "Unread count poll ticks executed",
		}),

		WSConnectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections_active",
			Help:      "Active websocket connections",
		}),

		EventsPublishedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Events published on the in-process bus, by topic",
		}, []string{"topic"}),
	}
}

// Registry returns the prometheus registry backing these metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.safeExecute(func() {
		m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordDBQuery implements database.MetricsRecorder
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute(func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		if table == "" {
			table = "unknown"
		}
		m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	})
}

// UpdateDBStats implements database.MetricsRecorder
func (m *Metrics) UpdateDBStats(openConns, idleConns, inUseConns int) {
	m.safeExecute(func() {
		m.DBConnectionsOpen.Set(float64(openConns))
		m.DBConnectionsIdle.Set(float64(idleConns))
		m.DBConnectionsInUse.Set(float64(inUseConns))
	})
}

// RecordExternalAPICall records a call to an external dependency
func (m *Metrics) RecordExternalAPICall(service, operation string, duration time.Duration, err error) {
	m.safeExecute(func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		m.ExternalAPICallsTotal.WithLabelValues(service, operation, status).Inc()
		m.ExternalAPICallDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
	})
}

// RecordFanout records the outcome of one fan-out operation
func (m *Metrics) RecordFanout(notificationType string, created int, err error) {
	m.safeExecute(func() {
		if err != nil {
			m.FanoutFailuresTotal.WithLabelValues(notificationType).Inc()
			return
		}
		m.NotificationsFannedOut.WithLabelValues(notificationType).Add(float64(created))
	})
}

// IncUnreadPolls counts one unread poll tick
func (m *Metrics) IncUnreadPolls() {
	m.safeExecute(func() {
		m.UnreadPollsTotal.Inc()
	})
}

// RecordEventPublished records one event published on the bus
func (m *Metrics) RecordEventPublished(topic string) {
	m.safeExecute(func() {
		m.EventsPublishedTotal.WithLabelValues(topic).Inc()
	})
}

// safeExecute guards metric updates against panics so instrumentation
// can never take down a request path.
func (m *Metrics) safeExecute(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
