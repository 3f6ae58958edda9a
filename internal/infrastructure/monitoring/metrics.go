package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// List metrics
	ListsCreated prometheus.Counter
	ListsRenamed prometheus.Counter
	ListsDeleted prometheus.Counter

	// Todo metrics
	TodosAdded        prometheus.Counter
	TodosDeleted      prometheus.Counter
	TodosToggled      *prometheus.CounterVec
	TodosCompletedAll prometheus.Counter

	// Validation metrics
	ValidationFailures *prometheus.CounterVec

	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter

	// Export metrics
	Exports *prometheus.CounterVec

	gatherer prometheus.Gatherer

	// Snapshot for the health endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current request totals for JSON responses
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	TotalDuration float64 `json:"total_duration_seconds"`
}

// NewMetrics registers all collectors on reg. Use a fresh
// prometheus.NewRegistry() per server so tests can build several.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todolists_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todolists_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todolists_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "route"},
		),

		// List metrics
		ListsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "todolists_lists_created_total",
			Help: "Total number of lists created",
		}),
		ListsRenamed: factory.NewCounter(prometheus.CounterOpts{
			Name: "todolists_lists_renamed_total",
			Help: "Total number of lists renamed",
		}),
		ListsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "todolists_lists_deleted_total",
			Help: "Total number of lists deleted",
		}),

		// Todo metrics
		TodosAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "todolists_todos_added_total",
			Help: "Total number of todos added",
		}),
		TodosDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "todolists_todos_deleted_total",
			Help: "Total number of todos deleted",
		}),
		TodosToggled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todolists_todos_toggled_total",
				Help: "Total number of todo completion changes",
			},
			[]string{"completed"},
		),
		TodosCompletedAll: factory.NewCounter(prometheus.CounterOpts{
			Name: "todolists_complete_all_total",
			Help: "Total number of complete-all operations",
		}),

		// Validation metrics
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todolists_validation_failures_total",
				Help: "Total number of rejected names",
			},
			[]string{"field", "reason"},
		),

		// Session metrics
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "todolists_sessions_active",
			Help: "Number of live sessions",
		}),
		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "todolists_sessions_created_total",
			Help: "Total number of sessions created",
		}),

		// Export metrics
		Exports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todolists_exports_total",
				Help: "Total number of exports served",
			},
			[]string{"format"},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, route).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status >= 400 {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordListCreated counts a created list
func (m *Metrics) RecordListCreated() { m.ListsCreated.Inc() }

// RecordListRenamed counts a renamed list
func (m *Metrics) RecordListRenamed() { m.ListsRenamed.Inc() }

// RecordListDeleted counts a deleted list
func (m *Metrics) RecordListDeleted() { m.ListsDeleted.Inc() }

// RecordTodoAdded counts an added todo
func (m *Metrics) RecordTodoAdded() { m.TodosAdded.Inc() }

// RecordTodoDeleted counts a deleted todo
func (m *Metrics) RecordTodoDeleted() { m.TodosDeleted.Inc() }

// RecordTodoToggled counts a completion change
func (m *Metrics) RecordTodoToggled(completed bool) {
	m.TodosToggled.WithLabelValues(strconv.FormatBool(completed)).Inc()
}

// RecordCompleteAll counts a complete-all operation
func (m *Metrics) RecordCompleteAll() { m.TodosCompletedAll.Inc() }

// RecordValidationFailure counts a rejected name
func (m *Metrics) RecordValidationFailure(field, reason string) {
	m.ValidationFailures.WithLabelValues(field, reason).Inc()
}

// RecordExport counts an export download
func (m *Metrics) RecordExport(format string) {
	m.Exports.WithLabelValues(format).Inc()
}

// SetSessionsActive sets the number of live sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// IncSessionsCreated increments the sessions created counter
func (m *Metrics) IncSessionsCreated() {
	m.SessionsCreated.Inc()
}

// GetSnapshot returns a copy of the request totals
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
