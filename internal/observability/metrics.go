package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "helpdesk_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"path", "method"},
	)

	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_http_errors_total",
			Help: "Total number of error responses by error code",
		},
		[]string{"path", "method", "code"},
	)

	ticketsTriagedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_tickets_triaged_total",
			Help: "Total number of tickets triaged by category and routing outcome",
		},
		[]string{"category", "status"},
	)
)

// Metrics exposes the service's Prometheus instruments.
type Metrics struct{}

// NewMetrics initializes metrics (instruments register on import).
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordRequest increments request counters and observes duration.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	httpErrorsTotal.WithLabelValues(path, method, code).Inc()
}

// RecordTriage counts a triage decision by category and routed status.
func (m *Metrics) RecordTriage(category, status string) {
	if m == nil {
		return
	}
	ticketsTriagedTotal.WithLabelValues(category, status).Inc()
}
