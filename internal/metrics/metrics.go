package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "backoffice"

// Outcome labels for mutation counters.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the collectors registered for the API.
type Metrics struct {
	mutations     *prometheus.CounterVec
	auditFailures *prometheus.CounterVec
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Resource mutations by resource, action and outcome.",
		}, []string{"resource", "action", "outcome"}),
		auditFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_failures_total",
			Help:      "Audit entries that could not be written or published.",
		}, []string{"stage"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.mutations, m.auditFailures, m.requests, m.duration)
	return m
}

func (m *Metrics) Mutation(resource, action string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.mutations.WithLabelValues(resource, action, outcome).Inc()
}

// AuditFailure counts a failed audit stage ("store" or "publish").
func (m *Metrics) AuditFailure(stage string) {
	if m == nil {
		return
	}
	m.auditFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) Request(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
