package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "universities_api"

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AccountsCreated     prometheus.Counter
	PasswordsChanged    prometheus.Counter
	UniversityMutations *prometheus.CounterVec
	NotificationsFailed prometheus.Counter
}

// New creates the metrics on a dedicated registry, which also carries the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		AccountsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_created_total",
			Help:      "Total number of accounts created",
		}),
		PasswordsChanged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passwords_changed_total",
			Help:      "Total number of successful password changes",
		}),
		UniversityMutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "university_mutations_total",
			Help:      "University writes by operation (create, update, delete)",
		}, []string{"op"}),
		NotificationsFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Account notifications that could not be published",
		}),
	}
}

// The helpers below accept a nil receiver so callers can run without metrics.

func (m *Metrics) IncAccountsCreated() {
	if m != nil {
		m.AccountsCreated.Inc()
	}
}

func (m *Metrics) IncPasswordsChanged() {
	if m != nil {
		m.PasswordsChanged.Inc()
	}
}

func (m *Metrics) IncUniversityMutation(op string) {
	if m != nil {
		m.UniversityMutations.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) IncNotificationsFailed() {
	if m != nil {
		m.NotificationsFailed.Inc()
	}
}
