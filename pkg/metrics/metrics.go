package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics records request, login, and snapshot-write activity.
type AppMetrics struct {
	requestDuration *prometheus.HistogramVec
	requests        *prometheus.CounterVec
	logins          *prometheus.CounterVec
	snapshotWrites  *prometheus.CounterVec
}

// New registers the application metrics on the provided registerer.
func New(reg prometheus.Registerer) *AppMetrics {
	if reg == nil {
		return &AppMetrics{}
	}
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by status class.",
	}, []string{"method", "route", "status"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	snapshotWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_writes_total",
		Help: "Whole-collection snapshot writes by collection key.",
	}, []string{"collection"})
	reg.MustRegister(requestDuration, requests, logins, snapshotWrites)
	return &AppMetrics{
		requestDuration: requestDuration,
		requests:        requests,
		logins:          logins,
		snapshotWrites:  snapshotWrites,
	}
}

// ObserveRequest records one served HTTP request.
func (m *AppMetrics) ObserveRequest(method, route, status string, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncLogin counts a login attempt with the given outcome label.
func (m *AppMetrics) IncLogin(outcome string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// IncSnapshotWrite counts a persisted collection snapshot.
func (m *AppMetrics) IncSnapshotWrite(collection string) {
	if m == nil || m.snapshotWrites == nil {
		return
	}
	m.snapshotWrites.WithLabelValues(collection).Inc()
}
