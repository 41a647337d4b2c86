package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the counters the HTTP layer records.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	authChecks *prometheus.CounterVec
	logouts    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrition_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		authChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrition_auth_checks_total",
			Help: "Session checks by outcome.",
		}, []string{"outcome"}),
		logouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nutrition_logouts_total",
			Help: "Logouts by upstream sign-out result.",
		}, []string{"upstream"}),
	}
	m.registry.MustRegister(m.requests, m.authChecks, m.logouts)
	return m
}

func (m *Metrics) ObserveRequest(route, method string, code int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
}

// ObserveAuthCheck records one of: anonymous, authenticated, rejected, error.
func (m *Metrics) ObserveAuthCheck(outcome string) {
	if m == nil {
		return
	}
	m.authChecks.WithLabelValues(outcome).Inc()
}

// ObserveLogout records one of: skipped, ok, failed.
func (m *Metrics) ObserveLogout(upstream string) {
	if m == nil {
		return
	}
	m.logouts.WithLabelValues(upstream).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
