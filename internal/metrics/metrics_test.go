package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/auth/status", http.MethodGet, 200)
	m.ObserveRequest("/api/auth/status", http.MethodGet, 200)
	m.ObserveAuthCheck("anonymous")
	m.ObserveLogout("failed")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("/api/auth/status", "GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.authChecks.WithLabelValues("anonymous")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.logouts.WithLabelValues("failed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/", "GET", 200)
		m.ObserveAuthCheck("error")
		m.ObserveLogout("ok")
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveAuthCheck("authenticated")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `nutrition_auth_checks_total{outcome="authenticated"} 1`)
}
