package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveLogin("citizen", "success")
	m.ObserveUpload(10)
	h := m.Middleware(http.NotFoundHandler())
	assert.NotNil(t, h)
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLogin("officer", "failure")
	m.ObserveLogin("officer", "failure")
	m.ObserveUpload(2048)

	assert.InDelta(t, 2, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("officer", "failure")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.DocumentsUploaded), 0)
	assert.InDelta(t, 2048, testutil.ToFloat64(m.DocumentBytes), 0)
}

func TestMiddleware_LabelsRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPDuration))
}
