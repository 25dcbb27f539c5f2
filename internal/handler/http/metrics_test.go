package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo-api/internal/observability/metrics"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, method, path, status string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Write(m))
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, method, path string) uint64 {
	t.Helper()
	m := &dto.Metric{}
	obs, err := metrics.HTTPResponseSize.GetMetricWithLabelValues(method, path)
	require.NoError(t, err)
	require.NoError(t, obs.(interface{ Write(*dto.Metric) error }).Write(m))
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsMiddleware_NormalizesPath(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	before := counterValue(t, http.MethodGet, "/todos/:id", "200")
	for _, p := range []string{"/todos/1", "/todos/2", "/todos/3"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, before+3, counterValue(t, http.MethodGet, "/todos/:id", "200"))
}

func TestMetricsMiddleware_StatusCodes(t *testing.T) {
	tests := []struct {
		method string
		status int
		label  string
	}{
		{method: http.MethodGet, status: http.StatusNoContent, label: "204"},
		{method: http.MethodPost, status: http.StatusCreated, label: "201"},
		{method: http.MethodPost, status: http.StatusBadRequest, label: "400"},
		{method: http.MethodDelete, status: http.StatusInternalServerError, label: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			before := counterValue(t, tt.method, "/todos", tt.label)
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, "/todos", nil))
			assert.Equal(t, before+1, counterValue(t, tt.method, "/todos", tt.label))
		})
	}
}

func TestMetricsMiddleware_ObservesResponseSize(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(`{"id":1,"title":"t","content":"c"}`))
	}))

	before := histogramCount(t, http.MethodPut, "/todos/:id")
	req := httptest.NewRequest(http.MethodPut, "/todos/1", strings.NewReader(`{"title":"t","content":"c"}`))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, histogramCount(t, http.MethodPut, "/todos/:id"))
}

func TestMetricsMiddleware_InFlightReturnsToBaseline(t *testing.T) {
	read := func() float64 {
		m := &dto.Metric{}
		require.NoError(t, metrics.HTTPRequestsInFlight.Write(m))
		return m.GetGauge().GetValue()
	}

	baseline := read()
	var during float64
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = read()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/todos", nil))

	assert.Equal(t, baseline+1, during)
	assert.Equal(t, baseline, read())
}

func TestMetricsHandler(t *testing.T) {
	metrics.RecordTodoOperation("list", metrics.ResultSuccess)

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "todo_operations_total")
}

func BenchmarkMetricsMiddleware(b *testing.B) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/todos/42", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
