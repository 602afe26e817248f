package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/htmlkit/internal/errors"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func newTestRouter(m *Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chi.URLParam(r, "id"))
	})
	r.Post("/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	})
	return r
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	h := newTestRouter(m)

	for _, path := range []string{"/items/1", "/items/2"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fail", nil))

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/items/{id}", "200")); got != 2 {
		t.Errorf("requests_total{/items/{id},200} = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("/fail", "400")); got != 1 {
		t.Errorf("requests_total{/fail,400} = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.requestDuration.WithLabelValues("/items/{id}")); got != 2 {
		t.Errorf("request_duration_seconds count = %d, want 2", got)
	}
}

func TestMetricsMiddleware_Unmatched(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anything", nil))

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("unmatched", "200")); got != 1 {
		t.Errorf("requests_total{unmatched,200} = %v, want 1", got)
	}
}

func TestMetricsRecordFunctions(t *testing.T) {
	m := NewMetrics(
		WithRegistry(prometheus.NewRegistry()),
		WithNamespace("test"),
		WithConstLabels(prometheus.Labels{"env": "ci"}),
	)

	m.RecordRender(1024)
	m.RecordRender(10)
	if got := metricHistogramCount(t, m.renderedBytes); got != 2 {
		t.Errorf("rendered_bytes count = %d, want 2", got)
	}

	m.RecordRenderError(errors.New("H020"))
	m.RecordRenderError(context.DeadlineExceeded)
	m.RecordRenderError(fmt.Errorf("boom"))
	m.RecordRenderError(nil)
	for label, want := range map[string]float64{"document": 1, "timeout": 1, "internal": 1} {
		if got := metricCounterValue(t, m.renderErrors.WithLabelValues(label)); got != want {
			t.Errorf("render_errors_total{%s} = %v, want %v", label, got, want)
		}
	}

	m.WebSocketOpened()
	m.WebSocketOpened()
	m.WebSocketClosed()
	if got := metricGaugeValue(t, m.wsConnections); got != 1 {
		t.Errorf("websocket_connections = %v, want 1", got)
	}

	m.RecordWebSocketError("read")
	if got := metricCounterValue(t, m.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket_errors_total{read} = %v, want 1", got)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordRender(1)
	m.RecordRenderError(context.Canceled)
	m.WebSocketOpened()
	m.WebSocketClosed()
	m.RecordWebSocketError("write")
}

func TestMetricsRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithSubsystem("preview"))
	m.RecordRender(1)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "htmlkit_preview_rendered_bytes" {
			found = true
		}
	}
	if !found {
		t.Error("htmlkit_preview_rendered_bytes not registered")
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("H001"), "validation"},
		{errors.New("H010"), "config"},
		{fmt.Errorf("wrapped: %w", errors.New("H031")), "publish"},
		{context.Canceled, "canceled"},
		{fmt.Errorf("x"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
