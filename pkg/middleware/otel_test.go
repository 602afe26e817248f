package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordedSpan struct {
	noop.Span

	mu     sync.Mutex
	name   string
	kind   trace.SpanKind
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	ended  bool
}

func (s *recordedSpan) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

func (s *recordedSpan) End(...trace.SpanEndOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
}

type recordingTracer struct {
	noop.Tracer

	mu    sync.Mutex
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, kind: cfg.SpanKind(), attrs: map[attribute.Key]attribute.Value{}}
	s.SetAttributes(cfg.Attributes()...)

	t.mu.Lock()
	t.spans = append(t.spans, s)
	t.mu.Unlock()
	return trace.ContextWithSpan(ctx, s), s
}

func TestOpenTelemetry(t *testing.T) {
	tracer := &recordingTracer{}

	var inHandler trace.Span
	r := chi.NewRouter()
	r.Use(OpenTelemetry(
		WithTracer(tracer),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("client", r.Header.Get("X-Client"))}
		}),
	))
	r.Get("/docs/{name}", func(w http.ResponseWriter, r *http.Request) {
		inHandler = SpanFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/docs/readme", nil)
	req.Header.Set("X-Client", "cli")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	if len(tracer.spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(tracer.spans))
	}

	ok := tracer.spans[0]
	if ok.name != "GET /docs/{name}" {
		t.Errorf("span name = %q, want route pattern", ok.name)
	}
	if ok.kind != trace.SpanKindServer {
		t.Errorf("span kind = %v, want server", ok.kind)
	}
	if !ok.ended {
		t.Error("span not ended")
	}
	if got := ok.attrs["http.status_code"].AsInt64(); got != http.StatusNoContent {
		t.Errorf("http.status_code = %d", got)
	}
	if got := ok.attrs["http.target"].AsString(); got != "/docs/readme" {
		t.Errorf("http.target = %q", got)
	}
	if got := ok.attrs["client"].AsString(); got != "cli" {
		t.Errorf("client = %q", got)
	}
	if ok.status != codes.Unset {
		t.Errorf("status = %v, want unset", ok.status)
	}
	if inHandler != trace.Span(ok) {
		t.Error("handler did not see the request span")
	}

	if failed := tracer.spans[1]; failed.status != codes.Error {
		t.Errorf("5xx status = %v, want error", failed.status)
	}
}

func TestOpenTelemetry_Filter(t *testing.T) {
	tracer := &recordingTracer{}
	h := OpenTelemetry(
		WithTracer(tracer),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/render", nil))

	if len(tracer.spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(tracer.spans))
	}
	if got := tracer.spans[0].name; got != "GET unmatched" {
		t.Errorf("span name = %q", got)
	}
}

func TestFormatSpanName(t *testing.T) {
	if got := formatSpanName("POST", ""); got != "POST /" {
		t.Errorf("formatSpanName = %q", got)
	}
}
