package preview

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/htmlkit/pkg/markup"
)

// Config configures the preview server.
type Config struct {
	// Address is the TCP address to listen on.
	Address string

	// Builder renders documents. Nil selects markup.Default().
	Builder *markup.Builder

	// Charset is the output charset of rendered markup. Empty means UTF-8.
	Charset string

	// Minify minifies every response, not only those requested with
	// ?minify=1.
	Minify bool

	// MaxDocumentSize limits request bodies and WebSocket messages.
	MaxDocumentSize int64

	// Registry receives the server metrics and is exposed on /metrics.
	// Nil creates a private registry.
	Registry *prometheus.Registry

	// Tracer traces requests and renders. Nil uses the global provider.
	Tracer trace.Tracer

	// CheckOrigin validates WebSocket origins.
	CheckOrigin func(r *http.Request) bool

	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration

	// Logger receives request and shutdown logs. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           "localhost:7070",
		MaxDocumentSize:   1 << 20,
		CheckOrigin:       SameOriginCheck,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

func (c *Config) withDefaults() *Config {
	out := DefaultConfig()
	if c == nil {
		return out
	}
	merged := *c
	if merged.Address == "" {
		merged.Address = out.Address
	}
	if merged.MaxDocumentSize <= 0 {
		merged.MaxDocumentSize = out.MaxDocumentSize
	}
	if merged.CheckOrigin == nil {
		merged.CheckOrigin = out.CheckOrigin
	}
	if merged.ReadHeaderTimeout == 0 {
		merged.ReadHeaderTimeout = out.ReadHeaderTimeout
	}
	if merged.ShutdownTimeout == 0 {
		merged.ShutdownTimeout = out.ShutdownTimeout
	}
	if merged.Builder == nil {
		merged.Builder = markup.Default()
	}
	if merged.Registry == nil {
		merged.Registry = prometheus.NewRegistry()
	}
	if merged.Logger == nil {
		merged.Logger = slog.Default()
	}
	return &merged
}

// SameOriginCheck accepts WebSocket requests without an Origin header or
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
