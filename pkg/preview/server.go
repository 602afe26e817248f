package preview

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/document"
	"github.com/vango-dev/htmlkit/pkg/escape"
	"github.com/vango-dev/htmlkit/pkg/middleware"
)

// Server renders documents over HTTP and WebSocket.
type Server struct {
	config   *Config
	charset  string
	router   chi.Router
	metrics  *middleware.Metrics
	upgrader websocket.Upgrader

	mu         sync.Mutex
	httpServer *http.Server
	conns      map[*websocket.Conn]struct{}
}

// New creates a preview server. It fails when the configured charset is
// unknown.
func New(config *Config) (*Server, error) {
	config = config.withDefaults()

	enc, err := escape.NewEncoder(config.Charset)
	if err != nil {
		return nil, errors.New("H011").Wrap(err)
	}

	s := &Server{
		config:  config,
		charset: enc.Charset(),
		metrics: middleware.NewMetrics(middleware.WithRegistry(config.Registry)),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.metrics.Middleware)

	otelOpts := []middleware.OTelOption{
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
		}),
	}
	if s.config.Tracer != nil {
		otelOpts = append(otelOpts, middleware.WithTracer(s.config.Tracer))
	}
	r.Use(middleware.OpenTelemetry(otelOpts...))

	r.Post("/render", s.handleRender)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok")
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server metrics.
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}

func (s *Server) renderer(minify bool) *document.Renderer {
	return &document.Renderer{
		Builder: s.config.Builder,
		Minify:  minify || s.config.Minify,
		Tracer:  s.config.Tracer,
		Logger:  s.config.Logger,
	}
}

// render parses and renders src, returning output in the server charset.
func (s *Server) render(ctx context.Context, src []byte, minify bool) ([]byte, error) {
	n, err := document.Parse("", src)
	if err != nil {
		s.metrics.RecordRenderError(err)
		return nil, err
	}
	out, err := s.renderer(minify).Render(ctx, n)
	if err != nil {
		s.metrics.RecordRenderError(err)
		return nil, err
	}
	b, err := escape.Transcode(out, s.charset)
	if err != nil {
		s.metrics.RecordRenderError(err)
		return nil, err
	}
	s.metrics.RecordRender(len(b))
	return b, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxDocumentSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := s.render(r.Context(), body, r.URL.Query().Get("minify") == "1")
	if err != nil {
		s.config.Logger.Debug("render failed", "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset="+s.charset)
	w.Write(out)
}

// statusFor maps a render error onto an HTTP status. Malformed documents
// are client errors.
func statusFor(err error) int {
	var herr *errors.Error
	if stderrors.As(err, &herr) && herr.Category == errors.CategoryDocument && herr.Code != "H023" {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.RecordWebSocketError("upgrade")
		s.config.Logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.MaxDocumentSize)

	s.track(conn, true)
	s.metrics.WebSocketOpened()
	defer func() {
		s.track(conn, false)
		s.metrics.WebSocketClosed()
		conn.Close()
	}()

	minify := r.URL.Query().Get("minify") == "1"
	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.metrics.RecordWebSocketError("read")
				s.config.Logger.Debug("websocket read failed", "error", err)
			}
			return
		}

		var reply []byte
		if kind != websocket.TextMessage {
			reply = []byte("error: only text messages are supported")
		} else if out, err := s.render(r.Context(), msg, minify); err != nil {
			reply = []byte(fmt.Sprintf("error: %v", err))
		} else {
			reply = out
		}

		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			s.metrics.RecordWebSocketError("write")
			return
		}
	}
}

func (s *Server) track(conn *websocket.Conn, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.config.Logger.Info("preview server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.config.Logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes open WebSocket connections and gracefully stops the HTTP
// server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	srv := s.httpServer
	for conn := range s.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"), deadline(ctx))
		conn.Close()
	}
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		s.config.Logger.Error("shutdown error", "error", err)
		return err
	}
	s.config.Logger.Info("server shutdown complete")
	return nil
}

func deadline(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Now().Add(time.Second)
}
