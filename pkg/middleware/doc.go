// Package middleware provides net/http middleware for the htmlkit preview
// server.
//
// # OpenTelemetry Middleware
//
// OpenTelemetry opens a server span per request. Spans are named after the
// chi route pattern, so "/render" and "/render?minify=1" share a name.
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("htmlkit-preview"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// # Prometheus Metrics
//
// Metrics collects request counts, durations and render statistics:
//   - htmlkit_requests_total: Requests by route and status
//   - htmlkit_request_duration_seconds: Request duration histogram
//   - htmlkit_rendered_bytes: Rendered document size histogram
//   - htmlkit_render_errors_total: Failed renders by error category
//   - htmlkit_websocket_connections: Open preview sockets
//   - htmlkit_websocket_errors_total: Socket errors by type
//
//	reg := prometheus.NewRegistry()
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Middleware)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package middleware
