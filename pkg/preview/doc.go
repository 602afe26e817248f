// Package preview serves a live rendering endpoint for documents.
//
// Routes:
//   - POST /render: the body is a document, the response is its markup.
//     Add ?minify=1 to minify.
//   - GET /ws: a WebSocket where every text message is a document and every
//     reply is the rendered markup or "error: " followed by the failure.
//   - GET /healthz: liveness probe.
//   - GET /metrics: Prometheus metrics.
//
// Usage:
//
//	srv, err := preview.New(&preview.Config{Address: ":7070"})
//	if err != nil {
//	    return err
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	return srv.ListenAndServe(ctx)
package preview
