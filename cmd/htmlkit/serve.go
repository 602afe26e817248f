package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/pkg/preview"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live preview server",
		Long: `Run the live preview server.

POST a document to /render to get its HTML back, or connect to /ws
and send one document per message. Metrics are served on /metrics.

Examples:
  htmlkit serve
  htmlkit serve --port=8080
  htmlkit serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from htmlkit.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from htmlkit.json)")

	return cmd
}

func runServe(cmd *cobra.Command, flags *globalFlags, host string, port int) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Preview.Port = port
	}
	if host != "" {
		cfg.Preview.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := flags.logger(cmd.ErrOrStderr())
	srv, err := preview.New(&preview.Config{
		Address: cfg.PreviewAddress(),
		Builder: cfg.Builder(logger),
		Charset: cfg.Charset,
		Minify:  cfg.Minify,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	success(cmd.ErrOrStderr(), "Preview server at http://%s", cfg.PreviewAddress())
	return srv.ListenAndServe(ctx)
}
