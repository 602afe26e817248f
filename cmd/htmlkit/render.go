package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/document"
	"github.com/vango-dev/htmlkit/pkg/escape"
	"github.com/vango-dev/htmlkit/pkg/publish"
)

// newS3Client is replaced in tests.
var newS3Client = func(region, endpoint string) publish.PutObjectAPI {
	return publish.NewS3Client(region, endpoint)
}

type renderOptions struct {
	minify  bool
	charset string
	publish string
	bucket  string
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document",
		Long: `Render a YAML or JSON document to HTML.

The document is read from file, or from stdin when no file is given.
The result is written to stdout, or uploaded to the configured bucket
with --publish.

Examples:
  htmlkit render page.yaml
  htmlkit render --minify < form.json
  htmlkit render --charset=windows-1252 page.yaml > page.html
  htmlkit render --publish=docs/index page.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.minify, "minify", "m", false, "Minify the output")
	cmd.Flags().StringVar(&opts.charset, "charset", "", "Output charset (default from htmlkit.json)")
	cmd.Flags().StringVar(&opts.publish, "publish", "", "Upload the output under this object name instead of printing it")
	cmd.Flags().StringVar(&opts.bucket, "bucket", "", "Bucket to publish to (default from htmlkit.json)")

	return cmd
}

func runRender(cmd *cobra.Command, flags *globalFlags, opts *renderOptions, args []string) error {
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if opts.minify {
		cfg.Minify = true
	}
	if opts.charset != "" {
		cfg.Charset = opts.charset
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if opts.bucket != "" {
		cfg.Publish.Bucket = opts.bucket
	}

	name, src, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	n, err := document.Parse(name, src)
	if err != nil {
		return err
	}

	logger := flags.logger(cmd.ErrOrStderr())
	r := &document.Renderer{
		Builder: cfg.Builder(logger),
		Minify:  cfg.Minify,
		Logger:  logger,
	}
	html, err := r.Render(cmd.Context(), n)
	if err != nil {
		return err
	}
	out, err := escape.Transcode(html, cfg.Charset)
	if err != nil {
		return errors.New("H011").Wrap(err)
	}

	if opts.publish == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	if cfg.Publish.Bucket == "" {
		return errors.New("H030")
	}
	enc, err := escape.NewEncoder(cfg.Charset)
	if err != nil {
		return errors.New("H011").Wrap(err)
	}
	p := &publish.S3Publisher{
		Client:  newS3Client(cfg.Publish.Region, cfg.Publish.Endpoint),
		Bucket:  cfg.Publish.Bucket,
		Prefix:  cfg.Publish.Prefix,
		Charset: enc.Charset(),
	}
	key, err := p.Publish(cmd.Context(), opts.publish, out)
	if err != nil {
		return err
	}
	logger.Debug("published", "bucket", p.Bucket, "key", key, "bytes", len(out))
	success(cmd.ErrOrStderr(), "Published s3://%s/%s", p.Bucket, key)
	return nil
}

// readInput returns the document name and source from the file argument or
// stdin.
func readInput(stdin io.Reader, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		src, err := io.ReadAll(stdin)
		return "<stdin>", src, err
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(args[0]), src, nil
}
