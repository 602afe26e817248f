package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/htmlkit/internal/config"
	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/publish"
)

func writeConfig(t *testing.T, edit func(*config.Config)) string {
	t.Helper()
	cfg := config.New()
	if edit != nil {
		edit(cfg)
	}
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func errorCode(err error) string {
	var herr *errors.Error
	if stderrors.As(err, &herr) {
		return herr.Code
	}
	return ""
}

func TestRenderStdin(t *testing.T) {
	cfg := writeConfig(t, nil)

	out, _, err := execute(t, "tag: input\nattrs: {name: q, type: search}", "render", "--config", cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<input type="search" name="q">`; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRenderFileWithCharset(t *testing.T) {
	cfg := writeConfig(t, nil)
	doc := filepath.Join(t.TempDir(), "page.yaml")
	if err := os.WriteFile(doc, []byte("tag: p\ntext: naïve ✓"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "render", "--config", cfg, "--charset", "windows-1252", doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<p>na\xefve &#10003;</p>"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRenderConfigOrder(t *testing.T) {
	cfg := writeConfig(t, func(c *config.Config) {
		c.Attributes.Order = []string{"name", "id"}
	})

	out, _, err := execute(t, "tag: span\nattrs: {id: i, name: n}", "render", "--config", cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<span name="n" id="i"></span>`; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRenderErrors(t *testing.T) {
	cfg := writeConfig(t, nil)
	dupOrder := writeConfig(t, func(c *config.Config) {
		c.Attributes.Order = []string{"id", "id"}
	})

	tests := []struct {
		name  string
		stdin string
		args  []string
		code  string
	}{
		{"bad document", "tag: p\nbogus: 1", []string{"render", "--config", cfg}, "H021"},
		{"bad charset", "tag: p", []string{"render", "--config", cfg, "--charset", "nope"}, "H011"},
		{"publish without bucket", "tag: p", []string{"render", "--config", cfg, "--publish", "x"}, "H030"},
		{"missing config", "tag: p", []string{"render", "--config", filepath.Join(t.TempDir(), "none.json")}, "H014"},
		{"repeated order name", "tag: p", []string{"render", "--config", dupOrder}, "H013"},
		{"serve bad port", "", []string{"serve", "--config", cfg, "--port", "70000"}, "H012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.stdin, tt.args...)
			if got := errorCode(err); got != tt.code {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.input, f.body = in, string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestRenderPublish(t *testing.T) {
	fake := &fakeS3{}
	var gotRegion string
	orig := newS3Client
	newS3Client = func(region, endpoint string) publish.PutObjectAPI {
		gotRegion = region
		return fake
	}
	t.Cleanup(func() { newS3Client = orig })

	cfg := writeConfig(t, func(c *config.Config) {
		c.Publish.Prefix = "site"
		c.Publish.Region = "eu-central-1"
	})

	out, errOut, err := execute(t, "tag: h1\ntext: Hi", "render", "--config", cfg, "--bucket", "pages", "--publish", "index", "--minify")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing when publishing", out)
	}
	if !strings.Contains(errOut, "s3://pages/site/index.html") {
		t.Errorf("stderr = %q", errOut)
	}
	if gotRegion != "eu-central-1" {
		t.Errorf("region = %q", gotRegion)
	}
	if fake.body != "<h1>Hi</h1>" {
		t.Errorf("body = %q", fake.body)
	}
	if got := aws.ToString(fake.input.ContentType); got != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q", got)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "dev\n" {
		t.Errorf("version --short = %q", out)
	}

	out, _, _ = execute(t, "", "version")
	if !strings.Contains(out, "Commit:     none") {
		t.Errorf("version = %q", out)
	}
}
