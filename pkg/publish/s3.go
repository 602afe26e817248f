package publish

import (
	"bytes"
	"context"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/escape"
)

// PutObjectAPI is the subset of the S3 client used by S3Publisher.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads rendered documents to an S3 bucket.
//
// Example usage:
//
//	client, _ := publish.NewS3Client("eu-west-1", "")
//	p := &publish.S3Publisher{Client: client, Bucket: "site", Prefix: "pages/"}
//	key, err := p.Publish(ctx, "index", html)
type S3Publisher struct {
	Client PutObjectAPI
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// Charset names the charset of published bytes in the content type.
	// Empty means UTF-8.
	Charset string

	// CacheControl sets the Cache-Control header when non-empty.
	CacheControl string
}

// Publish writes html under Prefix/name and returns the object key. A name
// without an extension gets ".html".
func (p *S3Publisher) Publish(ctx context.Context, name string, html []byte) (string, error) {
	if p.Bucket == "" {
		return "", errors.New("H030")
	}
	key, err := p.Key(name)
	if err != nil {
		return "", err
	}

	charset := p.Charset
	if charset == "" {
		charset = escape.DefaultCharset
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(html),
		ContentLength: aws.Int64(int64(len(html))),
		ContentType:   aws.String("text/html; charset=" + charset),
	}
	if p.CacheControl != "" {
		input.CacheControl = aws.String(p.CacheControl)
	}

	if _, err := p.Client.PutObject(ctx, input); err != nil {
		return "", errors.New("H031").Wrap(err).WithDetail("s3://" + p.Bucket + "/" + key)
	}
	return key, nil
}

// Key returns the object key for name.
func (p *S3Publisher) Key(name string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" || name == ".." || strings.HasPrefix(name, "../") || strings.Contains(name, "/../") || strings.HasSuffix(name, "/..") {
		return "", errors.New("H032").WithDetail("invalid name " + `"` + name + `"`)
	}
	name = path.Clean(name)
	if path.Ext(name) == "" {
		name += ".html"
	}
	if p.Prefix == "" {
		return name, nil
	}
	return path.Join(p.Prefix, name), nil
}

// NewS3Client builds an S3 client for region. Credentials come from the
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// environment variables. A non-empty endpoint selects an S3 compatible
// service with path-style addressing.
func NewS3Client(region, endpoint string) *s3.Client {
	return s3.New(s3.Options{
		Region:       region,
		Credentials:  aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
		BaseEndpoint: nonEmpty(endpoint),
		UsePathStyle: endpoint != "",
	})
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "EnvironmentVariables",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("H031").WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
