// Package s3 implements the object store contract on top of AWS S3
// (or any S3-compatible endpoint such as MinIO).
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/fileforge/fileforge/internal/cloud/storage"
	"github.com/fileforge/fileforge/internal/logging"
)

// Options configures an S3-backed object store.
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for S3-compatible stores; empty means AWS
	AccessKey string // optional, static credentials; empty means default chain
	SecretKey string
}

// Client uploads objects to a single S3 bucket. Safe for concurrent use.
type Client struct {
	client *awss3.Client
	opts   Options
	logger *logging.Logger
}

// NewClient creates an S3 client for opts.Bucket. Static credentials are
// used when provided; otherwise the SDK's default chain applies.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// Compatible stores generally require path-style addressing.
			o.UsePathStyle = true
		}
	})

	return &Client{
		client: client,
		opts:   opts,
		logger: logging.NewLogger("s3"),
	}, nil
}

// Upload writes body to the bucket under key in a single PUT request.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string, progress storage.ProgressFunc) error {
	if key == "" {
		return storage.ErrEmptyKey
	}

	if progress != nil {
		progress(0.0)
	}

	_, err := c.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(c.opts.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("S3 upload failed")
		return fmt.Errorf("s3 upload failed: %w", err)
	}

	if progress != nil {
		progress(1.0)
	}

	c.logger.Debug().Str("key", key).Int64("bytes", size).Msg("uploaded object")
	return nil
}

// PublicURL returns the HTTPS URL for an object in the bucket. No request
// is made; the URL is derived from the client configuration.
func (c *Client) PublicURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", storage.ErrEmptyKey
	}

	escaped := escapeKey(key)
	if c.opts.Endpoint != "" {
		base := strings.TrimSuffix(c.opts.Endpoint, "/")
		return fmt.Sprintf("%s/%s/%s", base, c.opts.Bucket, escaped), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.opts.Bucket, c.opts.Region, escaped), nil
}

// escapeKey escapes each path segment of an object key while keeping the
// segment separators intact.
func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
