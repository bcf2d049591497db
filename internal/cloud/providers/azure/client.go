// Package azure implements the object store contract on top of Azure
// Blob Storage.
package azure

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"

	"github.com/fileforge/fileforge/internal/cloud/storage"
	"github.com/fileforge/fileforge/internal/logging"
)

// Options configures an Azure-backed object store.
type Options struct {
	AccountName string
	Container   string
	SASToken    string // query-string form, without leading "?"
	ServiceURL  string // optional override, e.g. for Azurite; empty means public cloud
}

// Client uploads blobs to a single Azure container. Safe for concurrent use.
type Client struct {
	client *azblob.Client
	opts   Options
	logger *logging.Logger
}

// NewClient creates an Azure blob client for opts.Container using SAS
// authentication.
func NewClient(opts Options) (*Client, error) {
	if opts.Container == "" {
		return nil, fmt.Errorf("azure: container is required")
	}

	serviceURL := opts.ServiceURL
	if serviceURL == "" {
		if opts.AccountName == "" {
			return nil, fmt.Errorf("azure: account name is required")
		}
		// BlobServiceClient pattern: account URL only, container resolved
		// per request.
		serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", opts.AccountName)
	}

	sasURL := serviceURL
	if opts.SASToken != "" && !strings.Contains(sasURL, "?") {
		sasURL = sasURL + "?" + opts.SASToken
	}

	client, err := azblob.NewClientWithNoCredential(sasURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}

	return &Client{
		client: client,
		opts:   opts,
		logger: logging.NewLogger("azure"),
	}, nil
}

// Upload streams body to the container as a block blob under key.
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string, progress storage.ProgressFunc) error {
	if key == "" {
		return storage.ErrEmptyKey
	}

	if progress != nil {
		progress(0.0)
	}

	_, err := c.client.UploadStream(ctx, c.opts.Container, key, body, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(contentType),
		},
	})
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("Azure upload failed")
		return fmt.Errorf("azure upload failed: %w", err)
	}

	if progress != nil {
		progress(1.0)
	}

	c.logger.Debug().Str("key", key).Int64("bytes", size).Msg("uploaded blob")
	return nil
}

// PublicURL returns the HTTPS URL for a blob in the container, without
// the SAS token.
func (c *Client) PublicURL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", storage.ErrEmptyKey
	}

	base := c.opts.ServiceURL
	if base == "" {
		base = fmt.Sprintf("https://%s.blob.core.windows.net/", c.opts.AccountName)
	}
	base = strings.TrimSuffix(base, "/")

	return fmt.Sprintf("%s/%s/%s", base, c.opts.Container, escapeKey(key)), nil
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
