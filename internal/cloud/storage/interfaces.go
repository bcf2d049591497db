// Package storage defines the contract that object store implementations
// must follow, enabling consistent behavior and easier testing across
// storage backends.
package storage

import (
	"context"
	"io"
)

// ProgressFunc receives transfer progress from 0.0 to 1.0.
//
// Note: a plain func type rather than an interface so implementations can
// pass closures directly without adapter types.
type ProgressFunc func(fraction float64)

// ObjectStore defines the interface for storing uploaded file content.
// Both the S3 and Azure clients implement this interface.
type ObjectStore interface {
	// Upload writes body to the store under key. size must be the exact
	// number of bytes body will yield; contentType is stored as object
	// metadata. progress may be nil.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string, progress ProgressFunc) error

	// PublicURL returns the URL at which the object stored under key can
	// be fetched. Implementations return the URL without verifying the
	// object exists.
	PublicURL(ctx context.Context, key string) (string, error)
}
