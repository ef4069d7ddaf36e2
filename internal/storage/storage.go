// Package storage forwards prepared image blobs to object storage and hands
// back publicly resolvable URLs.
package storage

import (
	"context"
	"errors"
	"io"
)

// CacheControlImmutable is set on every uploaded object. Content at a path
// never changes after upload, so clients and the CDN may cache forever.
const CacheControlImmutable = "public, max-age=31536000, immutable"

var ErrUploadFailed = errors.New("storage: upload failed")

// Uploader forwards a blob to object storage and returns its public URL.
// Deletion is deliberately absent: orphaned objects from abandoned flows are
// an accepted cost, and nothing in the app removes uploaded content.
type Uploader interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error)
}
