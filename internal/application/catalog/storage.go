package catalog

import (
	"context"
	"io"
)

// ImageStorage stores product images and serves them back by public
// URL. The storefront embeds the returned URL directly, so objects
// must be publicly readable.
type ImageStorage interface {
	// Upload stores one image and returns its public URL. The object
	// key is derived from the original filename; callers never choose
	// keys.
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error)

	// Delete removes a previously uploaded image by its public URL.
	// Deleting an unknown URL is not an error.
	Delete(ctx context.Context, imageURL string) error
}
