package storage

import (
	"context"
	"fmt"
	"io"
)

// ObjectStorage stores mirrored artwork images.
type ObjectStorage interface {
	// Upload stores an object under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// GetURL returns the public URL for key.
	GetURL(key string) string

	// Delete removes the object under key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// ArtworkImageKey returns the object key of an artwork's mirrored image.
func ArtworkImageKey(artworkID int, ext string) string {
	return fmt.Sprintf("artworks/%d.%s", artworkID, ext)
}
