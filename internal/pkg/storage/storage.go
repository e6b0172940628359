package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage stores leave attachments and avatars.
type FileStorage interface {
	// Upload stores a file and returns its storage key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL resolves a storage key to a URL clients can fetch.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists reports whether the key is present.
	Exists(ctx context.Context, path string) (bool, error)
}
