package service

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AvatarStorage stores profile pictures.
type AvatarStorage interface {
	// Upload stores the image and returns its public URL.
	Upload(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error)

	// Open streams a stored image by key. The caller closes the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
