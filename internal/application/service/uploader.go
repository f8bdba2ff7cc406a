package service

import (
	"context"
	"io"
)

// Uploader stores project gallery images with the external media host.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
