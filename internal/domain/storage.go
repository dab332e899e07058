package domain

import (
	"context"
	"io"
)

// StorageService publishes produced PDFs to remote object storage
type StorageService interface {
	Upload(ctx context.Context, path string, file io.Reader) (string, error)
}
