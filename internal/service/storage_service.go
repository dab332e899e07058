package service

import (
	"context"
	"io"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"

	storage_go "github.com/supabase-community/storage-go"
)

const pdfContentType = "application/pdf"

// SupabaseStorage publishes output PDFs to a Supabase Storage bucket.
// It implements domain.StorageService.
type SupabaseStorage struct {
	client domain.SupabaseClient
	bucket string
	logger domain.Logger
}

// NewStorageService creates a storage service for bucket
func NewStorageService(client domain.SupabaseClient, bucket string, logger domain.Logger) *SupabaseStorage {
	return &SupabaseStorage{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Upload stores file at path in the bucket, replacing any existing object, and returns its public URL
func (s *SupabaseStorage) Upload(ctx context.Context, path string, file io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	db := s.client.DB()
	if db == nil || db.Storage == nil {
		return "", apperrors.NewStorageError("storage client not initialized", domain.ErrStorageDisabled)
	}

	contentType := pdfContentType
	upsert := true
	if _, err := db.Storage.UploadFile(s.bucket, path, file, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}); err != nil {
		return "", apperrors.NewStorageError("storage upload failed", err)
	}

	url := db.Storage.GetPublicUrl(s.bucket, path).SignedURL
	s.logger.Info("Uploaded output PDF", "bucket", s.bucket, "path", path)
	return url, nil
}
