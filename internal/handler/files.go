package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"

	"github.com/google/uuid"
)

const multipartMemory = 32 << 20

// FileStore keeps uploaded inputs and produced outputs on local disk and
// optionally publishes outputs to remote storage.
type FileStore struct {
	uploadPath  string
	outputPath  string
	maxFileSize int64
	storage     domain.StorageService
	logger      domain.Logger
}

// NewFileStore creates a file store. storage may be nil.
func NewFileStore(config domain.Config, storage domain.StorageService, logger domain.Logger) *FileStore {
	return &FileStore{
		uploadPath:  config.GetUploadPath(),
		outputPath:  config.GetOutputPath(),
		maxFileSize: config.GetMaxFileSize(),
		storage:     storage,
		logger:      logger,
	}
}

// Receive saves the multipart "file" field of r under the upload directory.
// The caller removes the returned path once the request is done.
func (s *FileStore) Receive(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxFileSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", &apperrors.AppError{
				Type:       apperrors.ErrorTypeValidation,
				Message:    "File too large",
				StatusCode: http.StatusRequestEntityTooLarge,
			}
		}
		return "", apperrors.NewValidationError("Invalid multipart form", err.Error())
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", apperrors.NewValidationError("File is required")
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".pdf" {
		return "", apperrors.NewValidationError("Unsupported file type. Allowed: PDF (.pdf).", domain.ErrInvalidFile.Error())
	}
	if header.Size > s.maxFileSize {
		return "", &apperrors.AppError{
			Type:       apperrors.ErrorTypeValidation,
			Message:    "File too large",
			StatusCode: http.StatusRequestEntityTooLarge,
		}
	}

	if err := os.MkdirAll(s.uploadPath, 0o755); err != nil {
		return "", apperrors.NewDirectoryError(s.uploadPath, err)
	}
	path := filepath.Join(s.uploadPath, uuid.NewString()+".pdf")
	out, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewWriteError(path, err)
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(path)
		return "", apperrors.NewWriteError(path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", apperrors.NewWriteError(path, err)
	}

	s.logger.Debug("Saved upload", "filename", header.Filename, "path", path, "size", header.Size)
	return path, nil
}

// Discard removes an uploaded input
func (s *FileStore) Discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove upload", "path", path, "error", err.Error())
	}
}

// NewOutput allocates an id and the local path of an output PDF
func (s *FileStore) NewOutput() (string, string) {
	id := uuid.NewString()
	return id, s.OutputFile(id)
}

// OutputFile returns the local path of output id
func (s *FileStore) OutputFile(id string) string {
	return filepath.Join(s.outputPath, id+".pdf")
}

// Publish uploads output id to remote storage and records its public URL on
// result. Failures are logged and leave the local output in place.
func (s *FileStore) Publish(ctx context.Context, id string, result *domain.ModifyResult) {
	if s.storage == nil || result == nil {
		return
	}
	f, err := os.Open(result.OutputPath)
	if err != nil {
		s.logger.Warn("Failed to open output for publishing", "path", result.OutputPath, "error", err.Error())
		return
	}
	defer f.Close()

	url, err := s.storage.Upload(ctx, id+".pdf", f)
	if err != nil {
		s.logger.Warn("Failed to publish output", "id", id, "error", err.Error())
		return
	}
	result.PublicURL = url
}
