package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypePathNotFound ErrorType = "path_not_found"
	ErrorTypeOpen         ErrorType = "open_failure"
	ErrorTypeExtraction   ErrorType = "extraction"
	ErrorTypeParseEmpty   ErrorType = "parse_empty"
	ErrorTypeDirectory    ErrorType = "directory_create"
	ErrorTypeWrite        ErrorType = "write_failure"
	ErrorTypeLLM          ErrorType = "llm"
	ErrorTypeStorage      ErrorType = "storage"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewPathNotFoundError reports a source file that does not exist.
func NewPathNotFoundError(path string) *AppError {
	return &AppError{
		Type:       ErrorTypePathNotFound,
		Message:    "PDF file not found at " + path,
		Details:    path,
		StatusCode: http.StatusNotFound,
	}
}

// NewOpenError reports a source document that could not be opened or parsed.
func NewOpenError(path string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeOpen,
		Message:    "failed to open PDF",
		Details:    path,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewExtractionError creates a new content extraction error
func NewExtractionError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExtraction,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewDirectoryError reports an output directory that could not be created.
func NewDirectoryError(dir string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDirectory,
		Message:    "failed to create output directory",
		Details:    dir,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewWriteError reports an output document that could not be serialized.
func NewWriteError(path string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeWrite,
		Message:    "failed to write output PDF",
		Details:    path,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewLLMError creates a new language model error
func NewLLMError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeLLM,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewStorageError creates a new remote storage error
func NewStorageError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// IsType checks if the error, or any error it wraps, is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
