package domain

import "errors"

// Domain errors
var (
	ErrInvalidFile        = errors.New("invalid file")
	ErrPageOutOfRange     = errors.New("page out of range")
	ErrOutputNotFound     = errors.New("output not found")
	ErrLLMNotConfigured   = errors.New("language model not configured")
	ErrEmptyRequest       = errors.New("no modification request provided")
	ErrStorageDisabled    = errors.New("remote storage not configured")
	ErrUnknownAgent       = errors.New("unknown agent")
	ErrUnknownTask        = errors.New("unknown task")
	ErrEmptyModelResponse = errors.New("empty response from model")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
