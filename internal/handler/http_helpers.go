package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "pdf-edit-automation/pkg/errors"
)

// writeJSON writes data as a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps err to its status code. Structured errors keep their type
// and details in the body.
func writeAppError(w http.ResponseWriter, err error) {
	status := apperrors.GetStatusCode(err)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		writeError(w, status, err.Error())
		return
	}
	body := map[string]string{
		"error": appErr.Message,
		"type":  string(appErr.Type),
	}
	if appErr.Details != "" {
		body["details"] = appErr.Details
	}
	if appErr.Cause != nil && status < http.StatusInternalServerError {
		body["cause"] = appErr.Cause.Error()
	}
	writeJSON(w, status, body)
}
