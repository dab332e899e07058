package handler

import (
	"context"
	"net/http"
	"strconv"

	"pdf-edit-automation/internal/domain"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// History records finished runs and serves the run history. Without a
// repository recording is a no-op.
type History struct {
	runs   domain.RunRepository
	logger domain.Logger
}

// NewHistory creates a history backed by runs, which may be nil
func NewHistory(runs domain.RunRepository, logger domain.Logger) *History {
	return &History{runs: runs, logger: logger}
}

// Record saves run, logging failures
func (h *History) Record(ctx context.Context, run *domain.RunRecord) {
	if h == nil || h.runs == nil {
		return
	}
	if err := h.runs.Save(ctx, run); err != nil {
		h.logger.Warn("Failed to record run", "run_id", run.ID, "error", err.Error())
	}
}

// List returns the most recent runs
func (h *History) List(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusServiceUnavailable, domain.ErrStorageDisabled.Error())
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunsLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	runs, err := h.runs.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list runs", err)
		writeError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
