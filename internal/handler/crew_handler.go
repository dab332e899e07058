package handler

import (
	"net/http"
	"strings"

	"pdf-edit-automation/internal/domain"
)

// CrewHandler runs the analyze-then-modify crew over HTTP
type CrewHandler struct {
	crew    domain.CrewRunner
	files   *FileStore
	history *History
	logger  domain.Logger
}

// NewCrewHandler creates a new crew handler
func NewCrewHandler(crew domain.CrewRunner, files *FileStore, history *History, logger domain.Logger) *CrewHandler {
	return &CrewHandler{
		crew:    crew,
		files:   files,
		history: history,
		logger:  logger,
	}
}

// CrewResponse is the body of a successful crew run
type CrewResponse struct {
	ID     string             `json:"id"`
	Result *domain.CrewResult `json:"result"`
}

// Run handles a crew run for an uploaded PDF and a natural-language request
func (h *CrewHandler) Run(w http.ResponseWriter, r *http.Request) {
	path, err := h.files.Receive(w, r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	defer h.files.Discard(path)

	request := strings.TrimSpace(r.FormValue("request"))
	if request == "" {
		writeError(w, http.StatusBadRequest, "No modification request provided.")
		return
	}

	id, outputPath := h.files.NewOutput()
	result, err := h.crew.Kickoff(r.Context(), domain.CrewInputs{
		PDFPath:     path,
		UserRequest: request,
		OutputPath:  outputPath,
	})
	if err != nil {
		h.logger.Error("Crew run failed", err, "id", id)
		writeAppError(w, err)
		return
	}

	h.files.Publish(r.Context(), id, result.Modification)
	h.history.Record(r.Context(), domain.NewRunRecord(id, domain.RunKindCrew, result.Instruction, result.Modification))
	writeJSON(w, http.StatusCreated, CrewResponse{ID: id, Result: result})
}
