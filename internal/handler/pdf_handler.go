package handler

import (
	"net/http"
	"os"

	"pdf-edit-automation/internal/domain"
	"pdf-edit-automation/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// PDFHandler handles HTTP requests for PDF operations
type PDFHandler struct {
	extractor domain.ContentExtractor
	modifier  domain.PDFModifier
	files     *FileStore
	history   *History
	logger    domain.Logger
}

// NewPDFHandler creates a new PDF handler instance
func NewPDFHandler(
	extractor domain.ContentExtractor,
	modifier domain.PDFModifier,
	files *FileStore,
	history *History,
	logger domain.Logger,
) *PDFHandler {
	return &PDFHandler{
		extractor: extractor,
		modifier:  modifier,
		files:     files,
		history:   history,
		logger:    logger,
	}
}

// ExtractResponse is the body of a successful extract request
type ExtractResponse struct {
	Document *domain.Document `json:"document"`
	Content  string           `json:"content"`
}

// ModifyResponse is the body of a successful modify request
type ModifyResponse struct {
	ID     string               `json:"id"`
	Result *domain.ModifyResult `json:"result"`
}

// Extract returns the text and tables of an uploaded PDF
func (h *PDFHandler) Extract(w http.ResponseWriter, r *http.Request) {
	path, err := h.files.Receive(w, r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	defer h.files.Discard(path)

	doc, err := h.extractor.Extract(path)
	if err != nil {
		h.logger.Error("Extraction failed", err, "path", path)
		writeAppError(w, err)
		return
	}

	content := service.NoContentMessage
	if doc.HasContent() {
		content = service.RenderDocument(doc)
	}
	writeJSON(w, http.StatusOK, ExtractResponse{Document: doc, Content: content})
}

// Modify runs the modify-and-save operation on an uploaded PDF
func (h *PDFHandler) Modify(w http.ResponseWriter, r *http.Request) {
	path, err := h.files.Receive(w, r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	defer h.files.Discard(path)

	instruction := r.FormValue("instruction")
	id, outputPath := h.files.NewOutput()
	result, err := h.modifier.Modify(r.Context(), domain.ModifyRequest{
		SourcePath:  path,
		Instruction: instruction,
		OutputPath:  outputPath,
	})
	if err != nil {
		h.logger.Error("Modification failed", err, "id", id)
		writeAppError(w, err)
		return
	}

	h.files.Publish(r.Context(), id, result)
	h.history.Record(r.Context(), domain.NewRunRecord(id, domain.RunKindModify, instruction, result))
	writeJSON(w, http.StatusCreated, ModifyResponse{ID: id, Result: result})
}

// GetOutput streams a previously produced PDF
func (h *PDFHandler) GetOutput(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid output id")
		return
	}

	path := h.files.OutputFile(id)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, domain.ErrOutputNotFound.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.pdf"`)
	http.ServeFile(w, r, path)
}
