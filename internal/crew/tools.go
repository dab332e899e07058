package crew

import (
	"context"
	stderrors "errors"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"
)

// ReaderTool gives an agent the rendered text and tables of a PDF
type ReaderTool struct {
	extractor domain.ContentExtractor
}

// NewReaderTool creates a reader tool
func NewReaderTool(extractor domain.ContentExtractor) *ReaderTool {
	return &ReaderTool{extractor: extractor}
}

func (t *ReaderTool) Name() string { return "PDF Content Reader Tool" }

func (t *ReaderTool) Description() string {
	return "Reads and extracts text content from a specified PDF file."
}

// Run returns the document content. A missing file is an error; any other
// extraction failure is reported to the agent as text.
func (t *ReaderTool) Run(path string) (string, error) {
	content, err := t.extractor.ReadContent(path)
	if err == nil {
		return content, nil
	}
	if apperrors.IsType(err, apperrors.ErrorTypePathNotFound) {
		return "", err
	}
	return "Error reading PDF content: " + causeOf(err).Error(), nil
}

// ModifyTool runs the modify-and-save operation for an agent
type ModifyTool struct {
	modifier domain.PDFModifier
}

// NewModifyTool creates a modify tool
func NewModifyTool(modifier domain.PDFModifier) *ModifyTool {
	return &ModifyTool{modifier: modifier}
}

func (t *ModifyTool) Name() string { return "PDF Modify and Save Tool" }

func (t *ModifyTool) Description() string {
	return "Attempts to modify a PDF by replacing text and saves the result. " +
		"Requires the original PDF path, a description of modifications " +
		`(e.g., 'Replace "Old Text" with "New Text"') and the output path.`
}

func (t *ModifyTool) Run(ctx context.Context, sourcePath, description, outputPath string) (*domain.ModifyResult, error) {
	return t.modifier.Modify(ctx, domain.ModifyRequest{
		SourcePath:  sourcePath,
		Instruction: description,
		OutputPath:  outputPath,
	})
}

func causeOf(err error) error {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) && appErr.Cause != nil {
		return appErr.Cause
	}
	return err
}
