package service

import (
	"context"
	"os"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"
)

// PDFService implements the modify-and-save operation.
// It implements domain.PDFModifier.
type PDFService struct {
	parser     domain.InstructionParser
	opener     domain.DocumentOpener
	reconciler *Reconciler
	writer     *OutputWriter
	logger     domain.Logger
}

// NewPDFService creates a new PDF service instance
func NewPDFService(
	parser domain.InstructionParser,
	opener domain.DocumentOpener,
	reconciler *Reconciler,
	writer *OutputWriter,
	logger domain.Logger,
) *PDFService {
	return &PDFService{
		parser:     parser,
		opener:     opener,
		reconciler: reconciler,
		writer:     writer,
		logger:     logger,
	}
}

// Modify parses req.Instruction, copies every page of req.SourcePath into a new
// document and writes it to req.OutputPath. Page content is never altered;
// identified replacements are reported, not applied.
func (s *PDFService) Modify(ctx context.Context, req domain.ModifyRequest) (*domain.ModifyResult, error) {
	if req.SourcePath == "" {
		return nil, apperrors.NewValidationError("source path is required")
	}
	if req.OutputPath == "" {
		return nil, apperrors.NewValidationError("output path is required")
	}
	if _, err := os.Stat(req.SourcePath); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewPathNotFoundError(req.SourcePath)
		}
		return nil, apperrors.NewOpenError(req.SourcePath, err)
	}

	replacements, diags := s.parser.Parse(req.Instruction)
	var report domain.ProcessingReport
	report.Append(diags...)
	if len(diags) > 0 {
		s.logger.Warn("No usable replacement instructions; output will be a copy", "instruction", req.Instruction)
	}

	src, dst, err := s.opener.Open(req.SourcePath)
	if err != nil {
		s.logger.Error("Failed to open source PDF", err, "path", req.SourcePath)
		return nil, err
	}
	defer src.Close()
	s.logger.Info("Opened source PDF", "path", req.SourcePath, "pages", src.PageCount())

	outcomes, pageReport := s.reconciler.Reconcile(ctx, src, dst, replacements)
	report.Append(pageReport.Diagnostics...)

	if err := s.writer.Write(req.OutputPath, dst); err != nil {
		return nil, err
	}

	result := &domain.ModifyResult{
		OutputPath:   req.OutputPath,
		Replacements: replacements,
		PagesIn:      src.PageCount(),
		PagesOut:     dst.PageCount(),
		Pages:        outcomes,
		Report:       report,
		Message:      ComposeMessage(req.OutputPath, replacements, report),
	}
	if result.PagesOut != result.PagesIn {
		s.logger.Warn("Output document is shorter than the source", "pages_in", result.PagesIn, "pages_out", result.PagesOut)
	}
	return result, nil
}
