package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"
)

// OutputWriter serializes an output document to disk.
// A failed write never leaves a partial file at the target path.
type OutputWriter struct {
	logger domain.Logger
}

// NewOutputWriter creates a new output writer
func NewOutputWriter(logger domain.Logger) *OutputWriter {
	return &OutputWriter{logger: logger}
}

// Write creates missing parent directories, then writes doc to a temporary
// file next to path and renames it into place.
func (w *OutputWriter) Write(path string, doc domain.OutputDocument) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.logger.Error("Failed to create output directory", err, "dir", dir)
		return apperrors.NewDirectoryError(dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		w.logger.Error("Failed to create output file", err, "path", path)
		return apperrors.NewWriteError(path, err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		w.logger.Error("Failed to write output PDF", err, "path", path)
		return apperrors.NewWriteError(path, err)
	}

	if err := doc.Write(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		w.logger.Error("Failed to move output PDF into place", err, "path", path)
		return apperrors.NewWriteError(path, err)
	}

	w.logger.Info("Wrote output PDF", "path", path, "pages", doc.PageCount())
	return nil
}

// ComposeMessage builds the status message returned to the caller after a successful write
func ComposeMessage(outputPath string, replacements *domain.ReplacementMap, report domain.ProcessingReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PDF processing completed. Output saved to %s. Replacements identified: %s.", outputPath, replacements.String())

	sb.WriteString(" IMPORTANT NOTE: Text replacements were identified but **COULD NOT BE APPLIED** due to PDF library limitations")
	if report.Len() > 0 {
		fmt.Fprintf(&sb, " or errors (%s)", strings.Join(report.Messages(), "; "))
	}
	fmt.Fprintf(&sb, ". The output file likely contains the original, unmodified content. Please verify the output file at %s.", outputPath)

	return sb.String()
}
