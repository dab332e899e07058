package service

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// NoContentMessage is returned by ReadContent when no page yields text or tables
const NoContentMessage = "No text or table content found in the PDF."

const defaultPageTimeout = 90 * time.Second

// PDFProcessor extracts page text and tables from PDFs on disk.
// It implements domain.ContentExtractor.
type PDFProcessor struct {
	logger      domain.Logger
	tables      *TableDetector
	pageTimeout time.Duration
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(logger domain.Logger) *PDFProcessor {
	return &PDFProcessor{
		logger:      logger,
		tables:      NewTableDetector(),
		pageTimeout: defaultPageTimeout,
	}
}

// ReadContent extracts the document and renders it as page-delimited text
func (p *PDFProcessor) ReadContent(path string) (string, error) {
	doc, err := p.Extract(path)
	if err != nil {
		return "", err
	}
	if !doc.HasContent() {
		return NoContentMessage, nil
	}
	return RenderDocument(doc), nil
}

// Extract reads every page of the PDF at path, in order
func (p *PDFProcessor) Extract(path string) (*domain.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewPathNotFoundError(path)
		}
		return nil, apperrors.NewExtractionError("failed to stat PDF", err)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, apperrors.NewExtractionError("failed to open PDF", err)
	}

	result := &domain.Document{
		Path: path,
		Metadata: domain.DocumentMetadata{
			PageCount: doc.NumPage(),
		},
	}
	meta := doc.Metadata()
	if title, ok := meta["title"]; ok && title != "" {
		result.Metadata.Title = title
	}
	if author, ok := meta["author"]; ok && author != "" {
		result.Metadata.Author = author
	}

	tables := p.extractTables(path, result.Metadata.PageCount)

	texts, err := p.pageTexts(doc, result.Metadata.PageCount)
	if err != nil {
		return nil, err
	}
	for i, text := range texts {
		result.Pages = append(result.Pages, domain.Page{
			Number: i + 1,
			Text:   text,
			Tables: tables[i+1],
		})
	}

	p.logger.Info("PDF extracted", "path", path, "pages", result.Metadata.PageCount)
	return result, nil
}

// pageTextDoc is the part of a fitz document used for text extraction
type pageTextDoc interface {
	Text(pageNumber int) (string, error)
	Close() error
}

// pageTexts extracts the normalized text of pages 0..count-1 and closes doc.
// A page that exceeds the timeout aborts extraction; doc is then closed only
// once the stuck page returns, since fitz must not be closed mid-call.
func (p *PDFProcessor) pageTexts(doc pageTextDoc, count int) ([]string, error) {
	type pageResult struct {
		text string
		err  error
	}

	texts := make([]string, 0, count)
	for pageNum := 0; pageNum < count; pageNum++ {
		p.logger.Debug("PDF processing page", "page", pageNum+1, "total", count)

		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		select {
		case res := <-resultCh:
			if res.err != nil {
				doc.Close()
				return nil, apperrors.NewExtractionError(fmt.Sprintf("failed to extract text from page %d", pageNum+1), res.err)
			}
			texts = append(texts, normalizePageText(res.text))
		case <-time.After(p.pageTimeout):
			go func() {
				<-resultCh
				doc.Close()
			}()
			return nil, apperrors.NewExtractionError(
				fmt.Sprintf("failed to extract text from page %d", pageNum+1),
				fmt.Errorf("timeout after %v", p.pageTimeout),
			)
		}
	}

	if err := doc.Close(); err != nil {
		p.logger.Warn("Failed to close PDF", "error", err)
	}
	return texts, nil
}

// normalizePageText trims, NFC-normalizes and sanitizes extracted page text
func normalizePageText(text string) string {
	return sanitizeText(norm.NFC.String(strings.TrimSpace(text)))
}

// extractTables returns detected tables keyed by 1-based page number.
// Table detection is best effort: any failure leaves the page without tables.
func (p *PDFProcessor) extractTables(path string, pageCount int) map[int][]domain.Table {
	out := make(map[int][]domain.Table)

	f, reader, err := openLayoutReader(path)
	if err != nil {
		p.logger.Warn("Table detection unavailable", "path", path, "error", err)
		return out
	}
	defer f.Close()

	n := reader.NumPage()
	if n > pageCount {
		n = pageCount
	}
	for pageNum := 1; pageNum <= n; pageNum++ {
		texts, err := pageGlyphs(reader, pageNum)
		if err != nil {
			p.logger.Warn("Failed to read page layout", "page", pageNum, "error", err)
			continue
		}
		if found := p.tables.Detect(texts); len(found) > 0 {
			out[pageNum] = found
		}
	}
	return out
}

func openLayoutReader(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic opening PDF: %v", rec)
		}
	}()
	return pdf.Open(path)
}

// pageGlyphs returns the positioned glyphs of one page, recovering from
// panics raised by malformed content streams.
func pageGlyphs(r *pdf.Reader, pageNum int) (texts []pdf.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			texts = nil
			err = fmt.Errorf("panic during page content extraction on page %d: %v", pageNum, rec)
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return nil, fmt.Errorf("invalid page %d", pageNum)
	}
	return page.Content().Text, nil
}

// sanitizeText drops control characters (keeping tab, newline and CR) and surrogates
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == 0x09 || r == 0x0A || r == 0x0D:
			result.WriteRune(r)
		case r >= 0x20 && r < 0x7F:
			result.WriteRune(r)
		case r >= 0xA0 && (r < 0xD800 || r > 0xDFFF):
			result.WriteRune(r)
		}
	}
	return result.String()
}
