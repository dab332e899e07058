package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"pdf-edit-automation/internal/domain"
	apperrors "pdf-edit-automation/pkg/errors"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var disableConfigDir sync.Once

var errSourceClosed = errors.New("source document closed")

// PDFDocumentOpener opens PDFs with pdfcpu for page copying and with go-fitz
// for font-aware page text. It implements domain.DocumentOpener.
type PDFDocumentOpener struct {
	conf *model.Configuration
}

// NewPDFDocumentOpener creates an opener that validates input in relaxed mode
func NewPDFDocumentOpener() *PDFDocumentOpener {
	// pdfcpu would otherwise create a config directory under the user's home.
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFDocumentOpener{conf: conf}
}

// Open reads the whole source document into memory and creates an empty output document
func (o *PDFDocumentOpener) Open(path string) (domain.SourceDocument, domain.OutputDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperrors.NewPathNotFoundError(path)
		}
		return nil, nil, apperrors.NewOpenError(path, err)
	}

	ctx, err := readContext(data, o.conf)
	if err != nil {
		return nil, nil, apperrors.NewOpenError(path, err)
	}

	dst, err := pdfcpu.CreateContextWithXRefTable(o.conf, types.PaperSize["A4"])
	if err != nil {
		return nil, nil, apperrors.NewOpenError(path, fmt.Errorf("create output document: %w", err))
	}

	src := &pdfcpuSource{ctx: ctx}
	// Without a text layer pages are still copied; PageText reports the cause.
	src.text, src.textErr = fitz.NewFromMemory(data)

	return src, &pdfcpuSink{ctx: dst, conf: o.conf}, nil
}

func readContext(data []byte, conf *model.Configuration) (ctx *model.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()
	return api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
}

// pdfcpuPage identifies a page of a source context
type pdfcpuPage struct {
	ctx    *model.Context
	pageNr int
}

func (p pdfcpuPage) Number() int {
	return p.pageNr
}

type pdfcpuSource struct {
	ctx     *model.Context
	text    *fitz.Document
	textErr error
}

func (s *pdfcpuSource) PageCount() int {
	return s.ctx.PageCount
}

// Page resolves the page dictionary so a broken page tree surfaces here rather than on append
func (s *pdfcpuSource) Page(pageNr int) (page domain.PageObject, err error) {
	if pageNr < 1 || pageNr > s.ctx.PageCount {
		return nil, fmt.Errorf("%w: %d of %d", domain.ErrPageOutOfRange, pageNr, s.ctx.PageCount)
	}
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("page %d: %v", pageNr, r)
		}
	}()

	d, _, _, err := s.ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("page %d: missing page dictionary", pageNr)
	}
	return pdfcpuPage{ctx: s.ctx, pageNr: pageNr}, nil
}

// PageText returns the decoded text of a page, with the font encoding applied
func (s *pdfcpuSource) PageText(pageNr int) (text string, err error) {
	if s.text == nil {
		return "", fmt.Errorf("text layer unavailable: %w", s.textErr)
	}
	if pageNr < 1 || pageNr > s.text.NumPage() {
		return "", fmt.Errorf("%w: %d of %d", domain.ErrPageOutOfRange, pageNr, s.text.NumPage())
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: %v", pageNr, r)
		}
	}()

	raw, err := s.text.Text(pageNr - 1)
	if err != nil {
		return "", err
	}
	return normalizePageText(raw), nil
}

// Close releases the text layer
func (s *pdfcpuSource) Close() error {
	if s.text == nil {
		return nil
	}
	err := s.text.Close()
	s.text, s.textErr = nil, errSourceClosed
	return err
}

type pdfcpuSink struct {
	ctx   *model.Context
	conf  *model.Configuration
	pages int
}

// AddPage copies the page, with the objects it references, unchanged into the output document
func (d *pdfcpuSink) AddPage(page domain.PageObject) (err error) {
	p, ok := page.(pdfcpuPage)
	if !ok {
		return fmt.Errorf("unsupported page type %T", page)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", p.pageNr, r)
		}
	}()

	if err := pdfcpu.AddPages(p.ctx, d.ctx, []int{p.pageNr}, false); err != nil {
		return err
	}
	d.pages++
	return nil
}

func (d *pdfcpuSink) PageCount() int {
	return d.pages
}

// Write serializes the output document. Pages are added one at a time, so every
// page carries its own copy of shared fonts and images until the optimize pass
// merges them. A document built in memory has no optimization state, hence the
// write and re-read.
func (d *pdfcpuSink) Write(w io.Writer) error {
	var raw bytes.Buffer
	if err := api.WriteContext(d.ctx, &raw); err != nil {
		return err
	}
	var out bytes.Buffer
	if err := optimize(raw.Bytes(), &out, d.conf); err != nil {
		return fmt.Errorf("optimize output document: %w", err)
	}
	_, err := out.WriteTo(w)
	return err
}

func optimize(data []byte, w io.Writer, conf *model.Configuration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed output: %v", r)
		}
	}()
	return api.Optimize(bytes.NewReader(data), w, conf)
}
