package service

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf-edit-automation/internal/domain"
	"pdf-edit-automation/internal/testutil"
	apperrors "pdf-edit-automation/pkg/errors"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func pageContents(t *testing.T, ctx *model.Context) [][]byte {
	t.Helper()
	var out [][]byte
	for nr := 1; nr <= ctx.PageCount; nr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, nr)
		if err != nil {
			t.Fatalf("extract content of page %d: %v", nr, err)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("read content of page %d: %v", nr, err)
		}
		out = append(out, data)
	}
	return out
}

func readPDF(t *testing.T, data []byte) *model.Context {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	return ctx
}

func TestPDFDocumentOpener_RoundTripKeepsPages(t *testing.T) {
	path := writeTestPDF(t, "Hello Alpha", "Second page", "Gamma here")

	src, dst, err := NewPDFDocumentOpener().Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if src.PageCount() != 3 {
		t.Fatalf("expected 3 pages, got %d", src.PageCount())
	}

	text, err := src.PageText(1)
	if err != nil {
		t.Fatalf("page text: %v", err)
	}
	if text != "Hello Alpha" {
		t.Fatalf("unexpected page text %q", text)
	}

	for nr := 1; nr <= src.PageCount(); nr++ {
		page, err := src.Page(nr)
		if err != nil {
			t.Fatalf("page %d: %v", nr, err)
		}
		if page.Number() != nr {
			t.Fatalf("expected page number %d, got %d", nr, page.Number())
		}
		if err := dst.AddPage(page); err != nil {
			t.Fatalf("add page %d: %v", nr, err)
		}
	}
	if dst.PageCount() != 3 {
		t.Fatalf("expected 3 output pages, got %d", dst.PageCount())
	}

	var out bytes.Buffer
	if err := dst.Write(&out); err != nil {
		t.Fatalf("write: %v", err)
	}

	original := pageContents(t, readPDF(t, buildTestPDF("Hello Alpha", "Second page", "Gamma here")))
	written := pageContents(t, readPDF(t, out.Bytes()))
	if len(written) != len(original) {
		t.Fatalf("expected %d pages after round trip, got %d", len(original), len(written))
	}
	for i := range original {
		if !bytes.Equal(original[i], written[i]) {
			t.Fatalf("page %d content changed:\n%q\n%q", i+1, original[i], written[i])
		}
	}
}

func TestPDFDocumentOpener_PageOutOfRange(t *testing.T) {
	src, _, err := NewPDFDocumentOpener().Open(writeTestPDF(t, "only"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := src.Page(2); !errors.Is(err, domain.ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}

func TestPDFDocumentOpener_Errors(t *testing.T) {
	opener := NewPDFDocumentOpener()

	missing := filepath.Join(t.TempDir(), "missing.pdf")
	if _, _, err := opener.Open(missing); !apperrors.IsType(err, apperrors.ErrorTypePathNotFound) {
		t.Fatalf("expected path_not_found, got %v", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(garbage, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := opener.Open(garbage); !apperrors.IsType(err, apperrors.ErrorTypeOpen) {
		t.Fatalf("expected open_failure, got %v", err)
	}
}

func TestPDFDocumentOpener_RejectsForeignPages(t *testing.T) {
	_, dst, err := NewPDFDocumentOpener().Open(writeTestPDF(t, "x"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := dst.AddPage(fakePage(1)); err == nil {
		t.Fatalf("expected an error for a page from another document type")
	}
}

func countType0Fonts(ctx *model.Context) int {
	n := 0
	for _, entry := range ctx.XRefTable.Table {
		if entry == nil || entry.Free {
			continue
		}
		d, ok := entry.Object.(types.Dict)
		if !ok {
			continue
		}
		if typ, sub := d.Type(), d.Subtype(); typ != nil && *typ == "Font" && sub != nil && *sub == "Type0" {
			n++
		}
	}
	return n
}

func copyAllPages(t *testing.T, src domain.SourceDocument, dst domain.OutputDocument) []byte {
	t.Helper()
	for nr := 1; nr <= src.PageCount(); nr++ {
		page, err := src.Page(nr)
		if err != nil {
			t.Fatalf("page %d: %v", nr, err)
		}
		if err := dst.AddPage(page); err != nil {
			t.Fatalf("add page %d: %v", nr, err)
		}
	}
	var out bytes.Buffer
	if err := dst.Write(&out); err != nil {
		t.Fatalf("write: %v", err)
	}
	return out.Bytes()
}

func TestPDFDocumentOpener_PageTextDecodesCIDFonts(t *testing.T) {
	texts := []string{"Invoice for Alpha Corp", "Total due 1,250.00"}

	raw := pageContents(t, readPDF(t, testutil.BuildCIDFontPDF(texts...)))
	if bytes.Contains(raw[0], []byte("Alpha")) {
		t.Fatalf("expected glyph codes in the content stream, got %q", raw[0])
	}

	src, _, err := NewPDFDocumentOpener().Open(writeCIDFontTestPDF(t, texts...))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	for i, want := range texts {
		got, err := src.PageText(i + 1)
		if err != nil {
			t.Fatalf("page text %d: %v", i+1, err)
		}
		if got != want {
			t.Fatalf("page %d: expected %q, got %q", i+1, want, got)
		}
	}
	if _, err := src.PageText(3); !errors.Is(err, domain.ErrPageOutOfRange) {
		t.Fatalf("expected ErrPageOutOfRange, got %v", err)
	}
}

func TestPDFDocumentOpener_WriteMergesSharedFonts(t *testing.T) {
	texts := make([]string, 8)
	for i := range texts {
		texts[i] = "Quarterly report page " + strings.Repeat("x", i+1)
	}
	source := testutil.BuildCIDFontPDF(texts...)
	path := writeCIDFontTestPDF(t, texts...)

	src, dst, err := NewPDFDocumentOpener().Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	out := copyAllPages(t, src, dst)

	ctx := readPDF(t, out)
	if ctx.PageCount != len(texts) {
		t.Fatalf("expected %d pages, got %d", len(texts), ctx.PageCount)
	}
	if n := countType0Fonts(ctx); n != 1 {
		t.Fatalf("expected the shared font once in the output, found %d copies", n)
	}
	if len(out) > 2*len(source) {
		t.Fatalf("output grew from %d to %d bytes", len(source), len(out))
	}
}

func TestPDFDocumentOpener_CloseIsIdempotent(t *testing.T) {
	src, _, err := NewPDFDocumentOpener().Open(writeTestPDF(t, "only"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, err := src.PageText(1); err == nil {
		t.Fatalf("expected an error reading text after close")
	}
}
