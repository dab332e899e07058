// Package testutil generates fixtures shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// BuildPDF assembles a minimal uncompressed PDF with one Helvetica text line per page
func BuildPDF(pageTexts ...string) []byte {
	var (
		buf     bytes.Buffer
		offsets []int
	)

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := ""
	for i := range pageTexts {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pageTexts)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, text := range pageTexts {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// BuildCIDFontPDF assembles a PDF whose pages share one subset Type0 font
// with Identity-H encoding, the way office suites export text. Content
// streams hold two-byte glyph codes, and only the ToUnicode CMap maps them
// back to the page text.
func BuildCIDFontPDF(pageTexts ...string) []byte {
	codes := map[rune]int{}
	for _, text := range pageTexts {
		for _, r := range text {
			if _, ok := codes[r]; !ok {
				codes[r] = 3 + len(codes)
			}
		}
	}

	var (
		buf     bytes.Buffer
		offsets []int
	)

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}
	stream := func(data string) {
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data))
	}

	buf.WriteString("%PDF-1.4\n")

	kids := ""
	for i := range pageTexts {
		kids += fmt.Sprintf("%d 0 R ", 7+2*i)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(pageTexts)))
	obj("<< /Type /Font /Subtype /Type0 /BaseFont /ABCDEF+Calibri /Encoding /Identity-H " +
		"/DescendantFonts [4 0 R] /ToUnicode 6 0 R >>")
	obj("<< /Type /Font /Subtype /CIDFontType2 /BaseFont /ABCDEF+Calibri " +
		"/CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> " +
		"/FontDescriptor 5 0 R /CIDToGIDMap /Identity /DW 500 >>")
	obj("<< /Type /FontDescriptor /FontName /ABCDEF+Calibri /Flags 32 /FontBBox [-500 -250 1500 1000] " +
		"/ItalicAngle 0 /Ascent 800 /Descent -200 /CapHeight 700 /StemV 80 >>")
	stream(toUnicodeCMap(codes))
	for i, text := range pageTexts {
		var hex strings.Builder
		for _, r := range text {
			fmt.Fprintf(&hex, "%04X", codes[r])
		}
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td <%s> Tj ET", hex.String())
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 8+2*i))
		stream(content)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func toUnicodeCMap(codes map[rune]int) string {
	runes := make([]rune, 0, len(codes))
	for r := range codes {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return codes[runes[i]] < codes[runes[j]] })

	var b strings.Builder
	b.WriteString("/CIDInit /ProcSet findresource begin\n12 dict begin\nbegincmap\n" +
		"/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n" +
		"/CMapName /Adobe-Identity-UCS def\n/CMapType 2 def\n" +
		"1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")
	// bfchar blocks hold at most 100 entries
	for start := 0; start < len(runes); start += 100 {
		end := min(start+100, len(runes))
		fmt.Fprintf(&b, "%d beginbfchar\n", end-start)
		for _, r := range runes[start:end] {
			fmt.Fprintf(&b, "<%04X> <%04X>\n", codes[r], r)
		}
		b.WriteString("endbfchar\n")
	}
	b.WriteString("endcmap\nCMapName currentdict /CMap defineresource pop\nend\nend")
	return b.String()
}

// WriteCIDFontPDF writes a BuildCIDFontPDF document into a temp dir and returns its path
func WriteCIDFontPDF(t testing.TB, pageTexts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.pdf")
	if err := os.WriteFile(path, BuildCIDFontPDF(pageTexts...), 0o644); err != nil {
		t.Fatalf("write test pdf: %v", err)
	}
	return path
}

// WritePDF writes a generated PDF into a temp dir and returns its path
func WritePDF(t testing.TB, pageTexts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.pdf")
	if err := os.WriteFile(path, BuildPDF(pageTexts...), 0o644); err != nil {
		t.Fatalf("write test pdf: %v", err)
	}
	return path
}
