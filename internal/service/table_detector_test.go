package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ledongthuc/pdf"
)

const glyphSize = 10.0

// glyphs lays out s one character per glyph starting at x on baseline y
func glyphs(s string, x, y float64) []pdf.Text {
	var out []pdf.Text
	for _, r := range s {
		out = append(out, pdf.Text{Font: "Helvetica", FontSize: glyphSize, X: x, Y: y, W: glyphSize / 2, S: string(r)})
		x += glyphSize / 2
	}
	return out
}

func tableRows(tables [][][]*string) [][][]string {
	out := make([][][]string, len(tables))
	for i, rows := range tables {
		for _, row := range rows {
			var cells []string
			for _, c := range row {
				cells = append(cells, cellText(c))
			}
			out[i] = append(out[i], cells)
		}
	}
	return out
}

func TestTableDetector_DetectsAlignedGrid(t *testing.T) {
	var texts []pdf.Text
	texts = append(texts, glyphs("Quarterly report", 50, 760)...)
	texts = append(texts, glyphs("Item", 50, 700)...)
	texts = append(texts, glyphs("Unit price", 200, 700)...)
	texts = append(texts, glyphs("Apple", 50, 685)...)
	texts = append(texts, glyphs("1.5", 200, 685)...)
	texts = append(texts, glyphs("Pear", 50, 670)...)
	texts = append(texts, glyphs("2.0", 200, 670)...)
	texts = append(texts, glyphs("Prices exclude tax", 50, 640)...)

	tables := NewTableDetector().Detect(texts)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	got := tableRows([][][]*string{tables[0].Rows})[0]
	want := [][]string{
		{"Item", "Unit price"},
		{"Apple", "1.5"},
		{"Pear", "2.0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected table (-want +got):\n%s", diff)
	}
}

func TestTableDetector_ProseHasNoTables(t *testing.T) {
	var texts []pdf.Text
	texts = append(texts, glyphs("Alpha beta gamma", 50, 700)...)
	texts = append(texts, glyphs("delta epsilon", 50, 685)...)

	if tables := NewTableDetector().Detect(texts); len(tables) != 0 {
		t.Fatalf("expected no tables, got %d", len(tables))
	}
}

func TestTableDetector_MisalignedRowsSplitTables(t *testing.T) {
	var texts []pdf.Text
	texts = append(texts, glyphs("A", 50, 700)...)
	texts = append(texts, glyphs("B", 200, 700)...)
	texts = append(texts, glyphs("C", 50, 685)...)
	texts = append(texts, glyphs("D", 200, 685)...)
	// Same cell count, shifted columns.
	texts = append(texts, glyphs("E", 100, 670)...)
	texts = append(texts, glyphs("F", 300, 670)...)

	tables := NewTableDetector().Detect(texts)
	if len(tables) != 1 {
		t.Fatalf("expected only the aligned block to form a table, got %d", len(tables))
	}
	if len(tables[0].Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tables[0].Rows))
	}
}

func TestTableDetector_SpaceGlyphsJoinWords(t *testing.T) {
	row := glyphs("New York", 50, 700)
	segs := NewTableDetector().segments(row)
	if len(segs) != 1 || segs[0].text != "New York" {
		t.Fatalf("expected a single segment 'New York', got %+v", segs)
	}
}
