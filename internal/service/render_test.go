package service

import (
	"testing"

	"pdf-edit-automation/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestRenderDocument_TextAndTables(t *testing.T) {
	doc := &domain.Document{
		Pages: []domain.Page{
			{Number: 1, Text: "Hello Alpha"},
			{Number: 2},
			{
				Number: 3,
				Text:   "Totals",
				Tables: []domain.Table{{Rows: [][]*string{
					{strPtr("Name"), strPtr("Qty")},
					{strPtr("Apple"), nil},
				}}},
			},
		},
	}

	want := "--- Page 1 Content ---\n" +
		"Hello Alpha\n\n" +
		"--- Page 2 Content ---\n" +
		"--- Page 3 Content ---\n" +
		"Totals\n\n" +
		"--- Tables on Page 3 ---\n" +
		"Table 1:\n" +
		"| Name | Qty |\n" +
		"|------|----|\n" +
		"| Apple |  |\n" +
		"\n" +
		"\n"

	if got := RenderDocument(doc); got != want {
		t.Fatalf("unexpected rendering:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderDocument_NullHeaderCell(t *testing.T) {
	doc := &domain.Document{Pages: []domain.Page{{
		Number: 1,
		Tables: []domain.Table{{Rows: [][]*string{{nil, strPtr("ab")}}}},
	}}}

	want := "--- Page 1 Content ---\n" +
		"--- Tables on Page 1 ---\n" +
		"Table 1:\n" +
		"|  | ab |\n" +
		"|--|---|\n" +
		"\n\n"

	if got := RenderDocument(doc); got != want {
		t.Fatalf("unexpected rendering:\n%q\nwant:\n%q", got, want)
	}
}
