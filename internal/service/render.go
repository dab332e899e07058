package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pdf-edit-automation/internal/domain"
)

// RenderDocument renders extracted pages as page-delimited text with tables as pipe grids
func RenderDocument(doc *domain.Document) string {
	var sb strings.Builder
	for _, page := range doc.Pages {
		fmt.Fprintf(&sb, "--- Page %d Content ---\n", page.Number)
		if page.Text != "" {
			sb.WriteString(page.Text)
			sb.WriteString("\n\n")
		}

		if len(page.Tables) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "--- Tables on Page %d ---\n", page.Number)
		for i, table := range page.Tables {
			fmt.Fprintf(&sb, "Table %d:\n", i+1)
			renderTable(&sb, table)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderTable writes the header row, a dash separator sized to the header cells, then the data rows
func renderTable(sb *strings.Builder, table domain.Table) {
	if len(table.Rows) == 0 {
		return
	}

	header := table.Rows[0]
	writeRow(sb, header)

	dashes := make([]string, len(header))
	for i, cell := range header {
		dashes[i] = strings.Repeat("-", utf8.RuneCountInString(cellText(cell)))
	}
	sb.WriteString("|-" + strings.Join(dashes, "-|") + "-|\n")

	for _, row := range table.Rows[1:] {
		writeRow(sb, row)
	}
}

func writeRow(sb *strings.Builder, row []*string) {
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = cellText(cell)
	}
	sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
}

func cellText(cell *string) string {
	if cell == nil {
		return ""
	}
	return *cell
}
