package service

import (
	"math"
	"sort"
	"strings"

	"pdf-edit-automation/internal/domain"

	"github.com/ledongthuc/pdf"
)

// TableDetector finds grid-like runs of text rows on a page from positioned glyphs.
// A table is at least MinRows consecutive rows that split into the same number
// (at least MinCols) of cells whose left or right edges line up.
type TableDetector struct {
	RowTolerance    float64 // max Y distance (pt) for glyphs on the same row
	ColumnTolerance float64 // max X distance (pt) for aligned cell edges
	CellGapFactor   float64 // gap, in font sizes, that starts a new cell
	WordGapFactor   float64 // gap, in font sizes, that inserts a space
	MinRows         int
	MinCols         int
}

// NewTableDetector creates a detector with defaults suited to body text between 8 and 14pt
func NewTableDetector() *TableDetector {
	return &TableDetector{
		RowTolerance:    2.0,
		ColumnTolerance: 6.0,
		CellGapFactor:   1.5,
		WordGapFactor:   0.2,
		MinRows:         2,
		MinCols:         2,
	}
}

type cellSegment struct {
	left  float64
	right float64
	text  string
}

// Detect returns the tables found among texts, top to bottom
func (d *TableDetector) Detect(texts []pdf.Text) []domain.Table {
	var (
		tables  []domain.Table
		current [][]cellSegment
	)

	flush := func() {
		if len(current) >= d.MinRows {
			tables = append(tables, toTable(current))
		}
		current = nil
	}

	for _, row := range d.groupRows(texts) {
		segs := d.segments(row)
		if len(segs) < d.MinCols {
			flush()
			continue
		}
		if current != nil && !d.aligned(current[0], segs) {
			flush()
		}
		current = append(current, segs)
	}
	flush()

	return tables
}

// groupRows buckets glyphs by baseline and returns rows top to bottom, each sorted left to right
func (d *TableDetector) groupRows(texts []pdf.Text) [][]pdf.Text {
	type rowBucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}

	var buckets []rowBucket
	for _, t := range texts {
		found := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-d.RowTolerance && t.Y <= buckets[i].yMax+d.RowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				buckets[i].yMin = math.Min(buckets[i].yMin, t.Y)
				buckets[i].yMax = math.Max(buckets[i].yMax, t.Y)
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, rowBucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}

	// PDF user space grows upwards, so the top row has the highest Y.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([][]pdf.Text, len(buckets))
	for i, b := range buckets {
		row := b.texts
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		rows[i] = row
	}
	return rows
}

// segments merges a row's glyphs into cells separated by wide horizontal gaps
func (d *TableDetector) segments(row []pdf.Text) []cellSegment {
	var (
		segs         []cellSegment
		cur          *cellSegment
		sb           strings.Builder
		pendingSpace bool
	)

	closeCell := func() {
		if cur != nil {
			cur.text = strings.TrimSpace(sb.String())
			segs = append(segs, *cur)
		}
		cur = nil
		sb.Reset()
		pendingSpace = false
	}

	for _, t := range row {
		if strings.TrimSpace(t.S) == "" {
			pendingSpace = cur != nil
			continue
		}

		fontSize := t.FontSize
		if fontSize <= 0 {
			fontSize = 10
		}

		if cur != nil {
			gap := t.X - cur.right
			if gap > d.CellGapFactor*fontSize {
				closeCell()
			} else if pendingSpace || gap > d.WordGapFactor*fontSize {
				sb.WriteByte(' ')
			}
		}
		if cur == nil {
			cur = &cellSegment{left: t.X}
		}
		sb.WriteString(t.S)
		cur.right = math.Max(cur.right, t.X+t.W)
		pendingSpace = false
	}
	closeCell()

	return segs
}

// aligned reports whether segs has the same column layout as the table's first row
func (d *TableDetector) aligned(first, segs []cellSegment) bool {
	if len(first) != len(segs) {
		return false
	}
	for i := range segs {
		leftOK := math.Abs(segs[i].left-first[i].left) <= d.ColumnTolerance
		rightOK := math.Abs(segs[i].right-first[i].right) <= d.ColumnTolerance
		if !leftOK && !rightOK {
			return false
		}
	}
	return true
}

func toTable(rows [][]cellSegment) domain.Table {
	table := domain.Table{Rows: make([][]*string, len(rows))}
	for r, segs := range rows {
		cells := make([]*string, len(segs))
		for c := range segs {
			text := segs[c].text
			cells[c] = &text
		}
		table.Rows[r] = cells
	}
	return table
}
