package pdfops

import (
	"sort"
	"strings"
)

// Table detection tuning. Cells on a row must be separated by at least
// minCellGap points, and a table needs at least minTableRows consecutive
// rows whose column starts line up within columnTolerance points.
const (
	minCellGap      = 12.0
	columnTolerance = 6.0
	minTableRows    = 2
	minTableCols    = 2
)

// ExtractTables detects table-like structures on the selected page, or on
// every page when page is 0. Detection is a layout heuristic over the
// positioned text runs: rows with two or more horizontally separated cells
// whose column positions repeat across consecutive rows.
func ExtractTables(path string, page int) ([]Table, error) {
	r, closeFn, err := openReader(path)
	if err != nil {
		return nil, err
	}
	total := r.NumPage()
	closeFn()

	pages, err := pageRange(page, total)
	if err != nil {
		return nil, err
	}

	var tables []Table
	for _, n := range pages {
		words, _, _, err := PageWords(path, n)
		if err != nil {
			return nil, err
		}
		for _, t := range DetectTables(words) {
			t.Page = n
			tables = append(tables, t)
		}
	}
	return tables, nil
}

// tableRow is one candidate row: a line whose words split into 2+ cells.
type tableRow struct {
	cells  []tableCell
	y      float64
	height float64
}

type tableCell struct {
	text string
	x    float64
	x1   float64
}

// DetectTables runs the table heuristic over positioned words of one page.
// Exported so the heuristic is testable on synthetic input.
func DetectTables(words []Word) []Table {
	rows := candidateRows(words)
	if len(rows) < minTableRows {
		return nil
	}

	var tables []Table
	var run []tableRow
	flush := func() {
		if len(run) >= minTableRows {
			tables = append(tables, rowsToTable(run))
		}
		run = nil
	}

	for _, row := range rows {
		if len(run) > 0 && !rowsAlign(run[len(run)-1], row) {
			flush()
		}
		run = append(run, row)
	}
	flush()

	return tables
}

// candidateRows groups words into lines and keeps lines that split into
// multiple cells separated by clear horizontal gaps.
func candidateRows(words []Word) []tableRow {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows []tableRow
	var lineWords []Word
	flushLine := func() {
		if len(lineWords) == 0 {
			return
		}
		if row, ok := lineToRow(lineWords); ok {
			rows = append(rows, row)
		}
		lineWords = nil
	}

	for i, w := range sorted {
		if i > 0 {
			size := sorted[i-1].FontSize
			if size <= 0 {
				size = 10
			}
			if abs(w.Y-sorted[i-1].Y) > size/2 {
				flushLine()
			}
		}
		lineWords = append(lineWords, w)
	}
	flushLine()

	return rows
}

func lineToRow(words []Word) (tableRow, bool) {
	row := tableRow{y: words[0].Y, height: words[0].FontSize}

	cell := tableCell{text: words[0].S, x: words[0].X, x1: words[0].X + words[0].W}
	for _, w := range words[1:] {
		if w.X-cell.x1 >= minCellGap {
			row.cells = append(row.cells, cell)
			cell = tableCell{text: w.S, x: w.X, x1: w.X + w.W}
			continue
		}
		cell.text += " " + w.S
		if w.X+w.W > cell.x1 {
			cell.x1 = w.X + w.W
		}
	}
	row.cells = append(row.cells, cell)

	if len(row.cells) < minTableCols {
		return tableRow{}, false
	}
	return row, true
}

// rowsAlign reports whether two candidate rows share a column structure:
// the same cell count with each column start within tolerance.
func rowsAlign(a, b tableRow) bool {
	if len(a.cells) != len(b.cells) {
		return false
	}
	gap := b.y - a.y
	if gap < 0 {
		gap = -gap
	}
	height := maxFloat(a.height, b.height)
	if height <= 0 {
		height = 10
	}
	if gap > 3*height {
		return false
	}
	for i := range a.cells {
		if abs(a.cells[i].x-b.cells[i].x) > columnTolerance {
			return false
		}
	}
	return true
}

func rowsToTable(rows []tableRow) Table {
	t := Table{
		X0: rows[0].cells[0].x,
		Y0: rows[0].y - rows[0].height,
		Y1: rows[len(rows)-1].y,
	}
	for _, row := range rows {
		cells := make([]string, len(row.cells))
		for i, c := range row.cells {
			cells[i] = strings.TrimSpace(c.text)
			if c.x < t.X0 {
				t.X0 = c.x
			}
			if c.x1 > t.X1 {
				t.X1 = c.x1
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
