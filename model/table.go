package model

import "strings"

// Table is a raw table: an ordered sequence of rows, each an ordered
// sequence of cells. Rows may have different lengths.
type Table struct {
	Rows [][]Cell
}

// TableFromStrings builds a table from rows of cell text.
func TableFromStrings(rows [][]string) *Table {
	t := &Table{Rows: make([][]Cell, len(rows))}
	for i, row := range rows {
		t.Rows[i] = make([]Cell, len(row))
		for j, text := range row {
			t.Rows[i][j] = Cell{Text: text}
		}
	}
	return t
}

// AddRow appends a row of cells
func (t *Table) AddRow(cells ...Cell) {
	t.Rows = append(t.Rows, cells)
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the widest row
func (t *Table) ColCount() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// RowTexts returns the text of every cell of a row
func (t *Table) RowTexts(row int) []string {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	out := make([]string, len(t.Rows[row]))
	for i, c := range t.Rows[row] {
		out[i] = c.Text
	}
	return out
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell.Text
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell is a single table cell. Text may be empty or span several lines.
type Cell struct {
	Text     string
	IsHeader bool
}

// IsEmpty reports whether the cell holds only whitespace
func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == ""
}
