package lexer

import "strings"

// RowKind tags a raw table row
type RowKind int

const (
	// Spacer rows have no content in any cell.
	Spacer RowKind = iota
	Data
)

// ClassifyRow tags a row by its cell texts
func ClassifyRow(cells []string) RowKind {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return Data
		}
	}
	return Spacer
}

// SplitLines splits cell text on line breaks and returns the trimmed,
// non-empty lines.
func SplitLines(cell string) []string {
	raw := strings.Split(strings.ReplaceAll(cell, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
