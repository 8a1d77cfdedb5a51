package model

import "strings"

// Page is a single physical page of the source document
type Page struct {
	Number int      // 1-indexed physical page number
	Lines  []string // Text lines in reading order
	Tables []*Table // Raw tables found on the page
}

// NewPage creates an empty page with the given physical number
func NewPage(number int) *Page {
	return &Page{
		Number: number,
		Lines:  make([]string, 0),
		Tables: make([]*Table, 0),
	}
}

// AddLine appends a text line
func (p *Page) AddLine(line string) {
	p.Lines = append(p.Lines, line)
}

// AddTable appends a raw table
func (p *Page) AddTable(t *Table) {
	p.Tables = append(p.Tables, t)
}

// NonEmptyLines returns the lines that contain something other than
// whitespace, right-trimmed.
func (p *Page) NonEmptyLines() []string {
	out := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, strings.TrimRight(l, " \t\r"))
	}
	return out
}
