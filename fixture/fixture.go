// Package fixture reads documents whose layout analysis was already done
// elsewhere: every page is given as its text lines and raw tables, in
// JSON or YAML.
//
//	title: Australian Radiofrequency Spectrum Plan 2021
//	pages:
//	  - number: 31
//	    lines: [MHz, Australian Table of Frequency Allocations]
//	    tables:
//	      - - [Region 1, Region 2, Region 3]
//	        - [null, null, "8.3 – 9\nMETEOROLOGICAL AIDS\nFIXED"]
//
// Page numbers are optional; a page without one takes the number after
// the previous page. Gaps are filled with empty pages so page numbers stay
// physical. A page may give "text" instead of "lines"; it is split on line
// breaks.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ciphernaut/acma-bandplan-db/format"
	"github.com/ciphernaut/acma-bandplan-db/model"
	"github.com/ciphernaut/acma-bandplan-db/source"
)

// File is the serialized form of a document
type File struct {
	Title string     `json:"title,omitempty" yaml:"title,omitempty"`
	Pages []PageFile `json:"pages" yaml:"pages"`
}

// PageFile is the serialized form of a page. Tables are rows of cells.
type PageFile struct {
	Number int          `json:"number,omitempty" yaml:"number,omitempty"`
	Lines  []string     `json:"lines,omitempty" yaml:"lines,omitempty"`
	Text   string       `json:"text,omitempty" yaml:"text,omitempty"`
	Tables [][][]string `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Reader provides access to a fixture document.
type Reader struct {
	*source.Memory
	title string
}

var _ source.Provider = (*Reader)(nil)

// Open opens a JSON or YAML fixture, choosing the decoder by extension.
func Open(filename string) (*Reader, error) {
	f := format.Detect(filename)
	if f != format.JSON && f != format.YAML {
		return nil, fmt.Errorf("fixture %s: unsupported format %s", filename, f)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return OpenReader(file, f)
}

// OpenReader decodes a fixture of the given format from r.
func OpenReader(r io.Reader, f format.Format) (*Reader, error) {
	var file File
	switch f {
	case format.JSON:
		if err := json.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing JSON fixture: %w", err)
		}
	case format.YAML:
		if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing YAML fixture: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported fixture format: %s", f)
	}

	doc, err := file.Document()
	if err != nil {
		return nil, err
	}
	return &Reader{Memory: source.NewMemory(doc), title: file.Title}, nil
}

// Title returns the document title, if the fixture has one
func (r *Reader) Title() string { return r.title }

// Document builds the in-memory document described by the file.
func (f *File) Document() (*model.Document, error) {
	doc := model.NewDocument()
	doc.Title = f.Title

	next := 1
	for i, pf := range f.Pages {
		number := pf.Number
		if number == 0 {
			number = next
		}
		if number < next {
			return nil, fmt.Errorf("fixture page %d: number %d is not increasing", i, number)
		}
		for doc.PageCount() < number-1 {
			doc.AddPage(model.NewPage(0))
		}

		page := model.NewPage(0)
		if len(pf.Lines) > 0 {
			page.Lines = append(page.Lines, pf.Lines...)
		} else if pf.Text != "" {
			page.Lines = strings.Split(strings.ReplaceAll(pf.Text, "\r\n", "\n"), "\n")
		}
		for _, rows := range pf.Tables {
			page.AddTable(model.TableFromStrings(rows))
		}
		doc.AddPage(page)
		next = number + 1
	}
	return doc, nil
}

// FromDocument builds the serialized form of doc. Empty pages are left out.
func FromDocument(doc *model.Document) *File {
	file := &File{Title: doc.Title, Pages: make([]PageFile, 0, doc.PageCount())}
	for _, p := range doc.Pages {
		if len(p.Lines) == 0 && len(p.Tables) == 0 {
			continue
		}
		pf := PageFile{Number: p.Number, Lines: append([]string(nil), p.Lines...)}
		for _, t := range p.Tables {
			rows := make([][]string, t.RowCount())
			for i := range t.Rows {
				rows[i] = t.RowTexts(i)
			}
			pf.Tables = append(pf.Tables, rows)
		}
		file.Pages = append(file.Pages, pf)
	}
	return file
}

// Encode writes doc as a fixture of the given format.
func Encode(w io.Writer, doc *model.Document, f format.Format) error {
	file := FromDocument(doc)
	switch f {
	case format.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(file)
	case format.YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("encoding YAML fixture: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML fixture: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unsupported fixture format: %s", f)
	}
}
