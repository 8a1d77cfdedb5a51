// Package source defines the document provider boundary.
//
// A [Provider] hands out pages by physical page number. The concrete
// providers live in their own packages: fixture (pre-extracted JSON or
// YAML), htmldoc (HTML exports) and scan (OCR of page images).
package source

import (
	"errors"
	"fmt"

	"github.com/ciphernaut/acma-bandplan-db/model"
)

// ErrPageOutOfRange is returned for a page number outside 1..PageCount.
var ErrPageOutOfRange = errors.New("page out of range")

// Provider supplies the pages of one document. Page numbers are 1-indexed.
type Provider interface {
	// PageCount returns the number of pages
	PageCount() int
	// Page returns the text lines and raw tables of a page
	Page(number int) (*model.Page, error)
	// Close releases resources held by the provider
	Close() error
}

// Memory serves pages of an in-memory document.
type Memory struct {
	doc *model.Document
}

// NewMemory wraps doc. A nil doc is treated as an empty document.
func NewMemory(doc *model.Document) *Memory {
	if doc == nil {
		doc = model.NewDocument()
	}
	return &Memory{doc: doc}
}

// Document returns the wrapped document
func (m *Memory) Document() *model.Document { return m.doc }

// PageCount returns the number of pages
func (m *Memory) PageCount() int { return m.doc.PageCount() }

// Page returns the page with the given number
func (m *Memory) Page(number int) (*model.Page, error) {
	p := m.doc.GetPage(number)
	if p == nil {
		return nil, fmt.Errorf("page %d: %w (1-%d)", number, ErrPageOutOfRange, m.doc.PageCount())
	}
	return p, nil
}

// Close is a no-op
func (m *Memory) Close() error { return nil }

// CheckPage validates a page number against a provider.
func CheckPage(p Provider, number int) error {
	if number < 1 || number > p.PageCount() {
		return fmt.Errorf("page %d: %w (1-%d)", number, ErrPageOutOfRange, p.PageCount())
	}
	return nil
}
