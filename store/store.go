// Package store persists allocation and footnote records.
//
// Every sink follows insert-or-ignore semantics: the first record written
// for a key wins and later ones are silently dropped. The key is the
// frequency range for allocations and the reference, per taxonomy, for
// footnotes.
package store

import (
	"context"
	"sync"

	"github.com/ciphernaut/acma-bandplan-db/model"
)

// Sink accepts parsed records. Both methods return how many records were
// new.
type Sink interface {
	PutAllocations(ctx context.Context, recs []model.AllocationRecord) (int, error)
	PutFootnotes(ctx context.Context, tax model.Taxonomy, recs []model.FootnoteRecord) (int, error)
}

// Memory is an in-memory Sink. It is safe for concurrent use.
type Memory struct {
	mu          sync.Mutex
	allocations []model.AllocationRecord
	byRange     map[string]bool
	footnotes   map[model.Taxonomy][]model.FootnoteRecord
	byRef       map[model.Taxonomy]map[string]bool
}

var _ Sink = (*Memory)(nil)

// NewMemory creates an empty in-memory sink
func NewMemory() *Memory {
	return &Memory{
		byRange:   make(map[string]bool),
		footnotes: make(map[model.Taxonomy][]model.FootnoteRecord),
		byRef:     make(map[model.Taxonomy]map[string]bool),
	}
}

// PutAllocations stores records whose frequency range is not yet known
func (m *Memory) PutAllocations(_ context.Context, recs []model.AllocationRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range recs {
		if m.byRange[r.FrequencyRange] {
			continue
		}
		m.byRange[r.FrequencyRange] = true
		m.allocations = append(m.allocations, r)
		n++
	}
	return n, nil
}

// PutFootnotes stores records whose reference is not yet known
func (m *Memory) PutFootnotes(_ context.Context, tax model.Taxonomy, recs []model.FootnoteRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := m.byRef[tax]
	if seen == nil {
		seen = make(map[string]bool)
		m.byRef[tax] = seen
	}
	n := 0
	for _, r := range recs {
		if seen[r.Reference] {
			continue
		}
		seen[r.Reference] = true
		m.footnotes[tax] = append(m.footnotes[tax], r)
		n++
	}
	return n, nil
}

// Allocations returns the stored allocations in insertion order
func (m *Memory) Allocations() []model.AllocationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.AllocationRecord(nil), m.allocations...)
}

// Footnotes returns the stored footnotes of a taxonomy in insertion order
func (m *Memory) Footnotes(tax model.Taxonomy) []model.FootnoteRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.FootnoteRecord(nil), m.footnotes[tax]...)
}
