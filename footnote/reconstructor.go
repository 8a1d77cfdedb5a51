package footnote

import (
	"strings"

	"github.com/ciphernaut/acma-bandplan-db/lexer"
	"github.com/ciphernaut/acma-bandplan-db/model"
)

// State is the reconstructor state
type State int

const (
	Idle State = iota
	Accumulating
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Accumulating:
		return "accumulating"
	default:
		return "unknown"
	}
}

// Reconstructor accumulates glossary lines into footnote records.
// The zero value is not usable; use New.
type Reconstructor struct {
	taxonomy model.Taxonomy
	state    State
	ref      string
	buffer   []string

	// seen holds references already emitted; later entries reusing one
	// are dropped.
	seen map[string]bool

	discarded int
}

// New creates a reconstructor for one taxonomy
func New(tax model.Taxonomy) *Reconstructor {
	return &Reconstructor{
		taxonomy: tax,
		state:    Idle,
		seen:     make(map[string]bool),
	}
}

// Taxonomy returns the taxonomy this reconstructor reads
func (r *Reconstructor) Taxonomy() model.Taxonomy { return r.taxonomy }

// State returns the current state
func (r *Reconstructor) State() State { return r.state }

// Current returns the open reference, if any
func (r *Reconstructor) Current() (string, bool) {
	return r.ref, r.state == Accumulating
}

// Discarded returns how many non-blank lines outside any entry were
// dropped so far.
func (r *Reconstructor) Discarded() int { return r.discarded }

// Feed consumes one line. When the line opens a new entry the previous one
// is finalized and returned with ok set.
func (r *Reconstructor) Feed(line string) (rec model.FootnoteRecord, ok bool) {
	l := lexer.ClassifyLine(r.taxonomy, line)
	switch l.Kind {
	case lexer.Reference:
		rec, ok = r.open(l.Ref, l.Text)
	case lexer.Continuation:
		if r.state == Accumulating {
			r.buffer = append(r.buffer, l.Text)
		} else {
			r.discarded++
		}
	case lexer.PageNumber:
		// Only outside an entry is a lone number a page number. Inside one
		// it is a bare reference or part of the text.
		switch {
		case r.state != Accumulating:
			r.discarded++
		case lexer.IsReference(r.taxonomy, l.Text):
			rec, ok = r.open(l.Text, "")
		default:
			r.buffer = append(r.buffer, l.Text)
		}
	}
	return rec, ok
}

// open starts a new entry, finalizing the open one first.
func (r *Reconstructor) open(ref, text string) (rec model.FootnoteRecord, ok bool) {
	if r.state == Accumulating {
		rec, ok = r.finalize()
	}
	r.state = Accumulating
	r.ref = ref
	r.buffer = []string{text}
	return rec, ok
}

// Flush finalizes the open entry at end of input and returns to Idle.
func (r *Reconstructor) Flush() (rec model.FootnoteRecord, ok bool) {
	if r.state != Accumulating {
		return rec, false
	}
	rec, ok = r.finalize()
	r.state = Idle
	r.ref = ""
	r.buffer = nil
	return rec, ok
}

// finalize joins the buffer into a record. A reference emitted before is
// not emitted again.
func (r *Reconstructor) finalize() (model.FootnoteRecord, bool) {
	if r.seen[r.ref] {
		return model.FootnoteRecord{}, false
	}
	r.seen[r.ref] = true
	return model.FootnoteRecord{
		Reference: r.ref,
		Text:      strings.TrimSpace(strings.Join(r.buffer, " ")),
	}, true
}

// Reconstruct runs a fresh reconstructor over lines and returns the
// entries in document order.
func Reconstruct(tax model.Taxonomy, lines []string) []model.FootnoteRecord {
	r := New(tax)
	var out []model.FootnoteRecord
	for _, line := range lines {
		if rec, ok := r.Feed(line); ok {
			out = append(out, rec)
		}
	}
	if rec, ok := r.Flush(); ok {
		out = append(out, rec)
	}
	return out
}
