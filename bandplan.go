// Package bandplan provides a fluent API for turning a frequency
// allocation table and its footnote glossaries into structured records.
//
// Basic usage:
//
//	records, warnings, err := bandplan.Open("spectrum-plan.html").Allocations()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", bandplan.FormatWarnings(warnings))
//	}
//
// With options:
//
//	notes, _, err := bandplan.Open("spectrum-plan.json").
//	    DomesticFootnotePages(112, 119).
//	    Footnotes(model.Domestic)
//
// A complete extraction into a sink reads both glossaries and then the
// allocation table:
//
//	db, _ := store.OpenSQLite(ctx, "bandplan.db")
//	summary, warnings, err := bandplan.Open("spectrum-plan.html").Run(ctx, db)
//
// Page numbers are physical and 1-indexed. Ranges are inclusive.
//
// For lower-level access, use the allocation, footnote and lexer packages
// directly.
package bandplan

import (
	"errors"

	"github.com/ciphernaut/acma-bandplan-db/source"
)

var (
	// ErrNoSource is returned when an Extractor has neither a path nor a
	// provider.
	ErrNoSource = errors.New("no source specified")
	// ErrUnsupportedFormat is returned when a path is not a readable
	// document.
	ErrUnsupportedFormat = errors.New("unsupported source format")
)

// Open returns an Extractor for the document at path. The format is
// detected from the extension, falling back to the content; directories
// are read as page images. The document is opened lazily by the first
// terminal operation, which also closes it.
//
// Example:
//
//	records, warnings, err := bandplan.Open("spectrum-plan.json").Allocations()
func Open(path string) *Extractor {
	return &Extractor{
		path:    path,
		options: defaultOptions(),
	}
}

// FromProvider creates an Extractor over an already-opened provider.
// The caller is responsible for closing the provider.
//
// Example:
//
//	p, err := htmldoc.Open("spectrum-plan.html")
//	if err != nil {
//	    // handle error
//	}
//	defer p.Close()
//	records, _, err := bandplan.FromProvider(p).AllocationPages(1, 4).Allocations()
func FromProvider(p source.Provider) *Extractor {
	return &Extractor{
		provider:       p,
		ownsProvider:   false,
		providerOpened: true,
		options:        defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords is a helper that wraps a call to Allocations() or
// Footnotes() and panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	records := bandplan.MustRecords(bandplan.Open("plan.json").Allocations())
func MustRecords[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
