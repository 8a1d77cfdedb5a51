package bandplan

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ciphernaut/acma-bandplan-db/allocation"
	"github.com/ciphernaut/acma-bandplan-db/fixture"
	"github.com/ciphernaut/acma-bandplan-db/footnote"
	"github.com/ciphernaut/acma-bandplan-db/format"
	"github.com/ciphernaut/acma-bandplan-db/htmldoc"
	"github.com/ciphernaut/acma-bandplan-db/internal/metrics"
	"github.com/ciphernaut/acma-bandplan-db/model"
	"github.com/ciphernaut/acma-bandplan-db/scan"
	"github.com/ciphernaut/acma-bandplan-db/source"
)

// Extractor provides a fluent interface for extracting band plan records.
// Each configuration method returns a new Extractor instance, making it
// safe to branch configurations and allowing method chaining.
type Extractor struct {
	// Source
	path string

	provider source.Provider

	// Lifecycle
	ownsProvider   bool // true if we opened the provider and should close it
	providerOpened bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		path:           e.path,
		provider:       e.provider,
		ownsProvider:   e.ownsProvider,
		providerOpened: e.providerOpened,
		options:        e.options.clone(),
		err:            e.err,
	}
}

// ensureProvider opens the provider if not already open.
func (e *Extractor) ensureProvider() error {
	if e.providerOpened {
		return nil
	}
	if e.path == "" {
		return ErrNoSource
	}

	f, err := format.DetectPath(e.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", e.path, err)
	}

	var p source.Provider
	switch f {
	case format.JSON, format.YAML:
		p, err = openFixture(e.path, f)
	case format.HTML:
		p, err = htmldoc.Open(e.path)
	case format.PNG, format.TIFF, format.ImageDir:
		p, err = scan.Open(e.path)
	default:
		return fmt.Errorf("%s: %w", e.path, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s %s: %w", f, e.path, err)
	}

	e.provider = p
	e.ownsProvider = true
	e.providerOpened = true
	return nil
}

// openFixture decodes a fixture whose format may have come from its
// content rather than its extension.
func openFixture(path string, f format.Format) (*fixture.Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return fixture.OpenReader(file, f)
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsProvider && e.provider != nil {
		err := e.provider.Close()
		e.provider = nil
		e.ownsProvider = false
		e.providerOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

func (e *Extractor) withPages(target *pageSpan, name string, first, last int) {
	span := pageSpan{first, last}
	if !span.valid() && e.err == nil {
		e.err = fmt.Errorf("%s pages %d-%d: invalid range", name, first, last)
	}
	*target = span
}

// AllocationPages sets the pages holding the allocation table (1-indexed,
// inclusive).
//
// Example:
//
//	records, _, err := bandplan.Open("plan.json").AllocationPages(31, 112).Allocations()
func (e *Extractor) AllocationPages(first, last int) *Extractor {
	newExt := e.clone()
	newExt.withPages(&newExt.options.allocationPages, "allocation", first, last)
	return newExt
}

// DomesticFootnotePages sets the pages holding the domestic (AUS)
// footnote glossary.
func (e *Extractor) DomesticFootnotePages(first, last int) *Extractor {
	newExt := e.clone()
	newExt.withPages(&newExt.options.domesticPages, "domestic footnote", first, last)
	return newExt
}

// InternationalFootnotePages sets the pages holding the international
// footnote glossary.
func (e *Extractor) InternationalFootnotePages(first, last int) *Extractor {
	newExt := e.clone()
	newExt.withPages(&newExt.options.internationalPages, "international footnote", first, last)
	return newExt
}

// HeaderRows sets how many leading rows of every table are column headers.
// Negative values are treated as zero.
func (e *Extractor) HeaderRows(n int) *Extractor {
	newExt := e.clone()
	if n < 0 {
		n = 0
	}
	newExt.options.headerRows = n
	return newExt
}

// WithLogger sets the logger. A nil logger means slog.Default().
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// WithMetrics records counters into m.
func (e *Extractor) WithMetrics(m *metrics.Metrics) *Extractor {
	newExt := e.clone()
	newExt.options.metrics = m
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// PageCount returns the number of pages in the document.
// The provider remains open.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureProvider(); err != nil {
		return 0, err
	}
	return e.provider.PageCount(), nil
}

// Allocations classifies every table row on the allocation pages. Records
// come back in document order; duplicate frequency ranges are not removed
// here, that is left to the sink.
// This is a terminal operation that closes the underlying provider.
//
// Example:
//
//	records, warnings, err := bandplan.Open("plan.html").AllocationPages(31, 112).Allocations()
func (e *Extractor) Allocations() ([]model.AllocationRecord, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureProvider(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	run := e.newRun()
	var out []model.AllocationRecord
	err := run.allocations(context.Background(), func(_ int, recs []model.AllocationRecord) error {
		out = append(out, recs...)
		return nil
	})
	return out, run.warnings, err
}

// Footnotes reconstructs the glossary of one taxonomy. A reference is
// returned once, with the text of its first entry.
// This is a terminal operation that closes the underlying provider.
//
// Example:
//
//	notes, warnings, err := bandplan.Open("plan.html").Footnotes(model.International)
func (e *Extractor) Footnotes(tax model.Taxonomy) ([]model.FootnoteRecord, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureProvider(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	run := e.newRun()
	recs, err := run.footnotes(context.Background(), tax)
	return recs, run.warnings, err
}

// ============================================================================
// Extraction passes
// ============================================================================

// extraction holds the state of one terminal operation.
type extraction struct {
	provider source.Provider
	options  ExtractOptions
	logger   *slog.Logger
	metrics  *metrics.Metrics

	warnings []Warning

	pagesProcessed int
	pagesSkipped   int
}

func (e *Extractor) newRun() *extraction {
	return &extraction{
		provider: e.provider,
		options:  e.options,
		logger:   e.options.log(),
		metrics:  e.options.metrics,
	}
}

func (x *extraction) warn(stage Stage, page int, format string, args ...any) {
	x.warnings = append(x.warnings, Warning{
		Stage:   stage,
		Page:    page,
		Message: fmt.Sprintf(format, args...),
	})
	x.metrics.Warning()
}

// resolvePages clips span to the document and returns its page numbers.
func (x *extraction) resolvePages(stage Stage, span pageSpan) []int {
	count := x.provider.PageCount()
	if span.first > count {
		x.warn(stage, 0, "pages %d-%d are beyond the last page %d", span.first, span.last, count)
		return nil
	}
	last := span.last
	if last > count {
		x.warn(stage, 0, "pages %d-%d truncated to %d-%d", span.first, span.last, span.first, count)
		last = count
	}
	numbers := make([]int, 0, last-span.first+1)
	for n := span.first; n <= last; n++ {
		numbers = append(numbers, n)
	}
	return numbers
}

// loadPage reads one page. A page that fails to load is skipped with a
// warning.
func (x *extraction) loadPage(stage Stage, number int) (*model.Page, bool) {
	p, err := x.provider.Page(number)
	if err != nil {
		x.logger.Warn("skipping unreadable page",
			slog.String("stage", string(stage)),
			slog.Int("page", number),
			slog.String("error", err.Error()))
		x.warn(stage, number, "could not read page: %v", err)
		x.metrics.PageSkipped(string(stage))
		x.pagesSkipped++
		return nil, false
	}
	return p, true
}

// allocations runs the allocation pass, handing each page's records to
// emit in page order.
func (x *extraction) allocations(ctx context.Context, emit func(page int, recs []model.AllocationRecord) error) error {
	const stage = StageAllocations
	classifier := &allocation.Classifier{HeaderRows: x.options.headerRows}

	for _, number := range x.resolvePages(stage, x.options.allocationPages) {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, ok := x.loadPage(stage, number)
		if !ok {
			continue
		}

		res, ok := classifier.ProcessPage(p)
		if !ok {
			x.logger.Debug("skipping page without unit", slog.Int("page", number))
			x.warn(stage, number, "no unit in the first %d lines, page skipped", allocation.UnitScanLines)
			x.metrics.PageSkipped(string(stage))
			x.pagesSkipped++
			continue
		}

		for _, rec := range res.Records {
			if rec.FrequencyRange == "" {
				x.warn(stage, number, "row without frequency range kept with an empty key (description %q)", rec.Description)
			}
		}
		x.metrics.Rows(len(res.Records), res.Skipped)
		x.metrics.PageProcessed(string(stage))
		x.pagesProcessed++

		x.logger.Debug("classified page",
			slog.Int("page", number),
			slog.String("unit", res.Unit.String()),
			slog.Int("records", len(res.Records)),
			slog.Int("skipped_rows", res.Skipped))

		if len(res.Records) == 0 {
			continue
		}
		if err := emit(number, res.Records); err != nil {
			return err
		}
	}
	return nil
}

// footnoteRange returns the stage and glossary pages of a taxonomy
func (x *extraction) footnoteRange(tax model.Taxonomy) (Stage, pageSpan, bool) {
	switch tax {
	case model.Domestic:
		return StageDomesticFootnotes, x.options.domesticPages, true
	case model.International:
		return StageInternationalFootnotes, x.options.internationalPages, true
	}
	return "", pageSpan{}, false
}

// footnotes runs one reconstructor over the whole glossary range of tax.
// Lines of consecutive pages form one stream so entries may cross page
// breaks.
func (x *extraction) footnotes(ctx context.Context, tax model.Taxonomy) ([]model.FootnoteRecord, error) {
	stage, span, ok := x.footnoteRange(tax)
	if !ok {
		return nil, fmt.Errorf("unknown footnote taxonomy %d", tax)
	}

	r := footnote.New(tax)
	var out []model.FootnoteRecord
	for _, number := range x.resolvePages(stage, span) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := x.loadPage(stage, number)
		if !ok {
			continue
		}
		for _, line := range p.NonEmptyLines() {
			if rec, ok := r.Feed(line); ok {
				out = append(out, rec)
			}
		}
		x.metrics.PageProcessed(string(stage))
		x.pagesProcessed++
	}
	if rec, ok := r.Flush(); ok {
		out = append(out, rec)
	}

	x.metrics.Footnotes(tax.String(), len(out))
	x.logger.Debug("reconstructed footnotes",
		slog.String("taxonomy", tax.String()),
		slog.Int("footnotes", len(out)),
		slog.Int("discarded_lines", r.Discarded()))
	return out, nil
}
