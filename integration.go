// integration.go connects extraction passes to a persistence sink
package bandplan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ciphernaut/acma-bandplan-db/model"
	"github.com/ciphernaut/acma-bandplan-db/store"
)

// Summary reports what a Run produced.
type Summary struct {
	DomesticFootnotes      int
	InternationalFootnotes int
	// FootnotesWritten counts footnotes the sink did not already hold
	FootnotesWritten int

	Allocations int
	// AllocationsWritten counts allocations the sink did not already hold
	AllocationsWritten int

	PagesProcessed int
	PagesSkipped   int
	Duration       time.Duration
}

// Run extracts both footnote glossaries and then the allocation table,
// writing records to sink as they are produced: each glossary as one
// batch, allocations one page at a time. A sink error stops the run; the
// summary then covers what was written before it.
// This is a terminal operation that closes the underlying provider.
//
// Example:
//
//	db, err := store.OpenSQLite(ctx, "bandplan.db")
//	if err != nil {
//	    // handle error
//	}
//	defer db.Close()
//	summary, warnings, err := bandplan.Open("plan.html").Run(ctx, db)
func (e *Extractor) Run(ctx context.Context, sink store.Sink) (Summary, []Warning, error) {
	var sum Summary
	if e.err != nil {
		return sum, nil, e.err
	}
	if sink == nil {
		return sum, nil, fmt.Errorf("no sink specified")
	}
	if err := e.ensureProvider(); err != nil {
		return sum, nil, err
	}
	defer e.Close()

	start := time.Now()
	run := e.newRun()
	err := run.into(ctx, sink, &sum)
	sum.PagesProcessed = run.pagesProcessed
	sum.PagesSkipped = run.pagesSkipped
	sum.Duration = time.Since(start)
	if err != nil {
		return sum, run.warnings, err
	}

	run.logger.Info("extraction complete",
		slog.Int("domestic_footnotes", sum.DomesticFootnotes),
		slog.Int("international_footnotes", sum.InternationalFootnotes),
		slog.Int("footnotes_written", sum.FootnotesWritten),
		slog.Int("allocations", sum.Allocations),
		slog.Int("allocations_written", sum.AllocationsWritten),
		slog.Int("pages_processed", sum.PagesProcessed),
		slog.Int("pages_skipped", sum.PagesSkipped),
		slog.Int("warnings", len(run.warnings)),
		slog.Duration("duration", sum.Duration))
	return sum, run.warnings, nil
}

func (x *extraction) into(ctx context.Context, sink store.Sink, sum *Summary) error {
	for _, tax := range []model.Taxonomy{model.Domestic, model.International} {
		recs, err := x.footnotes(ctx, tax)
		if err != nil {
			return err
		}
		if tax == model.Domestic {
			sum.DomesticFootnotes = len(recs)
		} else {
			sum.InternationalFootnotes = len(recs)
		}

		n, err := sink.PutFootnotes(ctx, tax, recs)
		if err != nil {
			return fmt.Errorf("writing %s footnotes: %w", tax, err)
		}
		x.metrics.Written("footnote", len(recs), n)
		sum.FootnotesWritten += n
	}

	return x.allocations(ctx, func(page int, recs []model.AllocationRecord) error {
		n, err := sink.PutAllocations(ctx, recs)
		if err != nil {
			return fmt.Errorf("writing allocations of page %d: %w", page, err)
		}
		x.metrics.Written("allocation", len(recs), n)
		sum.Allocations += len(recs)
		sum.AllocationsWritten += n
		return nil
	})
}
