package bandplan

import (
	"log/slog"

	"github.com/ciphernaut/acma-bandplan-db/allocation"
	"github.com/ciphernaut/acma-bandplan-db/internal/metrics"
)

// pageSpan is an inclusive range of physical page numbers.
type pageSpan struct {
	first, last int
}

func (s pageSpan) valid() bool { return s.first >= 1 && s.last >= s.first }

// Published layout of the Australian Radiofrequency Spectrum Plan.
var (
	defaultAllocationPages    = pageSpan{31, 112}
	defaultDomesticPages      = pageSpan{112, 119}
	defaultInternationalPages = pageSpan{120, 214}
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	allocationPages    pageSpan
	domesticPages      pageSpan
	internationalPages pageSpan

	// Column header rows skipped at the top of every table
	headerRows int

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		allocationPages:    defaultAllocationPages,
		domesticPages:      defaultDomesticPages,
		internationalPages: defaultInternationalPages,
		headerRows:         allocation.DefaultHeaderRows,
		logger:             nil, // slog.Default() at use
		metrics:            nil, // no metrics
	}
}

// clone creates a copy of ExtractOptions. The logger and metrics are
// shared.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		allocationPages:    o.allocationPages,
		domesticPages:      o.domesticPages,
		internationalPages: o.internationalPages,
		headerRows:         o.headerRows,
		logger:             o.logger,
		metrics:            o.metrics,
	}
}

func (o ExtractOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}
