package bandplan

import (
	"fmt"
	"strings"
)

// Stage names the part of an extraction a warning came from.
type Stage string

const (
	StageAllocations            Stage = "allocations"
	StageDomesticFootnotes      Stage = "domestic footnotes"
	StageInternationalFootnotes Stage = "international footnotes"
)

// Warning describes a non-fatal problem. Extraction carried on past it,
// but some records may be missing or keyed oddly.
type Warning struct {
	Stage Stage
	// Page is the physical page number, or 0 when the warning is not tied
	// to a page.
	Page    int
	Message string
}

// String formats the warning on one line
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s: page %d: %s", w.Stage, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings into a single string, one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
