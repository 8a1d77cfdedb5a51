package model

import "strings"

// Unit is the measurement unit governing the frequency ranges of a page.
// Values are upper-cased as they are detected.
type Unit string

const (
	UnitNone Unit = ""
	UnitKHz  Unit = "KHZ"
	UnitMHz  Unit = "MHZ"
	UnitGHz  Unit = "GHZ"
)

// ParseUnit matches s case-insensitively against the known units after
// trimming. The second result is false when s is not a unit.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "khz":
		return UnitKHz, true
	case "mhz":
		return UnitMHz, true
	case "ghz":
		return UnitGHz, true
	}
	return UnitNone, false
}

// String returns the unit text
func (u Unit) String() string { return string(u) }

// Common is the region sentinel meaning "same as the shared allocation".
const Common = "COMMON"

// AllocationRecord is one row of the frequency allocation table.
type AllocationRecord struct {
	FrequencyRange string   `json:"frequency_range" yaml:"frequency_range"`
	Unit           Unit     `json:"unit" yaml:"unit"`
	Region1        string   `json:"region1" yaml:"region1"`
	Region2        string   `json:"region2" yaml:"region2"`
	Region3        string   `json:"region3" yaml:"region3"`
	Description    string   `json:"description" yaml:"description"`
	Common         string   `json:"common" yaml:"common"`
	FootnoteRefs   []string `json:"footnote_refs,omitempty" yaml:"footnote_refs,omitempty"`
}

// Regions returns the three region values in order
func (r AllocationRecord) Regions() [3]string {
	return [3]string{r.Region1, r.Region2, r.Region3}
}

// FootnoteRefList joins the footnote references with commas. It returns
// the empty string when the record has none.
func (r AllocationRecord) FootnoteRefList() string {
	return strings.Join(r.FootnoteRefs, ",")
}

// Taxonomy identifies one of the two footnote glossaries.
type Taxonomy int

const (
	// Domestic footnotes carry an AUS prefix (AUS12, AUS87A).
	Domestic Taxonomy = iota
	// International footnotes are 1-3 digits with up to two letters (5, 12A).
	International
)

// String returns the taxonomy name
func (t Taxonomy) String() string {
	switch t {
	case Domestic:
		return "domestic"
	case International:
		return "international"
	default:
		return "unknown"
	}
}

// ParseTaxonomy parses a taxonomy name as returned by String.
func ParseTaxonomy(s string) (Taxonomy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "domestic", "australian", "aus":
		return Domestic, true
	case "international", "itu":
		return International, true
	}
	return 0, false
}

// FootnoteRecord is one reconstructed glossary entry.
type FootnoteRecord struct {
	Reference string `json:"reference" yaml:"reference"`
	Text      string `json:"text" yaml:"text"`
}
