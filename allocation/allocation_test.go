package allocation

import (
	"reflect"
	"testing"

	"github.com/ciphernaut/acma-bandplan-db/model"
)

// ============================================================================
// Unit Detector Tests
// ============================================================================

func TestDetectUnit(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  model.Unit
		ok    bool
	}{
		{"mhz first line", []string{"MHz", "Table"}, model.UnitMHz, true},
		{"khz padded", []string{"Australian Table", "  kHz  "}, model.UnitKHz, true},
		{"ghz upper", []string{"a", "b", "c", "d", "GHZ"}, model.UnitGHz, true},
		{"unit on sixth line", []string{"a", "b", "c", "d", "e", "MHz"}, model.UnitNone, false},
		{"unit inside text", []string{"Frequencies in MHz"}, model.UnitNone, false},
		{"no lines", nil, model.UnitNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectUnit(tt.lines)
			if got != tt.want || ok != tt.ok {
				t.Errorf("DetectUnit() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

// ============================================================================
// Region Resolver Tests
// ============================================================================

func TestResolveRegionsAlwaysThree(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   [3]string
	}{
		{"none", nil, [3]string{model.Common, model.Common, model.Common}},
		{"one", []string{"FIXED"}, [3]string{"FIXED", model.Common, model.Common}},
		{"two", []string{"FIXED", "MOBILE"}, [3]string{"FIXED", "MOBILE", model.Common}},
		{"three", []string{"A", "B", "C"}, [3]string{"A", "B", "C"}},
		{"empty in middle", []string{"A", "", "C"}, [3]string{"A", model.Common, "C"}},
		{"extra ignored", []string{"A", "B", "C", "D"}, [3]string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRegions(tt.values); got != tt.want {
				t.Errorf("ResolveRegions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeRegions(t *testing.T) {
	tests := []struct {
		name   string
		in     [3]string
		want   [3]string
		shared string
		merged bool
	}{
		{"all equal", [3]string{"FIXED", "FIXED", "FIXED"}, [3]string{model.Common, model.Common, model.Common}, "FIXED", true},
		{"two equal one sentinel", [3]string{"FIXED", model.Common, "FIXED"}, [3]string{model.Common, model.Common, model.Common}, "FIXED", true},
		// The differing region keeps its own text rather than collapsing.
		{"two equal one differs", [3]string{"FIXED", "FIXED", "MOBILE"}, [3]string{model.Common, model.Common, "MOBILE"}, "FIXED", true},
		{"all differ", [3]string{"A", "B", "C"}, [3]string{"A", "B", "C"}, "", false},
		{"single value", [3]string{"A", model.Common, model.Common}, [3]string{"A", model.Common, model.Common}, "", false},
		{"all sentinel", [3]string{model.Common, model.Common, model.Common}, [3]string{model.Common, model.Common, model.Common}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shared, merged := mergeRegions(tt.in)
			if got != tt.want || shared != tt.shared || merged != tt.merged {
				t.Errorf("mergeRegions() = (%v, %q, %v), want (%v, %q, %v)",
					got, shared, merged, tt.want, tt.shared, tt.merged)
			}
		})
	}
}

// ============================================================================
// Row Classifier Tests
// ============================================================================

func TestParseRowMergedRegions(t *testing.T) {
	cell := "8.3 – 9\nMETEOROLOGICAL AIDS\nFIXED\nFIXED\nMOBILE"
	rec, ok := ParseRow([]string{cell}, model.UnitMHz)
	if !ok {
		t.Fatal("expected a record")
	}

	want := model.AllocationRecord{
		FrequencyRange: "8.3–9",
		Unit:           model.UnitMHz,
		Region1:        model.Common,
		Region2:        model.Common,
		Region3:        "MOBILE",
		Description:    "METEOROLOGICAL AIDS",
		Common:         "FIXED",
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("ParseRow() = %+v, want %+v", rec, want)
	}
}

func TestParseRowFootnoteRefs(t *testing.T) {
	cell := "148.5 - 255\nBROADCASTING AUS9\nFIXED AUS27 5A\nMOBILE 5A\nRADIONAVIGATION AUS1"
	rec, ok := ParseRow([]string{"", "", cell}, model.UnitKHz)
	if !ok {
		t.Fatal("expected a record")
	}

	if rec.FrequencyRange != "148.5-255" {
		t.Errorf("FrequencyRange = %q", rec.FrequencyRange)
	}
	wantRefs := []string{"5A", "AUS1", "AUS27"}
	if !reflect.DeepEqual(rec.FootnoteRefs, wantRefs) {
		t.Errorf("FootnoteRefs = %v, want %v", rec.FootnoteRefs, wantRefs)
	}
	if got := rec.Regions(); got != [3]string{"FIXED", "MOBILE", "RADIONAVIGATION"} {
		t.Errorf("Regions() = %v", got)
	}
	// Description refs are not collected.
	if rec.Description != "BROADCASTING AUS9" {
		t.Errorf("Description = %q", rec.Description)
	}
	if rec.Common != "BROADCASTING AUS9" {
		t.Errorf("Common = %q, want description", rec.Common)
	}
}

func TestParseRowCommonContent(t *testing.T) {
	rec, ok := ParseRow([]string{"9 – 14 RADIONAVIGATION\nDESC"}, model.UnitKHz)
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.FrequencyRange != "9–14" {
		t.Errorf("FrequencyRange = %q", rec.FrequencyRange)
	}
	if rec.Common != "RADIONAVIGATION" {
		t.Errorf("Common = %q, want RADIONAVIGATION", rec.Common)
	}
	if rec.Regions() != [3]string{model.Common, model.Common, model.Common} {
		t.Errorf("Regions() = %v", rec.Regions())
	}
	if rec.FootnoteRefs != nil {
		t.Errorf("FootnoteRefs = %v, want nil", rec.FootnoteRefs)
	}
}

func TestParseRowEmDashAndStraySpaces(t *testing.T) {
	rec, _ := ParseRow([]string{"1 0.5 — 1 1\nX"}, model.UnitGHz)
	if rec.FrequencyRange != "10.5—11" {
		t.Errorf("FrequencyRange = %q, want 10.5—11", rec.FrequencyRange)
	}
	if rec.Common != "X" {
		t.Errorf("Common = %q, want description", rec.Common)
	}
}

func TestParseRowNoFrequencyRange(t *testing.T) {
	rec, ok := ParseRow([]string{"Continued from previous page\nFIXED"}, model.UnitMHz)
	if !ok {
		t.Fatal("row without a range is still emitted")
	}
	if rec.FrequencyRange != "" {
		t.Errorf("FrequencyRange = %q, want empty", rec.FrequencyRange)
	}
	if rec.Common != "Continued from previous page" {
		t.Errorf("Common = %q", rec.Common)
	}
}

func TestParseRowSkips(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
	}{
		{"no cells", nil},
		{"all empty", []string{"", "", ""}},
		{"whitespace only", []string{" ", "\n"}},
		{"last cell empty", []string{"8.3 – 9", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseRow(tt.cells, model.UnitMHz); ok {
				t.Error("expected row to be skipped")
			}
		})
	}
}

func TestParseRowRegionOnlyRefs(t *testing.T) {
	rec, _ := ParseRow([]string{"5 - 6\nD\nAUS3\nMOBILE\n"}, model.UnitMHz)
	if rec.Region1 != model.Common {
		t.Errorf("Region1 = %q, want COMMON", rec.Region1)
	}
	if rec.Region2 != "MOBILE" || rec.Region3 != model.Common {
		t.Errorf("Regions() = %v", rec.Regions())
	}
	if !reflect.DeepEqual(rec.FootnoteRefs, []string{"AUS3"}) {
		t.Errorf("FootnoteRefs = %v", rec.FootnoteRefs)
	}
}

// ============================================================================
// Classifier Tests
// ============================================================================

func TestProcessTableSkipsHeaders(t *testing.T) {
	table := model.TableFromStrings([][]string{
		{"Region 1", "Region 2", "Region 3"},
		{"", "", "Australian Table"},
		{"", "", ""},
		{"", "", "8.3 – 9\nMETEOROLOGICAL AIDS\nFIXED\nFIXED\nMOBILE"},
		{"", "", "9 – 11.3\nRADIONAVIGATION"},
	})

	res := NewClassifier().ProcessTable(table, model.UnitKHz)
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
	if res.Records[0].FrequencyRange != "8.3–9" || res.Records[1].FrequencyRange != "9–11.3" {
		t.Errorf("unexpected ranges: %q, %q", res.Records[0].FrequencyRange, res.Records[1].FrequencyRange)
	}
	for _, r := range res.Records {
		if r.Unit != model.UnitKHz {
			t.Errorf("Unit = %q, want KHZ", r.Unit)
		}
	}
}

func TestProcessTableNoHeaders(t *testing.T) {
	table := model.TableFromStrings([][]string{{"1 - 2\nA"}})
	c := &Classifier{HeaderRows: 0}
	if got := len(c.ProcessTable(table, model.UnitMHz).Records); got != 1 {
		t.Errorf("got %d records, want 1", got)
	}
	if got := len(c.ProcessTable(nil, model.UnitMHz).Records); got != 0 {
		t.Errorf("nil table gave %d records", got)
	}
}

func TestProcessPage(t *testing.T) {
	page := model.NewPage(31)
	page.Lines = []string{"", "GHz"}
	page.AddTable(model.TableFromStrings([][]string{{"h"}, {"h"}, {"1 - 2\nA"}}))
	page.AddTable(model.TableFromStrings([][]string{{"h"}, {"h"}, {"2 - 3\nB"}}))

	res, ok := NewClassifier().ProcessPage(page)
	if !ok {
		t.Fatal("expected page to be processed")
	}
	if res.Unit != model.UnitGHz || len(res.Records) != 2 {
		t.Errorf("ProcessPage() = %+v", res)
	}

	noUnit := model.NewPage(32)
	noUnit.Lines = []string{"a", "b", "c", "d", "e", "MHz"}
	noUnit.AddTable(model.TableFromStrings([][]string{{"h"}, {"h"}, {"1 - 2\nA"}}))
	if _, ok := NewClassifier().ProcessPage(noUnit); ok {
		t.Error("page without unit in first five lines should be skipped")
	}
}
