package model

import (
	"testing"
)

// ============================================================================
// Document Tests
// ============================================================================

func TestDocumentAddPageRenumbers(t *testing.T) {
	doc := NewDocument()
	doc.AddPage(NewPage(40))
	doc.AddPage(NewPage(0))

	if doc.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", doc.PageCount())
	}
	for i, want := range []int{1, 2} {
		if got := doc.Pages[i].Number; got != want {
			t.Errorf("page %d Number = %d, want %d", i, got, want)
		}
	}
}

func TestDocumentGetPage(t *testing.T) {
	doc := NewDocument()
	p := NewPage(0)
	p.AddLine("MHz")
	doc.AddPage(p)

	if doc.GetPage(1) != p {
		t.Error("GetPage(1) did not return the added page")
	}
	for _, n := range []int{0, 2, -1} {
		if doc.GetPage(n) != nil {
			t.Errorf("GetPage(%d) should be nil", n)
		}
	}
}

// ============================================================================
// Page Tests
// ============================================================================

func TestPageNonEmptyLines(t *testing.T) {
	p := NewPage(3)
	p.AddLine("MHz")
	p.AddLine("   ")
	p.AddLine("Table of Allocations  ")

	lines := p.NonEmptyLines()
	if len(lines) != 2 || lines[1] != "Table of Allocations" {
		t.Errorf("NonEmptyLines() = %q", lines)
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestTableFromStrings(t *testing.T) {
	table := TableFromStrings([][]string{
		{"Region 1", "Region 2", "Region 3"},
		{"", "8.3-9\nFIXED"},
	})

	if table.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", table.RowCount())
	}
	if table.ColCount() != 3 {
		t.Errorf("ColCount() = %d, want 3", table.ColCount())
	}
	if got := table.RowTexts(1); len(got) != 2 || got[1] != "8.3-9\nFIXED" {
		t.Errorf("RowTexts(1) = %q", got)
	}
	if !table.Rows[1][0].IsEmpty() {
		t.Error("empty cell should report IsEmpty")
	}
	if table.RowTexts(5) != nil {
		t.Error("RowTexts out of bounds should be nil")
	}
}

func TestTableToCSV(t *testing.T) {
	table := TableFromStrings([][]string{
		{"a", "b,c"},
		{"say \"hi\"", "x\ny"},
	})
	want := "a,\"b,c\"\n\"say \"\"hi\"\"\",\"x\ny\"\n"
	if got := table.ToCSV(); got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
}

// ============================================================================
// Record Tests
// ============================================================================

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
		ok   bool
	}{
		{"MHz", UnitMHz, true},
		{"  khz ", UnitKHz, true},
		{"GHZ", UnitGHz, true},
		{"MHz band", UnitNone, false},
		{"", UnitNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseUnit(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseUnit(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAllocationRecordHelpers(t *testing.T) {
	r := AllocationRecord{Region1: "FIXED", Region2: Common, Region3: "MOBILE"}
	if r.Regions() != [3]string{"FIXED", Common, "MOBILE"} {
		t.Errorf("Regions() = %v", r.Regions())
	}
	if r.FootnoteRefList() != "" {
		t.Errorf("FootnoteRefList() with no refs = %q", r.FootnoteRefList())
	}
	r.FootnoteRefs = []string{"5.53", "AUS1"}
	if r.FootnoteRefList() != "5.53,AUS1" {
		t.Errorf("FootnoteRefList() = %q", r.FootnoteRefList())
	}
}

func TestTaxonomy(t *testing.T) {
	for _, tax := range []Taxonomy{Domestic, International} {
		got, ok := ParseTaxonomy(tax.String())
		if !ok || got != tax {
			t.Errorf("ParseTaxonomy(%q) = (%v, %v)", tax.String(), got, ok)
		}
	}
	if got, ok := ParseTaxonomy("AUS"); !ok || got != Domestic {
		t.Errorf("ParseTaxonomy(AUS) = (%v, %v)", got, ok)
	}
	if _, ok := ParseTaxonomy("martian"); ok {
		t.Error("unknown taxonomy should not parse")
	}
	if Taxonomy(9).String() != "unknown" {
		t.Errorf("String() of unknown taxonomy = %q", Taxonomy(9).String())
	}
}
