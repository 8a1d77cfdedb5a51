package lexer

import (
	"reflect"
	"testing"

	"github.com/ciphernaut/acma-bandplan-db/model"
)

// ============================================================================
// ExtractRefs Tests
// ============================================================================

func TestExtractRefs(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		refs     []string
		residual string
		ok       bool
	}{
		{"plain text", "FIXED", nil, "FIXED", true},
		{"plain text trimmed", "  MOBILE except aeronautical mobile  ", nil, "MOBILE except aeronautical mobile", true},
		{"domestic ref", "FIXED AUS27", []string{"AUS27"}, "FIXED", true},
		{"domestic ref with letters", "AUS87A MOBILE", []string{"AUS87A"}, "MOBILE", true},
		{"international ref", "RADIOLOCATION 149", []string{"149"}, "RADIOLOCATION", true},
		{"international ref with letters", "FIXED 12AB", []string{"12AB"}, "FIXED", true},
		{"mixed order kept", "FIXED AUS27 5A MOBILE", []string{"AUS27", "5A"}, "FIXED MOBILE", true},
		{"only refs", "AUS1 AUS2 5", []string{"AUS1", "AUS2", "5"}, "", false},
		{"empty", "", nil, "", false},
		{"whitespace", "   \t ", nil, "", false},
		{"four digits not a ref", "FIXED 1234", nil, "FIXED 1234", true},
		{"three letters not a ref", "FIXED 12ABC", nil, "FIXED 12ABC", true},
		{"lowercase suffix not a ref", "band 5a", nil, "band 5a", true},
		{"whitespace collapsed", "FIXED   AUS27\nMOBILE", []string{"AUS27"}, "FIXED MOBILE", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs, residual, ok := ExtractRefs(tt.cell)
			if !reflect.DeepEqual(refs, tt.refs) {
				t.Errorf("refs = %#v, want %#v", refs, tt.refs)
			}
			if residual != tt.residual {
				t.Errorf("residual = %q, want %q", residual, tt.residual)
			}
			if ok != tt.ok {
				t.Errorf("ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestExtractRefsDomesticNotSplit(t *testing.T) {
	refs, residual, _ := ExtractRefs("AUS123")
	if len(refs) != 1 || refs[0] != "AUS123" {
		t.Fatalf("refs = %v, want [AUS123]", refs)
	}
	if residual != "" {
		t.Errorf("residual = %q, want empty", residual)
	}
}

func TestExtractRefsNoTokensUnchanged(t *testing.T) {
	inputs := []string{"FIXED", "MOBILE-SATELLITE (Earth-to-space)", "Amateur"}
	for _, in := range inputs {
		refs, residual, _ := ExtractRefs(in)
		if len(refs) != 0 {
			t.Errorf("%q: unexpected refs %v", in, refs)
		}
		if residual != in {
			t.Errorf("%q: residual = %q", in, residual)
		}
	}
}

// ============================================================================
// ClassifyLine Tests
// ============================================================================

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		tax  model.Taxonomy
		line string
		want Line
	}{
		{"blank", model.International, "   ", Line{Kind: Blank}},
		{"page number alone", model.International, "45", Line{Kind: PageNumber, Text: "45"}},
		{"page number alone domestic", model.Domestic, " 112 ", Line{Kind: PageNumber, Text: "112"}},
		{"international ref", model.International, "12 First part", Line{Kind: Reference, Ref: "12", Text: "First part"}},
		{"international ref letters", model.International, "5A Some text", Line{Kind: Reference, Ref: "5A", Text: "Some text"}},
		{"page number before ref", model.International, "45 13 Second entry", Line{Kind: Reference, Ref: "13", Text: "Second entry"}},
		{"domestic ref", model.Domestic, "AUS12 The band", Line{Kind: Reference, Ref: "AUS12", Text: "The band"}},
		{"domestic ref no text", model.Domestic, "AUS87A", Line{Kind: Reference, Ref: "AUS87A", Text: ""}},
		{"page number before domestic ref", model.Domestic, "113 AUS2 Text", Line{Kind: Reference, Ref: "AUS2", Text: "Text"}},
		{"continuation", model.Domestic, "continued text", Line{Kind: Continuation, Text: "continued text"}},
		{"continuation strips page number", model.Domestic, "114 more words", Line{Kind: Continuation, Text: "more words"}},
		{"domestic ignores numeric refs", model.Domestic, "12 First part", Line{Kind: Continuation, Text: "First part"}},
		{"international ignores domestic refs", model.International, "AUS12 text", Line{Kind: Continuation, Text: "AUS12 text"}},
		{"no word boundary", model.International, "12ABC words", Line{Kind: Continuation, Text: "12ABC words"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLine(tt.tax, tt.line)
			if got != tt.want {
				t.Errorf("ClassifyLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsReference(t *testing.T) {
	if !IsReference(model.Domestic, "AUS12") {
		t.Error("AUS12 should be a domestic reference")
	}
	if IsReference(model.Domestic, "12") {
		t.Error("12 should not be a domestic reference")
	}
	if !IsReference(model.International, "149A") {
		t.Error("149A should be an international reference")
	}
	if IsReference(model.International, "1490") {
		t.Error("1490 should not be an international reference")
	}
}

// ============================================================================
// Row Tests
// ============================================================================

func TestClassifyRow(t *testing.T) {
	if ClassifyRow(nil) != Spacer {
		t.Error("nil row should be a spacer")
	}
	if ClassifyRow([]string{"", "  ", "\n"}) != Spacer {
		t.Error("blank row should be a spacer")
	}
	if ClassifyRow([]string{"", "FIXED"}) != Data {
		t.Error("row with content should be data")
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("8.3 – 9\r\n\n  METEOROLOGICAL AIDS \n\nFIXED")
	want := []string{"8.3 – 9", "METEOROLOGICAL AIDS", "FIXED"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines() = %#v, want %#v", got, want)
	}
	if len(SplitLines(" \n ")) != 0 {
		t.Error("expected no lines")
	}
}

// ============================================================================
// Normalize Tests
// ============================================================================

func TestNormalize(t *testing.T) {
	if got := Normalize("FIXED MOBILE\r\nAUS27"); got != "FIXED MOBILE\nAUS27" {
		t.Errorf("Normalize() = %q", got)
	}
	if got := NormalizeLine("  8.3 – 9 \n"); got != "8.3 – 9" {
		t.Errorf("NormalizeLine() = %q", got)
	}
}
