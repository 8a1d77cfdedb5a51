package htmldoc

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const planHTML = `<!DOCTYPE html>
<html>
<head><title>Spectrum&nbsp;Plan</title><style>p { color: red }</style></head>
<body>
<section class="page" data-page="31">
	<p>MHz</p>
	<h2>Australian Table of Frequency Allocations</h2>
	<table>
		<thead><tr><th>Region 1</th><th>Region 2</th><th>Region 3</th><th>Australia</th></tr></thead>
		<tbody>
			<tr><td colspan="3">FIXED</td><td>8.3 – 9<br>METEOROLOGICAL AIDS<br>FIXED<br>FIXED<br>MOBILE</td></tr>
			<tr><td></td><td></td><td></td><td><p>9 – 14</p><p>RADIONAVIGATION</p></td></tr>
		</tbody>
	</table>
	<p>Footer text<script>ignored()</script></p>
</section>
<div class="page wide">
	<p>AUS1 First<br>continued&nbsp;here</p>
	<pre>AUS2 Second
  more</pre>
</div>
</body>
</html>`

func TestOpenReader_Pages(t *testing.T) {
	r, err := OpenReader(strings.NewReader(planHTML))
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	defer r.Close()

	if r.Title() != "Spectrum Plan" {
		t.Errorf("Title() = %q", r.Title())
	}
	if r.PageCount() != 32 {
		t.Fatalf("PageCount() = %d, want 32", r.PageCount())
	}

	page, err := r.Page(31)
	if err != nil {
		t.Fatalf("Page(31) failed: %v", err)
	}
	wantLines := []string{"MHz", "Australian Table of Frequency Allocations", "Footer text"}
	if !reflect.DeepEqual(page.Lines, wantLines) {
		t.Errorf("Lines = %#v, want %#v", page.Lines, wantLines)
	}

	if len(page.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(page.Tables))
	}
	table := page.Tables[0]
	if table.RowCount() != 3 {
		t.Fatalf("RowCount() = %d, want 3", table.RowCount())
	}
	if !table.Rows[0][0].IsHeader {
		t.Error("thead cells should be headers")
	}

	row := table.RowTexts(1)
	wantRow := []string{"FIXED", "", "", "8.3 – 9\nMETEOROLOGICAL AIDS\nFIXED\nFIXED\nMOBILE"}
	if !reflect.DeepEqual(row, wantRow) {
		t.Errorf("row 1 = %#v, want %#v", row, wantRow)
	}
	if got := table.RowTexts(2)[3]; got != "9 – 14\nRADIONAVIGATION" {
		t.Errorf("row 2 last cell = %q", got)
	}

	glossary, _ := r.Page(32)
	wantGlossary := []string{"AUS1 First", "continued here", "AUS2 Second", "more"}
	if !reflect.DeepEqual(glossary.Lines, wantGlossary) {
		t.Errorf("Lines = %#v, want %#v", glossary.Lines, wantGlossary)
	}
}

func TestOpenReader_NoPageElements(t *testing.T) {
	r, err := OpenReader(strings.NewReader(`<html><body><p>kHz</p><p>text</p></body></html>`))
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	if r.PageCount() != 1 {
		t.Fatalf("PageCount() = %d, want 1", r.PageCount())
	}
	p, _ := r.Page(1)
	if !reflect.DeepEqual(p.Lines, []string{"kHz", "text"}) {
		t.Errorf("Lines = %#v", p.Lines)
	}
}

func TestOpenReader_InvalidHTML(t *testing.T) {
	// Even malformed HTML should parse (HTML parser is lenient)
	r, err := OpenReader(strings.NewReader(`<html><body><p>unclosed paragraph`))
	if err != nil {
		t.Fatalf("OpenReader() should handle malformed HTML: %v", err)
	}
	defer r.Close()
}

func TestOpenReader_DecreasingPageNumbers(t *testing.T) {
	in := `<div data-page="5"></div><div data-page="2"></div>`
	if _, err := OpenReader(strings.NewReader(in)); err == nil {
		t.Error("expected error for decreasing data-page")
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open("/nonexistent/file.html"); err == nil {
		t.Error("Open() expected error for nonexistent file")
	}

	path := filepath.Join(t.TempDir(), "plan.html")
	if err := os.WriteFile(path, []byte(planHTML), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if r.PageCount() != 32 {
		t.Errorf("PageCount() = %d, want 32", r.PageCount())
	}
}
