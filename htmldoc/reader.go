// Package htmldoc reads HTML exports of the band plan.
//
// Pages are elements whose class list contains "page" or that carry a
// data-page attribute; data-page, when numeric, gives the physical page
// number. A document without page elements is read as one page.
//
// Inside a page, block elements and <br> end text lines and every <table>
// becomes a raw table. Cell text keeps its line structure: <br> and block
// children inside a cell become line breaks. A cell spanning several
// columns is followed by empty cells so column positions match the
// physical grid.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ciphernaut/acma-bandplan-db/lexer"
	"github.com/ciphernaut/acma-bandplan-db/model"
	"github.com/ciphernaut/acma-bandplan-db/source"
)

// Reader provides access to HTML document content.
type Reader struct {
	*source.Memory
	title string
}

var _ source.Provider = (*Reader)(nil)

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := model.NewDocument()
	if t := findElement(root, "title"); t != nil {
		doc.Title = lexer.NormalizeLine(getTextContent(t))
	}

	body := findElement(root, "body")
	if body == nil {
		// No body tag, try to extract from root
		body = root
	}

	pageNodes := findPages(body, nil)
	if len(pageNodes) == 0 {
		pageNodes = []*html.Node{body}
	}

	for _, n := range pageNodes {
		page := parsePage(n)
		if number, ok := pageNumber(n); ok {
			if number <= doc.PageCount() {
				return nil, fmt.Errorf("page %d: data-page is not increasing", number)
			}
			for doc.PageCount() < number-1 {
				doc.AddPage(model.NewPage(0))
			}
		}
		doc.AddPage(page)
	}

	return &Reader{Memory: source.NewMemory(doc), title: doc.Title}, nil
}

// Title returns the document title
func (r *Reader) Title() string { return r.title }

// findPages collects page elements in document order. Page elements are
// not searched for nested pages.
func findPages(n *html.Node, pages []*html.Node) []*html.Node {
	if n.Type == html.ElementNode && isPageElement(n) {
		return append(pages, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		pages = findPages(c, pages)
	}
	return pages
}

func isPageElement(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "data-page":
			return true
		case "class":
			for _, cls := range strings.Fields(attr.Val) {
				if cls == "page" {
					return true
				}
			}
		}
	}
	return false
}

func pageNumber(n *html.Node) (int, bool) {
	v := getAttr(n, "data-page")
	if v == "" {
		return 0, false
	}
	number, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || number < 1 {
		return 0, false
	}
	return number, true
}

// parsePage collects the lines and tables of one page element.
func parsePage(n *html.Node) *model.Page {
	page := model.NewPage(0)
	lb := &lineBuilder{}
	walkPage(n, page, lb)
	lb.flush()
	page.Lines = append(page.Lines, lb.lines...)
	return page
}

func walkPage(n *html.Node, page *model.Page, lb *lineBuilder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			lb.text(c.Data)
		case html.ElementNode:
			if shouldSkipElement(c.Data) {
				continue
			}
			if c.Data == "table" {
				lb.flush()
				page.Lines = append(page.Lines, lb.take()...)
				page.AddTable(parseTable(c))
				continue
			}
			if c.Data == "br" {
				lb.flush()
				continue
			}
			block := isBlockElement(c.Data)
			if block {
				lb.flush()
			}
			if c.Data == "pre" {
				lb.pre++
			}
			walkPage(c, page, lb)
			if c.Data == "pre" {
				lb.pre--
			}
			if block {
				lb.flush()
			}
		}
	}
}

// parseTable converts a <table> element into a raw table.
func parseTable(tableNode *html.Node) *model.Table {
	table := &model.Table{}

	// Find thead, tbody, tfoot, or direct tr children
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					table.AddRow(parseTableRow(tr, c.Data == "thead")...)
				}
			}
		case "tr":
			table.AddRow(parseTableRow(c, false)...)
		}
	}

	return table
}

func parseTableRow(tr *html.Node, isHeader bool) []model.Cell {
	row := make([]model.Cell, 0)

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		header := isHeader || c.Data == "th"
		row = append(row, model.Cell{Text: cellText(c), IsHeader: header})

		span := 1
		if v := getAttr(c, "colspan"); v != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 1 {
				span = n
			}
		}
		for i := 1; i < span; i++ {
			row = append(row, model.Cell{IsHeader: header})
		}
	}

	return row
}

// cellText returns the text of a cell with one line per visual line.
func cellText(cell *html.Node) string {
	lb := &lineBuilder{}
	walkCell(cell, lb)
	lb.flush()
	return strings.Join(lb.lines, "\n")
}

func walkCell(n *html.Node, lb *lineBuilder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			lb.text(c.Data)
		case html.ElementNode:
			if shouldSkipElement(c.Data) {
				continue
			}
			if c.Data == "br" {
				lb.flush()
				continue
			}
			block := isBlockElement(c.Data)
			if block {
				lb.flush()
			}
			walkCell(c, lb)
			if block {
				lb.flush()
			}
		}
	}
}

// lineBuilder accumulates inline text into lines.
type lineBuilder struct {
	lines []string
	cur   strings.Builder
	pre   int
}

func (lb *lineBuilder) text(s string) {
	if lb.pre == 0 {
		lb.cur.WriteString(s)
		return
	}
	parts := strings.Split(s, "\n")
	for i, part := range parts {
		if i > 0 {
			lb.flush()
		}
		lb.cur.WriteString(part)
	}
}

func (lb *lineBuilder) flush() {
	line := lexer.NormalizeLine(lb.cur.String())
	lb.cur.Reset()
	if line != "" {
		lb.lines = append(lb.lines, line)
	}
}

func (lb *lineBuilder) take() []string {
	lines := lb.lines
	lb.lines = nil
	return lines
}

// shouldSkipElement returns true for elements that hold no document text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "section", "article", "header", "footer", "main", "aside",
		"h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "dl", "dt", "dd",
		"pre", "blockquote", "caption", "figure", "figcaption", "hr", "tr":
		return true
	}
	return false
}

func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
