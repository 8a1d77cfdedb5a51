package lexer

import (
	"strings"

	"github.com/ciphernaut/acma-bandplan-db/model"
)

// LineKind tags a glossary line
type LineKind int

const (
	Blank LineKind = iota
	PageNumber
	Reference
	Continuation
)

// String returns the kind name
func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case PageNumber:
		return "page-number"
	case Reference:
		return "reference"
	case Continuation:
		return "continuation"
	default:
		return "unknown"
	}
}

// Line is a classified glossary line. Ref is set for Reference lines; Text
// holds the remainder of a Reference line or the whole cleaned
// Continuation line.
type Line struct {
	Kind LineKind
	Ref  string
	Text string
}

// ClassifyLine tags one raw line of a footnote glossary.
//
// A leading run of digits followed by whitespace is a page number the text
// extraction glued onto the line; it is dropped. When dropping it leaves no
// reference but the untouched line starts with one, the digits were the
// reference itself ("12 First part" in the international glossary).
func ClassifyLine(tax model.Taxonomy, raw string) Line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Line{Kind: Blank}
	}
	if pageNumberOnly.MatchString(trimmed) {
		return Line{Kind: PageNumber, Text: trimmed}
	}

	re := refLinePatterns[tax]
	cleaned := strings.TrimSpace(pageNumberPrefix.ReplaceAllString(trimmed, ""))
	if re != nil {
		if m := re.FindStringSubmatch(cleaned); m != nil {
			return Line{Kind: Reference, Ref: m[1], Text: strings.TrimSpace(m[2])}
		}
		if cleaned != trimmed {
			if m := re.FindStringSubmatch(trimmed); m != nil {
				return Line{Kind: Reference, Ref: m[1], Text: strings.TrimSpace(m[2])}
			}
		}
	}
	if cleaned == "" {
		return Line{Kind: Blank}
	}
	return Line{Kind: Continuation, Text: cleaned}
}
