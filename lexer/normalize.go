package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds s to NFKC and converts CR and CRLF line endings to LF.
// Line breaks are kept; multi-line cells stay multi-line.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// NormalizeLine normalises s and folds all whitespace, including line
// breaks, into single spaces.
func NormalizeLine(s string) string {
	return collapse(Normalize(s))
}
