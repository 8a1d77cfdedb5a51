package lexer

import (
	"regexp"

	"github.com/ciphernaut/acma-bandplan-db/model"
)

const (
	domesticRef      = `AUS\d+[A-Z]*`
	internationalRef = `\d{1,3}[A-Z]{0,2}`
)

var (
	// The domestic alternative comes first; Go's leftmost-first alternation
	// makes it win over the numeric form at the same position.
	cellRefPattern = regexp.MustCompile(`\b(?:` + domesticRef + `|` + internationalRef + `)\b`)

	refLinePatterns = map[model.Taxonomy]*regexp.Regexp{
		model.Domestic:      regexp.MustCompile(`^(` + domesticRef + `)\b(.*)$`),
		model.International: regexp.MustCompile(`^(` + internationalRef + `)\b(.*)$`),
	}

	pageNumberPrefix = regexp.MustCompile(`^\s*\d+\s+`)
	pageNumberOnly   = regexp.MustCompile(`^\s*\d+\s*$`)
)

// IsReference reports whether s is exactly one reference of the taxonomy.
func IsReference(tax model.Taxonomy, s string) bool {
	re, ok := refLinePatterns[tax]
	if !ok {
		return false
	}
	m := re.FindStringSubmatch(s)
	return m != nil && m[2] == ""
}
