package allocation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ciphernaut/acma-bandplan-db/lexer"
	"github.com/ciphernaut/acma-bandplan-db/model"
)

// frequencyRangePattern matches a numeric range once all whitespace has
// been removed. Hyphen-minus, en dash and em dash are accepted separators.
var frequencyRangePattern = regexp.MustCompile(`\d+(?:\.\d+)?[-–—]\d+(?:\.\d+)?`)

// ParseRow classifies one raw table row. ok is false for rows that produce
// no record: spacer rows and rows whose last cell has no text lines.
func ParseRow(cells []string, unit model.Unit) (rec model.AllocationRecord, ok bool) {
	if lexer.ClassifyRow(cells) == lexer.Spacer {
		return rec, false
	}

	parts := lexer.SplitLines(cells[len(cells)-1])
	if len(parts) == 0 {
		return rec, false
	}

	frequencyRange, commonContent := splitFrequencyRange(parts[0])

	var description string
	if len(parts) > 1 {
		description = parts[1]
	}
	var rawRegions []string
	if len(parts) > 2 {
		rawRegions = parts[2:]
	}

	residuals, refs := extractRegions(rawRegions)
	regions, shared, merged := mergeRegions(ResolveRegions(residuals))

	common := commonContent
	if merged {
		common = shared
	} else if common == "" {
		common = description
	}

	return model.AllocationRecord{
		FrequencyRange: frequencyRange,
		Unit:           unit,
		Region1:        regions[0],
		Region2:        regions[1],
		Region3:        regions[2],
		Description:    description,
		Common:         common,
		FootnoteRefs:   uniqueSorted(refs),
	}, true
}

// splitFrequencyRange finds the frequency range in the first line of a
// cell and returns it together with the rest of the line.
//
// The range is searched for with all whitespace removed, so "8.3 – 9"
// yields "8.3–9". The matched span is then cut out of the original line,
// keeping the spacing of whatever text surrounds it.
func splitFrequencyRange(line string) (frequencyRange, rest string) {
	stripped, offsets := stripSpace(line)
	loc := frequencyRangePattern.FindStringIndex(stripped)
	if loc == nil {
		return "", strings.Join(strings.Fields(line), " ")
	}

	frequencyRange = stripped[loc[0]:loc[1]]
	start := offsets[loc[0]]
	end := offsets[loc[1]-1] + 1
	rest = line[:start] + " " + line[end:]
	return frequencyRange, strings.Join(strings.Fields(rest), " ")
}

// stripSpace removes every Unicode space from s. offsets[i] is the byte
// offset in s of byte i of the result.
func stripSpace(s string) (string, []int) {
	var sb strings.Builder
	offsets := make([]int, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			sb.WriteString(s[i : i+size])
			for j := 0; j < size; j++ {
				offsets = append(offsets, i+j)
			}
		}
		i += size
	}
	return sb.String(), offsets
}
