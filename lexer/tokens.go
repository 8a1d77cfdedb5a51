package lexer

import "strings"

// ExtractRefs returns the footnote reference tokens found in cell, in the
// order they appear, and the cell text with those tokens removed and
// whitespace collapsed. ok is false when nothing but references (or
// nothing at all) was present.
func ExtractRefs(cell string) (refs []string, residual string, ok bool) {
	locs := cellRefPattern.FindAllStringIndex(cell, -1)
	if len(locs) == 0 {
		residual = collapse(cell)
		return nil, residual, residual != ""
	}

	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		refs = append(refs, cell[loc[0]:loc[1]])
		sb.WriteString(cell[last:loc[0]])
		sb.WriteByte(' ')
		last = loc[1]
	}
	sb.WriteString(cell[last:])

	residual = collapse(sb.String())
	return refs, residual, residual != ""
}

// collapse trims s and folds every whitespace run into a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
